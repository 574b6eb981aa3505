// Package router đăng ký các route thuộc domain Product.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/y84-dev/API-FRIZZLY/internal/api/middleware"
	producthdl "github.com/y84-dev/API-FRIZZLY/internal/api/product/handler"
	apirouter "github.com/y84-dev/API-FRIZZLY/internal/api/router"
)

// Register đăng ký tất cả route product lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := producthdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("create product handler: %w", err)
	}

	// Danh sách công khai, không cần xác thực
	v1.Get("/products", handler.HandlePublicList)

	// CRUD đầy đủ cho quản trị viên
	adminMW := []fiber.Handler{middleware.RequireAdmin()}
	r.RegisterCRUDRoutes(v1, "/product", handler, apirouter.ReadWriteConfig, adminMW, adminMW)

	return nil
}
