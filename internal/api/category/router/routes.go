// Package router đăng ký các route thuộc domain Category.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	categoryhdl "github.com/y84-dev/API-FRIZZLY/internal/api/category/handler"
	"github.com/y84-dev/API-FRIZZLY/internal/api/middleware"
	apirouter "github.com/y84-dev/API-FRIZZLY/internal/api/router"
)

// Register đăng ký tất cả route category lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := categoryhdl.NewCategoryHandler()
	if err != nil {
		return fmt.Errorf("create category handler: %w", err)
	}

	// Danh sách công khai, không cần xác thực
	v1.Get("/categories", handler.HandlePublicList)

	// CRUD đầy đủ cho quản trị viên
	adminMW := []fiber.Handler{middleware.RequireAdmin()}
	r.RegisterCRUDRoutes(v1, "/category", handler, apirouter.ReadWriteConfig, adminMW, adminMW)

	return nil
}
