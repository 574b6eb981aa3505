// Package router đăng ký các route thuộc domain Admin.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	adminhdl "github.com/y84-dev/API-FRIZZLY/internal/api/admin/handler"
	"github.com/y84-dev/API-FRIZZLY/internal/api/middleware"
	apirouter "github.com/y84-dev/API-FRIZZLY/internal/api/router"
)

// Register đăng ký tất cả route admin lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := adminhdl.NewAdminHandler()
	if err != nil {
		return fmt.Errorf("create admin handler: %w", err)
	}

	// Đăng nhập không cần xác thực
	v1.Post("/admin/login", handler.HandleLogin)

	// Tạo admin mới cần quyền quản trị
	adminMW := []fiber.Handler{middleware.RequireAdmin()}
	apirouter.RegisterRouteWithMiddleware(v1, "/admin", "POST", "/accounts", adminMW, handler.HandleCreateAdmin)

	return nil
}
