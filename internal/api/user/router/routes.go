// Package router đăng ký các route thuộc domain User.
package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/y84-dev/API-FRIZZLY/internal/api/middleware"
	userhdl "github.com/y84-dev/API-FRIZZLY/internal/api/user/handler"
	usersvc "github.com/y84-dev/API-FRIZZLY/internal/api/user/service"
	apirouter "github.com/y84-dev/API-FRIZZLY/internal/api/router"
	"github.com/y84-dev/API-FRIZZLY/internal/docstore"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
)

// Register đăng ký tất cả route user lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	store := docstore.NewMongoStore(global.MongoDB_Session, global.ServerConfig.MongoDB_DBName)
	handler := userhdl.NewUserHandler(usersvc.NewUserService(store))

	authMW := []fiber.Handler{middleware.RequireAuth()}
	adminMW := []fiber.Handler{middleware.RequireAdmin()}

	// Tạo hồ sơ không cần xác thực (client gọi ngay sau khi đăng ký Firebase)
	v1.Post("/users", handler.HandleCreateProfile)

	apirouter.RegisterRouteWithMiddleware(v1, "/users", "PUT", "/device-token", authMW, handler.HandleSetDeviceToken)
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/:id", authMW, handler.HandleGetProfile)

	apirouter.RegisterRouteWithMiddleware(v1, "/admin/users", "GET", "/", adminMW, handler.HandleAdminListUsers)

	return nil
}
