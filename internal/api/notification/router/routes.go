// Package router đăng ký các route thuộc domain Notification.
package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/y84-dev/API-FRIZZLY/internal/api/middleware"
	notifhdl "github.com/y84-dev/API-FRIZZLY/internal/api/notification/handler"
	notifsvc "github.com/y84-dev/API-FRIZZLY/internal/api/notification/service"
	apirouter "github.com/y84-dev/API-FRIZZLY/internal/api/router"
	"github.com/y84-dev/API-FRIZZLY/internal/docstore"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
)

// Register đăng ký tất cả route notification lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	store := docstore.NewMongoStore(global.MongoDB_Session, global.ServerConfig.MongoDB_DBName)
	handler := notifhdl.NewNotificationHandler(notifsvc.NewNotificationService(store))

	authMW := []fiber.Handler{middleware.RequireAuth()}
	apirouter.RegisterRouteWithMiddleware(v1, "/notifications", "GET", "/", authMW, handler.HandleGetMyNotifications)

	return nil
}
