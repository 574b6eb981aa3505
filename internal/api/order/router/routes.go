// Package router đăng ký các route thuộc domain Order: đơn hàng của người dùng,
// tạo đơn với số thứ tự tuần tự, thống kê và các endpoint quản trị.
package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/y84-dev/API-FRIZZLY/internal/api/middleware"
	orderhdl "github.com/y84-dev/API-FRIZZLY/internal/api/order/handler"
	ordersvc "github.com/y84-dev/API-FRIZZLY/internal/api/order/service"
	apirouter "github.com/y84-dev/API-FRIZZLY/internal/api/router"
	"github.com/y84-dev/API-FRIZZLY/internal/counter"
	"github.com/y84-dev/API-FRIZZLY/internal/docstore"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
	"github.com/y84-dev/API-FRIZZLY/internal/push"
	"github.com/y84-dev/API-FRIZZLY/internal/utility"
)

// NewOrderServiceFromGlobals dựng OrderService từ các kết nối toàn cục:
// MongoDB store, bộ cấp phát số thứ tự và FCM sender (nil nếu Firebase tắt).
func NewOrderServiceFromGlobals() *ordersvc.OrderService {
	store := docstore.NewMongoStore(global.MongoDB_Session, global.ServerConfig.MongoDB_DBName)
	allocator := counter.NewAllocator(store, global.MongoDB_ColNames.Counters, "counters")

	var sender push.Sender
	if client := utility.GetFirebaseMessaging(); client != nil {
		sender = push.NewFCMSender(client)
	}
	return ordersvc.NewOrderService(store, allocator, sender)
}

// Register đăng ký tất cả route order lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler := orderhdl.NewOrderHandler(NewOrderServiceFromGlobals())

	authMW := []fiber.Handler{middleware.RequireAuth()}
	adminMW := []fiber.Handler{middleware.RequireAdmin()}

	// Đơn hàng của người dùng
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/", authMW, handler.HandleGetMyOrders)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "PUT", "/:id", authMW, handler.HandleUpdateMyOrder)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "DELETE", "/:id", authMW, handler.HandleDeleteMyOrder)

	// Tạo đơn hàng với số thứ tự tuần tự
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "POST", "/submit", authMW, handler.HandleSubmitOrder)

	// Thống kê đơn hàng của người gọi
	apirouter.RegisterRouteWithMiddleware(v1, "/analytics", "GET", "/orders", authMW, handler.HandleMyAnalytics)

	// Endpoint quản trị
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/orders", "GET", "/", adminMW, handler.HandleAdminListOrders)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/orders", "GET", "/:id", adminMW, handler.HandleAdminGetOrder)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/orders", "PUT", "/:id/status", adminMW, handler.HandleAdminUpdateStatus)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/orders", "PUT", "/:id", adminMW, handler.HandleAdminUpdateOrder)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/orders", "DELETE", "/:id", adminMW, handler.HandleAdminDeleteOrder)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin", "GET", "/analytics", adminMW, handler.HandleAdminAnalytics)

	return nil
}
