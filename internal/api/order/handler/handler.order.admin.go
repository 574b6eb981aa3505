package orderhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/y84-dev/API-FRIZZLY/internal/api/base/handler"
	orderdto "github.com/y84-dev/API-FRIZZLY/internal/api/order/dto"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/logger"
)

// adminID lấy id quản trị viên đã xác thực từ context
func adminID(c fiber.Ctx) (string, error) {
	id, _ := c.Locals("adminID").(string)
	if id == "" {
		return "", common.ErrNotAdmin
	}
	return id, nil
}

// HandleAdminListOrders xử lý GET /admin/orders: danh sách mọi đơn hàng
func (h *OrderHandler) HandleAdminListOrders(c fiber.Ctx) error {
	orders, err := h.orderService.ListAll(c.Context(), 0)
	basehdl.HandleResponse(c, orders, err)
	return nil
}

// HandleAdminGetOrder xử lý GET /admin/orders/:id
func (h *OrderHandler) HandleAdminGetOrder(c fiber.Ctx) error {
	order, err := h.orderService.GetOrder(c.Context(), c.Params("id"))
	basehdl.HandleResponse(c, order, err)
	return nil
}

// HandleAdminUpdateStatus xử lý PUT /admin/orders/:id/status.
// Đây là thao tác sinh thông báo cho chủ đơn hàng: trạng thái và bản ghi
// thông báo được ghi bền vững trước, push gửi best-effort sau.
func (h *OrderHandler) HandleAdminUpdateStatus(c fiber.Ctx) error {
	actingAdmin, err := adminID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	orderID := c.Params("id")
	input := new(orderdto.OrderStatusUpdateInput)
	if err := c.Bind().Body(input); err != nil {
		basehdl.HandleResponse(c, nil, common.NewValidationError("Dữ liệu không hợp lệ", err.Error()))
		return nil
	}
	if err := h.orderService.UpdateStatus(c.Context(), orderID, input.Status, actingAdmin); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	logger.LogOrderEvent("order_status_updated", orderID, c, map[string]interface{}{
		"status":  input.Status,
		"adminId": actingAdmin,
	})
	basehdl.HandleResponse(c, fiber.Map{"orderId": orderID, "status": input.Status}, nil)
	return nil
}

// HandleAdminUpdateOrder xử lý PUT /admin/orders/:id: cập nhật field tự do
func (h *OrderHandler) HandleAdminUpdateOrder(c fiber.Ctx) error {
	orderID := c.Params("id")
	fields := make(map[string]interface{})
	if err := c.Bind().Body(&fields); err != nil {
		basehdl.HandleResponse(c, nil, common.NewValidationError("Dữ liệu không hợp lệ", err.Error()))
		return nil
	}
	if err := h.orderService.AdminUpdateFields(c.Context(), orderID, fields); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	basehdl.HandleResponse(c, fiber.Map{"orderId": orderID}, nil)
	return nil
}

// HandleAdminDeleteOrder xử lý DELETE /admin/orders/:id
func (h *OrderHandler) HandleAdminDeleteOrder(c fiber.Ctx) error {
	orderID := c.Params("id")
	if err := h.orderService.AdminDelete(c.Context(), orderID); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	logger.LogOrderEvent("order_deleted_by_admin", orderID, c, nil)
	basehdl.HandleResponse(c, fiber.Map{"orderId": orderID}, nil)
	return nil
}

// HandleAdminAnalytics xử lý GET /admin/analytics: thống kê toàn hệ thống
func (h *OrderHandler) HandleAdminAnalytics(c fiber.Ctx) error {
	result, err := h.orderService.Analytics(c.Context(), "")
	basehdl.HandleResponse(c, result, err)
	return nil
}
