package orderhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/y84-dev/API-FRIZZLY/internal/api/base/handler"
	orderdto "github.com/y84-dev/API-FRIZZLY/internal/api/order/dto"
	ordersvc "github.com/y84-dev/API-FRIZZLY/internal/api/order/service"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/logger"
)

// OrderHandler xử lý các request liên quan đến đơn hàng
type OrderHandler struct {
	orderService *ordersvc.OrderService
}

// NewOrderHandler tạo mới OrderHandler
func NewOrderHandler(orderService *ordersvc.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// callerID lấy id người dùng đã xác thực từ context
func callerID(c fiber.Ctx) (string, error) {
	userID, _ := c.Locals("userID").(string)
	if userID == "" {
		return "", common.ErrTokenMissing
	}
	return userID, nil
}

// HandleSubmitOrder xử lý POST /order/submit: tạo đơn hàng với số thứ tự tuần tự
func (h *OrderHandler) HandleSubmitOrder(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	input := new(orderdto.OrderCreateInput)
	if err := c.Bind().Body(input); err != nil {
		basehdl.HandleResponse(c, nil, common.NewValidationError("Dữ liệu đơn hàng không hợp lệ", err.Error()))
		return nil
	}

	orderID, orderNumber, err := h.orderService.SubmitOrder(c.Context(), userID, input)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	logger.LogOrderEvent("order_submitted", orderID, c, map[string]interface{}{
		"orderNumber": orderNumber,
	})
	basehdl.HandleResponse(c, fiber.Map{
		"orderId":     orderID,
		"orderNumber": orderNumber,
	}, nil)
	return nil
}

// HandleGetMyOrders xử lý GET /orders: danh sách đơn hàng của người gọi
func (h *OrderHandler) HandleGetMyOrders(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	orders, err := h.orderService.ListByUser(c.Context(), userID)
	basehdl.HandleResponse(c, orders, err)
	return nil
}

// HandleUpdateMyOrder xử lý PUT /orders/:id: người dùng cập nhật trạng thái đơn của mình
func (h *OrderHandler) HandleUpdateMyOrder(c fiber.Ctx) error {
	userID, err := callerID(c)
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
	if err := h.orderService.UpdateOwnStatus(c.Context(), userID, orderID, input.Status); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	logger.LogOrderEvent("order_status_self_updated", orderID, c, map[string]interface{}{
		"status": input.Status,
	})
	basehdl.HandleResponse(c, fiber.Map{"orderId": orderID, "status": input.Status}, nil)
	return nil
}

// HandleDeleteMyOrder xử lý DELETE /orders/:id: người dùng xóa đơn của mình
func (h *OrderHandler) HandleDeleteMyOrder(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	orderID := c.Params("id")
	if err := h.orderService.DeleteOwn(c.Context(), userID, orderID); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	logger.LogOrderEvent("order_deleted", orderID, c, nil)
	basehdl.HandleResponse(c, fiber.Map{"orderId": orderID}, nil)
	return nil
}

// HandleMyAnalytics xử lý GET /analytics/orders: thống kê đơn hàng của người gọi
func (h *OrderHandler) HandleMyAnalytics(c fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	result, err := h.orderService.Analytics(c.Context(), userID)
	basehdl.HandleResponse(c, result, err)
	return nil
}
