package notifhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/y84-dev/API-FRIZZLY/internal/api/base/handler"
	notifsvc "github.com/y84-dev/API-FRIZZLY/internal/api/notification/service"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
)

// NotificationHandler xử lý các request liên quan đến thông báo
type NotificationHandler struct {
	notificationService *notifsvc.NotificationService
}

// NewNotificationHandler tạo mới NotificationHandler
func NewNotificationHandler(notificationService *notifsvc.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// HandleGetMyNotifications xử lý GET /notifications: thông báo của người gọi
func (h *NotificationHandler) HandleGetMyNotifications(c fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	if userID == "" {
		basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		return nil
	}
	notifications, err := h.notificationService.ListByUser(c.Context(), userID, 0)
	basehdl.HandleResponse(c, notifications, err)
	return nil
}
