package userhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/y84-dev/API-FRIZZLY/internal/api/base/handler"
	userdto "github.com/y84-dev/API-FRIZZLY/internal/api/user/dto"
	usersvc "github.com/y84-dev/API-FRIZZLY/internal/api/user/service"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
	"github.com/y84-dev/API-FRIZZLY/internal/logger"
)

// UserHandler xử lý các request liên quan đến hồ sơ người dùng
type UserHandler struct {
	userService *usersvc.UserService
}

// NewUserHandler tạo mới UserHandler
func NewUserHandler(userService *usersvc.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// HandleCreateProfile xử lý POST /users: tạo hồ sơ người dùng
func (h *UserHandler) HandleCreateProfile(c fiber.Ctx) error {
	input := new(userdto.UserCreateInput)
	if err := c.Bind().Body(input); err != nil {
		basehdl.HandleResponse(c, nil, common.NewValidationError("Dữ liệu không hợp lệ", err.Error()))
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		basehdl.HandleResponse(c, nil, common.NewValidationError("Dữ liệu không hợp lệ", basehdl.FormatValidationErrors(err)))
		return nil
	}

	user, err := h.userService.CreateProfile(c.Context(), input)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	logger.LogAction("user_profile_created", c, map[string]interface{}{"userId": user.ID})
	basehdl.HandleResponse(c, user, nil)
	return nil
}

// HandleGetProfile xử lý GET /users/:id: chỉ xem được hồ sơ của chính mình
func (h *UserHandler) HandleGetProfile(c fiber.Ctx) error {
	callerID, _ := c.Locals("userID").(string)
	user, err := h.userService.GetProfile(c.Context(), callerID, c.Params("id"))
	basehdl.HandleResponse(c, user, err)
	return nil
}

// HandleSetDeviceToken xử lý PUT /users/device-token: đăng ký token nhận push
func (h *UserHandler) HandleSetDeviceToken(c fiber.Ctx) error {
	callerID, _ := c.Locals("userID").(string)
	if callerID == "" {
		basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		return nil
	}

	input := new(userdto.DeviceTokenInput)
	if err := c.Bind().Body(input); err != nil {
		basehdl.HandleResponse(c, nil, common.NewValidationError("Dữ liệu không hợp lệ", err.Error()))
		return nil
	}
	if err := h.userService.SetDeviceToken(c.Context(), callerID, input.DeviceToken); err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	basehdl.HandleResponse(c, fiber.Map{"userId": callerID}, nil)
	return nil
}

// HandleAdminListUsers xử lý GET /admin/users: danh sách mọi người dùng
func (h *UserHandler) HandleAdminListUsers(c fiber.Ctx) error {
	users, err := h.userService.ListAll(c.Context(), 0)
	basehdl.HandleResponse(c, users, err)
	return nil
}
