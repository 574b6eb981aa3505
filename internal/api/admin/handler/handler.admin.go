package adminhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	admindto "github.com/y84-dev/API-FRIZZLY/internal/api/admin/dto"
	adminsvc "github.com/y84-dev/API-FRIZZLY/internal/api/admin/service"
	basehdl "github.com/y84-dev/API-FRIZZLY/internal/api/base/handler"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
	"github.com/y84-dev/API-FRIZZLY/internal/logger"
)

// AdminHandler xử lý các request liên quan đến tài khoản quản trị
type AdminHandler struct {
	adminService *adminsvc.AdminService
}

// NewAdminHandler tạo mới AdminHandler
func NewAdminHandler() (*AdminHandler, error) {
	adminService, err := adminsvc.NewAdminService()
	if err != nil {
		return nil, fmt.Errorf("failed to create admin service: %v", err)
	}
	return &AdminHandler{adminService: adminService}, nil
}

// HandleLogin xử lý POST /admin/login: đăng nhập bằng email và mật khẩu
func (h *AdminHandler) HandleLogin(c fiber.Ctx) error {
	input := new(admindto.AdminLoginInput)
	if err := c.Bind().Body(input); err != nil {
		basehdl.HandleResponse(c, nil, common.NewValidationError("Dữ liệu không hợp lệ", err.Error()))
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		basehdl.HandleResponse(c, nil, common.NewValidationError("Dữ liệu không hợp lệ", basehdl.FormatValidationErrors(err)))
		return nil
	}

	result, err := h.adminService.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		logger.LogAuth("admin_login_failed", c, map[string]interface{}{"email": input.Email})
		basehdl.HandleResponse(c, nil, err)
		return nil
	}

	logger.LogAuth("admin_login", c, map[string]interface{}{"adminId": result.AdminID})
	basehdl.HandleResponse(c, result, nil)
	return nil
}

// HandleCreateAdmin xử lý POST /admin/accounts: admin hiện hữu tạo admin mới
func (h *AdminHandler) HandleCreateAdmin(c fiber.Ctx) error {
	input := new(admindto.AdminCreateInput)
	if err := c.Bind().Body(input); err != nil {
		basehdl.HandleResponse(c, nil, common.NewValidationError("Dữ liệu không hợp lệ", err.Error()))
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		basehdl.HandleResponse(c, nil, common.NewValidationError("Dữ liệu không hợp lệ", basehdl.FormatValidationErrors(err)))
		return nil
	}

	admin, err := h.adminService.CreateAdmin(c.Context(), input.Email, input.Password, input.Name, input.DeviceToken)
	if err != nil {
		basehdl.HandleResponse(c, nil, err)
		return nil
	}
	logger.LogAction("admin_created", c, map[string]interface{}{"adminId": admin.ID.Hex()})
	basehdl.HandleResponse(c, admin, nil)
	return nil
}
