package global

import (
	"github.com/go-playground/validator/v10"

	ordermodels "github.com/y84-dev/API-FRIZZLY/internal/api/order/models"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	// order_status: giá trị phải thuộc tập trạng thái đơn hàng hợp lệ
	_ = Validate.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return ordermodels.IsValidStatus(fl.Field().String())
	})
}
