// Package basehdl - base CRUD handlers.
// Package này cung cấp các chức năng CRUD cơ bản và các tiện ích để xử lý request/response.
package basehdl

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/y84-dev/API-FRIZZLY/internal/api/base/service"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
)

// BaseHandler chứa service và cung cấp các handler CRUD chung cho một model.
// Type Parameters:
//   - T: Kiểu dữ liệu của model
//   - CreateInput: DTO cho thao tác tạo mới
//   - UpdateInput: DTO cho thao tác cập nhật
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService basesvc.BaseServiceMongo[T]
}

// NewBaseHandler tạo một BaseHandler mới trên service được cung cấp
func NewBaseHandler[T any, CreateInput any, UpdateInput any](service basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: service,
	}
}

// ParseRequestBody parse request body JSON vào out
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, out interface{}) error {
	return c.Bind().Body(out)
}

// ValidateInput validate input với struct tag (validate, oneof, etc.)
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewValidationError(common.MsgValidationError, FormatValidationErrors(err))
	}
	return nil
}

// FormatValidationErrors chuyển lỗi của validator thành map field -> mô tả lỗi
func FormatValidationErrors(err error) map[string]string {
	details := map[string]string{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details[fe.Field()] = fmt.Sprintf("không thỏa điều kiện '%s'", fe.Tag())
		}
		return details
	}
	details["error"] = err.Error()
	return details
}

// ProcessFilter đọc filter JSON từ query string và chuyển thành bson.M.
// Filter rỗng trả về bson.M{} (match tất cả).
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (interface{}, error) {
	filterStr := c.Query("filter", "{}")

	var filter bson.M
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter phải là một JSON object hợp lệ. Giá trị nhận được: %s", filterStr),
			common.StatusBadRequest,
			err,
		)
	}
	if filter == nil {
		filter = bson.M{}
	}

	return filter, nil
}

// TransformCreateInputToModel chuyển DTO tạo mới sang model theo bson tag
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	return transformByBsonTags[CreateInput, T](input)
}

// TransformUpdateInputToMap chuyển DTO cập nhật sang map các field cần $set.
// Chỉ các field khác zero value (sau marshal với omitempty) được đưa vào map.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToMap(input *UpdateInput) (map[string]interface{}, error) {
	raw, err := bson.Marshal(input)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// transformByBsonTags chuyển struct From sang struct To qua bson marshal/unmarshal,
// các field khớp nhau theo bson tag
func transformByBsonTags[From any, To any](from *From) (*To, error) {
	raw, err := bson.Marshal(from)
	if err != nil {
		return nil, err
	}
	var to To
	if err := bson.Unmarshal(raw, &to); err != nil {
		return nil, err
	}
	return &to, nil
}
