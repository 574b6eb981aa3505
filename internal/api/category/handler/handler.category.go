package categoryhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/y84-dev/API-FRIZZLY/internal/api/base/handler"
	categorydto "github.com/y84-dev/API-FRIZZLY/internal/api/category/dto"
	categorymodels "github.com/y84-dev/API-FRIZZLY/internal/api/category/models"
	categorysvc "github.com/y84-dev/API-FRIZZLY/internal/api/category/service"
)

// CategoryHandler xử lý các request liên quan đến danh mục sản phẩm
type CategoryHandler struct {
	*basehdl.BaseHandler[categorymodels.Category, categorydto.CategoryCreateInput, categorydto.CategoryUpdateInput]
	categoryService *categorysvc.CategoryService
}

// NewCategoryHandler tạo mới CategoryHandler
func NewCategoryHandler() (*CategoryHandler, error) {
	categoryService, err := categorysvc.NewCategoryService()
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %v", err)
	}

	return &CategoryHandler{
		BaseHandler:     basehdl.NewBaseHandler[categorymodels.Category, categorydto.CategoryCreateInput, categorydto.CategoryUpdateInput](categoryService),
		categoryService: categoryService,
	}, nil
}

// HandlePublicList xử lý GET /categories: danh mục đang hoạt động, có cache
func (h *CategoryHandler) HandlePublicList(c fiber.Ctx) error {
	categories, err := h.categoryService.ListActive(c.Context())
	h.HandleResponse(c, categories, err)
	return nil
}
