package producthdl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/y84-dev/API-FRIZZLY/internal/api/base/handler"
	productdto "github.com/y84-dev/API-FRIZZLY/internal/api/product/dto"
	productmodels "github.com/y84-dev/API-FRIZZLY/internal/api/product/models"
	productsvc "github.com/y84-dev/API-FRIZZLY/internal/api/product/service"
)

// ProductHandler xử lý các request liên quan đến sản phẩm
type ProductHandler struct {
	*basehdl.BaseHandler[productmodels.Product, productdto.ProductCreateInput, productdto.ProductUpdateInput]
	productService *productsvc.ProductService
}

// NewProductHandler tạo mới ProductHandler
func NewProductHandler() (*ProductHandler, error) {
	productService, err := productsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}

	return &ProductHandler{
		BaseHandler:    basehdl.NewBaseHandler[productmodels.Product, productdto.ProductCreateInput, productdto.ProductUpdateInput](productService),
		productService: productService,
	}, nil
}

// HandlePublicList xử lý GET /products: danh sách sản phẩm công khai.
// Query params: active (mặc định true), limit (trần 100).
func (h *ProductHandler) HandlePublicList(c fiber.Ctx) error {
	activeOnly := !strings.EqualFold(c.Query("active", "true"), "false")

	limit, err := strconv.ParseInt(c.Query("limit", "100"), 10, 64)
	if err != nil {
		limit = 100
	}

	products, err := h.productService.ListPublic(c.Context(), activeOnly, limit)
	h.HandleResponse(c, products, err)
	return nil
}
