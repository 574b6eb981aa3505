package productsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/y84-dev/API-FRIZZLY/internal/api/base/service"
	productmodels "github.com/y84-dev/API-FRIZZLY/internal/api/product/models"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
)

// maxPublicListLimit là trần số sản phẩm trả về cho endpoint công khai
const maxPublicListLimit = 100

// ProductService là cấu trúc chứa các phương thức liên quan đến sản phẩm
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[productmodels.Product]
}

// NewProductService tạo mới ProductService
func NewProductService() (*ProductService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}

	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[productmodels.Product](collection),
	}, nil
}

// ListPublic trả về danh sách sản phẩm cho endpoint công khai.
// activeOnly lọc theo isActive, limit bị chặn trần maxPublicListLimit.
func (s *ProductService) ListPublic(ctx context.Context, activeOnly bool, limit int64) ([]productmodels.Product, error) {
	if limit <= 0 || limit > maxPublicListLimit {
		limit = maxPublicListLimit
	}

	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	opts := options.Find().SetLimit(limit)
	return s.Find(ctx, filter, opts)
}
