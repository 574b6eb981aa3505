package categorysvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/y84-dev/API-FRIZZLY/internal/api/base/service"
	categorymodels "github.com/y84-dev/API-FRIZZLY/internal/api/category/models"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
	"github.com/y84-dev/API-FRIZZLY/internal/utility"
)

// cacheKeyList là cache key cho danh sách danh mục
const cacheKeyList = "categories:list"

// CategoryService là cấu trúc chứa các phương thức liên quan đến danh mục.
// Danh mục đọc nhiều ghi ít nên danh sách được cache in-process với TTL,
// mọi thao tác ghi đều invalidate cache.
type CategoryService struct {
	*basesvc.BaseServiceMongoImpl[categorymodels.Category]
	cache *utility.Cache
}

// NewCategoryService tạo mới CategoryService
func NewCategoryService() (*CategoryService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exist {
		return nil, fmt.Errorf("failed to get categories collection: %v", common.ErrNotFound)
	}

	return &CategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[categorymodels.Category](collection),
		cache:                utility.NewCache(5*time.Minute, 10*time.Minute),
	}, nil
}

// ListActive trả về danh mục đang hoạt động, sắp theo sortOrder, có cache TTL
func (s *CategoryService) ListActive(ctx context.Context) ([]categorymodels.Category, error) {
	if cached, found := s.cache.Get(cacheKeyList); found {
		return cached.([]categorymodels.Category), nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}})
	categories, err := s.BaseServiceMongoImpl.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKeyList, categories)
	return categories, nil
}

// InsertOne tạo danh mục và invalidate cache danh sách
func (s *CategoryService) InsertOne(ctx context.Context, data categorymodels.Category) (categorymodels.Category, error) {
	result, err := s.BaseServiceMongoImpl.InsertOne(ctx, data)
	if err == nil {
		s.cache.Delete(cacheKeyList)
	}
	return result, err
}

// UpdateById cập nhật danh mục và invalidate cache danh sách
func (s *CategoryService) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (categorymodels.Category, error) {
	result, err := s.BaseServiceMongoImpl.UpdateById(ctx, id, data)
	if err == nil {
		s.cache.Delete(cacheKeyList)
	}
	return result, err
}

// DeleteById xóa danh mục và invalidate cache danh sách
func (s *CategoryService) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	err := s.BaseServiceMongoImpl.DeleteById(ctx, id)
	if err == nil {
		s.cache.Delete(cacheKeyList)
	}
	return err
}

// Upsert ghi danh mục và invalidate cache danh sách
func (s *CategoryService) Upsert(ctx context.Context, filter interface{}, data interface{}) (categorymodels.Category, error) {
	result, err := s.BaseServiceMongoImpl.Upsert(ctx, filter, data)
	if err == nil {
		s.cache.Delete(cacheKeyList)
	}
	return result, err
}
