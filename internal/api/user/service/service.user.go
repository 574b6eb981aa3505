package usersvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	usermodels "github.com/y84-dev/API-FRIZZLY/internal/api/user/models"
	userdto "github.com/y84-dev/API-FRIZZLY/internal/api/user/dto"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/docstore"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
	"github.com/y84-dev/API-FRIZZLY/internal/utility"
)

// UserService xử lý nghiệp vụ hồ sơ người dùng trên document store
type UserService struct {
	store    docstore.Store
	usersCol string
}

// NewUserService tạo mới UserService
func NewUserService(store docstore.Store) *UserService {
	return &UserService{
		store:    store,
		usersCol: global.MongoDB_ColNames.Users,
	}
}

// CreateProfile tạo hồ sơ người dùng. userId và email là bắt buộc,
// document dùng chính userId làm id nên ghi lại sẽ ghi đè hồ sơ cũ.
func (s *UserService) CreateProfile(ctx context.Context, input *userdto.UserCreateInput) (*usermodels.User, error) {
	if input == nil || input.UserID == "" || input.Email == "" {
		return nil, common.NewValidationError("Thiếu userId hoặc email", nil)
	}

	now := utility.CurrentTimeInMilli()
	user := usermodels.User{
		ID:           input.UserID,
		UserID:       input.UserID,
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		PhoneNumbers: input.PhoneNumbers,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	doc, err := toDoc(user)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, s.usersCol, user.ID, doc); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile đọc hồ sơ người dùng. Người dùng chỉ xem được hồ sơ của chính mình.
func (s *UserService) GetProfile(ctx context.Context, callerID string, userID string) (*usermodels.User, error) {
	if callerID != userID {
		return nil, common.NewError(common.ErrCodeAuthRole, "Không có quyền xem hồ sơ của người khác", common.StatusForbidden, nil)
	}
	doc, err := s.store.Get(ctx, s.usersCol, userID)
	if err != nil {
		return nil, err
	}
	return docToUser(doc)
}

// SetDeviceToken đăng ký device token nhận thông báo đẩy cho người dùng
func (s *UserService) SetDeviceToken(ctx context.Context, userID string, token string) error {
	if token == "" {
		return common.NewValidationError("Thiếu device token", nil)
	}
	doc, err := s.store.Get(ctx, s.usersCol, userID)
	if err != nil {
		return err
	}
	doc["deviceToken"] = token
	doc["updatedAt"] = utility.CurrentTimeInMilli()
	return s.store.Set(ctx, s.usersCol, userID, doc)
}

// ListAll trả về mọi hồ sơ người dùng (dành cho admin)
func (s *UserService) ListAll(ctx context.Context, limit int64) ([]*usermodels.User, error) {
	docs, err := s.store.Query(ctx, s.usersCol, nil, limit)
	if err != nil {
		return nil, err
	}
	users := make([]*usermodels.User, 0, len(docs))
	for _, doc := range docs {
		user, err := docToUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// toDoc chuyển struct sang docstore.Doc qua bson tags
func toDoc(v interface{}) (docstore.Doc, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, common.NewError(common.ErrCodeDatabase, "Lỗi chuyển đổi dữ liệu: "+err.Error(), common.StatusInternalServerError, nil)
	}
	var doc docstore.Doc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, common.NewError(common.ErrCodeDatabase, "Lỗi chuyển đổi dữ liệu: "+err.Error(), common.StatusInternalServerError, nil)
	}
	return doc, nil
}

// docToUser chuyển docstore.Doc sang User qua bson tags
func docToUser(doc docstore.Doc) (*usermodels.User, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, common.NewError(common.ErrCodeDatabase, "Lỗi đọc dữ liệu người dùng: "+err.Error(), common.StatusInternalServerError, nil)
	}
	var user usermodels.User
	if err := bson.Unmarshal(raw, &user); err != nil {
		return nil, common.NewError(common.ErrCodeDatabase, "Lỗi đọc dữ liệu người dùng: "+err.Error(), common.StatusInternalServerError, nil)
	}
	return &user, nil
}
