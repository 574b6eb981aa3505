package adminsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	adminmodels "github.com/y84-dev/API-FRIZZLY/internal/api/admin/models"
	basesvc "github.com/y84-dev/API-FRIZZLY/internal/api/base/service"
	"github.com/y84-dev/API-FRIZZLY/internal/api/middleware"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
	"github.com/y84-dev/API-FRIZZLY/internal/utility"
)

// tokenTTL là thời gian sống của JWT quản trị viên
const tokenTTL = 72 * time.Hour

// AdminService là cấu trúc chứa các phương thức liên quan đến tài khoản quản trị
type AdminService struct {
	*basesvc.BaseServiceMongoImpl[adminmodels.Admin]
}

// NewAdminService tạo mới AdminService
func NewAdminService() (*AdminService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Admins)
	if !exist {
		return nil, fmt.Errorf("failed to get admins collection: %v", common.ErrNotFound)
	}

	return &AdminService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[adminmodels.Admin](collection),
	}, nil
}

// HashPassword băm mật khẩu bằng bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Không băm được mật khẩu", common.StatusInternalServerError, nil)
	}
	return string(hash), nil
}

// CheckPassword so khớp mật khẩu với hash bcrypt
func CheckPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// LoginResult là kết quả đăng nhập quản trị viên
type LoginResult struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
}

// Login xác thực quản trị viên bằng email và mật khẩu, trả về JWT.
// Sai email hay sai mật khẩu đều trả về cùng một lỗi để tránh dò tài khoản.
func (s *AdminService) Login(ctx context.Context, email string, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, common.NewValidationError("Thiếu email hoặc mật khẩu", nil)
	}

	admin, err := s.FindOne(ctx, bson.M{"email": email}, nil)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(admin.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.issueToken(&admin)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:   token,
		AdminID: admin.ID.Hex(),
		Email:   admin.Email,
		Name:    admin.Name,
	}, nil
}

// issueToken ký JWT HMAC cho quản trị viên
func (s *AdminService) issueToken(admin *adminmodels.Admin) (string, error) {
	now := time.Now()
	claims := middleware.AdminClaims{
		AdminID:  admin.ID.Hex(),
		Username: admin.Email,
		Role:     "admin",
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(global.ServerConfig.JwtSecret))
	if err != nil {
		return "", common.NewError(common.ErrCodeInternalServer, "Không ký được token", common.StatusInternalServerError, nil)
	}
	return signed, nil
}

// CreateAdmin tạo tài khoản quản trị mới với mật khẩu đã băm
func (s *AdminService) CreateAdmin(ctx context.Context, email string, password string, name string, deviceToken string) (*adminmodels.Admin, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := utility.CurrentTimeInMilli()
	admin, err := s.InsertOne(ctx, adminmodels.Admin{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		DeviceToken:  deviceToken,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
