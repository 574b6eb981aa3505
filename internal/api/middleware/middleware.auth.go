package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
	"github.com/y84-dev/API-FRIZZLY/internal/logger"
	"github.com/y84-dev/API-FRIZZLY/internal/utility"
)

// tokenCache cache kết quả verify Firebase ID token để giảm số lần gọi Firebase.
// TTL 5 phút, dọn dẹp mỗi 10 phút.
var tokenCache = utility.NewCache(5*time.Minute, 10*time.Minute)

// extractBearerToken lấy token từ header Authorization theo định dạng "Bearer <token>".
//
// Returns:
//   - string: token nếu header hợp lệ
//   - error: common.ErrTokenMissing hoặc common.ErrTokenInvalid
func extractBearerToken(c fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", common.ErrTokenMissing
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", common.ErrTokenInvalid
	}
	return parts[1], nil
}

// RequireAuth middleware xác thực người dùng bằng Firebase ID token.
// Token hợp lệ thì lưu userID (Firebase UID) vào context qua c.Locals("userID").
func RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, err := extractBearerToken(c)
		if err != nil {
			// Chỉ log khi thiếu token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Thiếu hoặc sai định dạng Authorization header")
			HandleErrorResponse(c, err)
			return nil
		}

		// Kiểm tra cache trước để tránh gọi Firebase mỗi request
		if cached, found := tokenCache.Get(token); found {
			c.Locals("userID", cached.(string))
			return c.Next()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		decoded, err := utility.VerifyIDToken(ctx, token)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Firebase ID token không hợp lệ")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		tokenCache.Set(token, decoded.UID)
		c.Locals("userID", decoded.UID)
		return c.Next()
	}
}

// AdminClaims là claims trong JWT của quản trị viên.
type AdminClaims struct {
	AdminID  string `json:"adminId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

// RequireAdmin middleware xác thực quản trị viên bằng JWT (ký HMAC với JwtSecret).
// Token hợp lệ thì lưu adminID và adminUsername vào context.
func RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		tokenStr, err := extractBearerToken(c)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Thiếu hoặc sai định dạng Authorization header (admin)")
			HandleErrorResponse(c, err)
			return nil
		}

		claims := new(AdminClaims)
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, common.ErrTokenInvalid
			}
			return []byte(global.ServerConfig.JwtSecret), nil
		})
		if err != nil || !token.Valid {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path": c.Path(),
			}).Warn("❌ [AUTH] Admin JWT không hợp lệ hoặc hết hạn")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		if claims.Role != "admin" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path": c.Path(),
				"role": claims.Role,
			}).Warn("❌ [AUTH] Token không có quyền quản trị viên")
			HandleErrorResponse(c, common.ErrNotAdmin)
			return nil
		}

		c.Locals("adminID", claims.AdminID)
		c.Locals("adminUsername", claims.Username)
		return c.Next()
	}
}
