package usersvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userdto "github.com/y84-dev/API-FRIZZLY/internal/api/user/dto"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/docstore"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()

	t.Run("Tạo hồ sơ cần userId và email", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := NewUserService(store)

		_, err := svc.CreateProfile(ctx, &userdto.UserCreateInput{UserID: "", Email: "a@b.vn"})
		require.Error(t, err)
		assert.True(t, common.IsValidationError(err))

		_, err = svc.CreateProfile(ctx, &userdto.UserCreateInput{UserID: "uid-1", Email: ""})
		require.Error(t, err)
		assert.True(t, common.IsValidationError(err))
		assert.Equal(t, 0, store.Count("users"))
	})

	t.Run("Tạo hồ sơ rồi đọc lại hồ sơ của chính mình", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := NewUserService(store)

		created, err := svc.CreateProfile(ctx, &userdto.UserCreateInput{
			UserID:      "uid-1",
			Email:       "u1@frizzly.vn",
			DisplayName: "Người dùng 1",
		})
		require.NoError(t, err)
		assert.Equal(t, "uid-1", created.ID)

		user, err := svc.GetProfile(ctx, "uid-1", "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "u1@frizzly.vn", user.Email)
		assert.Equal(t, "Người dùng 1", user.DisplayName)
	})

	t.Run("Không đọc được hồ sơ của người khác", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := NewUserService(store)

		_, err := svc.CreateProfile(ctx, &userdto.UserCreateInput{UserID: "uid-1", Email: "u1@frizzly.vn"})
		require.NoError(t, err)

		_, err = svc.GetProfile(ctx, "uid-2", "uid-1")
		require.Error(t, err)

		var customErr *common.Error
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, common.StatusForbidden, customErr.StatusCode)
	})

	t.Run("Đăng ký device token", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := NewUserService(store)

		_, err := svc.CreateProfile(ctx, &userdto.UserCreateInput{UserID: "uid-1", Email: "u1@frizzly.vn"})
		require.NoError(t, err)

		require.NoError(t, svc.SetDeviceToken(ctx, "uid-1", "fcm-token-abc"))

		doc, err := store.Get(ctx, "users", "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "fcm-token-abc", doc["deviceToken"])
	})

	t.Run("Đăng ký token cho người chưa có hồ sơ thì not found", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := NewUserService(store)

		err := svc.SetDeviceToken(ctx, "uid-unknown", "fcm-token")
		require.Error(t, err)
		assert.True(t, common.IsNotFound(err))
	})
}
