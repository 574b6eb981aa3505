package adminsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	t.Run("Mật khẩu đúng thì so khớp được với hash", func(t *testing.T) {
		hash, err := HashPassword("mật-khẩu-bí-mật-123")
		require.NoError(t, err)
		assert.NotEqual(t, "mật-khẩu-bí-mật-123", hash)
		assert.True(t, CheckPassword(hash, "mật-khẩu-bí-mật-123"))
	})

	t.Run("Mật khẩu sai thì không so khớp", func(t *testing.T) {
		hash, err := HashPassword("mật-khẩu-bí-mật-123")
		require.NoError(t, err)
		assert.False(t, CheckPassword(hash, "mật-khẩu-sai"))
		assert.False(t, CheckPassword(hash, ""))
	})

	t.Run("Hai lần băm cùng mật khẩu cho hash khác nhau", func(t *testing.T) {
		hash1, err := HashPassword("cùng-một-mật-khẩu")
		require.NoError(t, err)
		hash2, err := HashPassword("cùng-một-mật-khẩu")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})
}
