package docstore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/y84-dev/API-FRIZZLY/internal/common"
)

func TestMemStoreBasicOps(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	t.Run("Get document không tồn tại - trả về ErrNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "orders", "ORD1")
		assert.True(t, common.IsNotFound(err))
	})

	t.Run("Set rồi Get - đọc lại đúng dữ liệu kèm _id", func(t *testing.T) {
		err := store.Set(ctx, "orders", "ORD1", Doc{"status": "PENDING", "totalAmount": 50000.0})
		require.NoError(t, err)

		doc, err := store.Get(ctx, "orders", "ORD1")
		require.NoError(t, err)
		assert.Equal(t, "PENDING", doc["status"])
		assert.Equal(t, 50000.0, doc["totalAmount"])
		assert.Equal(t, "ORD1", doc[FieldID])
	})

	t.Run("Sửa document trả về từ Get không ảnh hưởng store", func(t *testing.T) {
		doc, err := store.Get(ctx, "orders", "ORD1")
		require.NoError(t, err)
		doc["status"] = "CANCELLED"

		again, err := store.Get(ctx, "orders", "ORD1")
		require.NoError(t, err)
		assert.Equal(t, "PENDING", again["status"])
	})

	t.Run("Delete - document biến mất, xóa lần nữa không lỗi", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "orders", "ORD1"))

		_, err := store.Get(ctx, "orders", "ORD1")
		assert.True(t, common.IsNotFound(err))

		assert.NoError(t, store.Delete(ctx, "orders", "ORD1"))
	})
}

func TestMemStoreQuery(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	require.NoError(t, store.Set(ctx, "products", "p1", Doc{"name": "Trà sữa", "price": 30000.0, "isActive": true}))
	require.NoError(t, store.Set(ctx, "products", "p2", Doc{"name": "Cà phê", "price": 25000.0, "isActive": true}))
	require.NoError(t, store.Set(ctx, "products", "p3", Doc{"name": "Bánh mì", "price": 20000.0, "isActive": false}))

	t.Run("Không filter - trả về tất cả", func(t *testing.T) {
		docs, err := store.Query(ctx, "products", nil, 0)
		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("Filter == trên bool", func(t *testing.T) {
		docs, err := store.Query(ctx, "products", []Filter{{Field: "isActive", Op: "==", Value: true}}, 0)
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("Filter > trên số - so sánh được giữa int và float", func(t *testing.T) {
		docs, err := store.Query(ctx, "products", []Filter{{Field: "price", Op: ">", Value: 24000}}, 0)
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("Limit giới hạn số document trả về", func(t *testing.T) {
		docs, err := store.Query(ctx, "products", nil, 2)
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("Toán tử không hỗ trợ - trả về lỗi", func(t *testing.T) {
		_, err := store.Query(ctx, "products", []Filter{{Field: "name", Op: "~", Value: "Trà"}}, 0)
		assert.Error(t, err)
	})
}

func TestMemStoreRunTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Callback lỗi - không ghi gì và lỗi trả về nguyên vẹn", func(t *testing.T) {
		store := NewMemStore()
		wantErr := common.ErrInvalidInput

		err := store.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
			if err := tx.Set(ctx, "orders", "ORD1", Doc{"status": "PENDING"}); err != nil {
				return err
			}
			return wantErr
		})
		require.ErrorIs(t, err, wantErr)
		assert.Equal(t, 0, store.Count("orders"))
	})

	t.Run("Đọc lại giá trị vừa ghi trong cùng giao dịch", func(t *testing.T) {
		store := NewMemStore()

		err := store.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
			if err := tx.Set(ctx, "system", "counters", Doc{"orderCounter": int64(9)}); err != nil {
				return err
			}
			doc, err := tx.Get(ctx, "system", "counters")
			if err != nil {
				return err
			}
			assert.Equal(t, int64(9), doc["orderCounter"])
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("Giao dịch đồng thời trên cùng document - tất cả increment đều được tính", func(t *testing.T) {
		store := NewMemStore()
		require.NoError(t, store.Set(ctx, "system", "counters", Doc{"n": int64(0)}))

		const workers = 20
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
					doc, err := tx.Get(ctx, "system", "counters")
					if err != nil {
						return err
					}
					doc["n"] = doc["n"].(int64) + 1
					return tx.Set(ctx, "system", "counters", doc)
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		doc, err := store.Get(ctx, "system", "counters")
		require.NoError(t, err)
		assert.Equal(t, int64(workers), doc["n"])
	})
}
