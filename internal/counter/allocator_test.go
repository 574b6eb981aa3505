package counter

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/docstore"
)

func newTestAllocator() (*Allocator, *docstore.MemStore) {
	store := docstore.NewMemStore()
	return NewAllocator(store, "system", "counters"), store
}

func TestAllocatorNext(t *testing.T) {
	ctx := context.Background()

	t.Run("Bộ đếm chưa tồn tại - lần cấp đầu trả về 1", func(t *testing.T) {
		alloc, _ := newTestAllocator()

		n, err := alloc.Next(ctx, "orderCounter")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("Cấp tuần tự - số tăng nghiêm ngặt không hổng", func(t *testing.T) {
		alloc, _ := newTestAllocator()

		var got []int64
		for i := 0; i < 5; i++ {
			n, err := alloc.Next(ctx, "orderCounter")
			require.NoError(t, err)
			got = append(got, n)
		}
		assert.Equal(t, []int64{1, 2, 3, 4, 5}, got)
	})

	t.Run("Hai bộ đếm độc lập không ảnh hưởng nhau", func(t *testing.T) {
		alloc, _ := newTestAllocator()

		n1, err := alloc.Next(ctx, "orderCounter")
		require.NoError(t, err)
		n2, err := alloc.Next(ctx, "invoiceCounter")
		require.NoError(t, err)

		assert.Equal(t, int64(1), n1)
		assert.Equal(t, int64(1), n2)
	})

	t.Run("Tên bộ đếm rỗng - trả về lỗi", func(t *testing.T) {
		alloc, _ := newTestAllocator()

		_, err := alloc.Next(ctx, "")
		assert.Error(t, err)
	})

	t.Run("Bộ đếm đã có giá trị 41 - ba lần cấp trả về 42, 43, 44", func(t *testing.T) {
		alloc, store := newTestAllocator()

		err := store.Set(ctx, "system", "counters", docstore.Doc{"orderCounter": int64(41)})
		require.NoError(t, err)

		var got []int64
		for i := 0; i < 3; i++ {
			n, err := alloc.Next(ctx, "orderCounter")
			require.NoError(t, err)
			got = append(got, n)
		}
		assert.Equal(t, []int64{42, 43, 44}, got)

		doc, err := store.Get(ctx, "system", "counters")
		require.NoError(t, err)
		assert.Equal(t, int64(44), doc["orderCounter"])
	})

	t.Run("Giá trị bộ đếm lưu dạng float64 vẫn đọc đúng", func(t *testing.T) {
		alloc, store := newTestAllocator()

		err := store.Set(ctx, "system", "counters", docstore.Doc{"orderCounter": float64(7)})
		require.NoError(t, err)

		n, err := alloc.Next(ctx, "orderCounter")
		require.NoError(t, err)
		assert.Equal(t, int64(8), n)
	})
}

func TestAllocatorNextConcurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("Cấp đồng thời - không trùng, không hổng", func(t *testing.T) {
		alloc, store := newTestAllocator()

		err := store.Set(ctx, "system", "counters", docstore.Doc{"orderCounter": int64(41)})
		require.NoError(t, err)

		const workers = 3
		results := make([]int64, workers)
		errs := make([]error, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = alloc.Next(ctx, "orderCounter")
			}(i)
		}
		wg.Wait()

		for i := 0; i < workers; i++ {
			require.NoError(t, errs[i])
		}

		sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })
		assert.Equal(t, []int64{42, 43, 44}, results)

		doc, err := store.Get(ctx, "system", "counters")
		require.NoError(t, err)
		assert.Equal(t, int64(44), doc["orderCounter"])
	})

	t.Run("Cấp đồng thời nhiều worker - mỗi số đúng một lần", func(t *testing.T) {
		alloc, _ := newTestAllocator()

		const workers = 50
		results := make(chan int64, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := alloc.Next(ctx, "orderCounter")
				assert.NoError(t, err)
				results <- n
			}()
		}
		wg.Wait()
		close(results)

		seen := map[int64]bool{}
		for n := range results {
			assert.False(t, seen[n], "số %d bị cấp hai lần", n)
			seen[n] = true
		}
		for i := int64(1); i <= workers; i++ {
			assert.True(t, seen[i], "thiếu số %d trong dãy cấp", i)
		}
	})
}

// failingStore luôn trả lỗi khi chạy giao dịch, mô phỏng store bị quá tải
type failingStore struct {
	*docstore.MemStore
}

func (s *failingStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx docstore.Tx) error) error {
	return common.ErrTransaction
}

func TestAllocatorNextStoreFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("Store lỗi - trả về AllocationError", func(t *testing.T) {
		store := &failingStore{MemStore: docstore.NewMemStore()}
		alloc := NewAllocator(store, "system", "counters")

		_, err := alloc.Next(ctx, "orderCounter")
		require.Error(t, err)
		assert.True(t, common.IsAllocationError(err), "lỗi phải thuộc nhóm cấp số: %v", err)
	})
}
