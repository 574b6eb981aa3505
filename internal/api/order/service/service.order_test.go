package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdto "github.com/y84-dev/API-FRIZZLY/internal/api/order/dto"
	ordermodels "github.com/y84-dev/API-FRIZZLY/internal/api/order/models"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/counter"
	"github.com/y84-dev/API-FRIZZLY/internal/docstore"
)

// fakePush ghi lại một lần gửi push trong test
type fakePush struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// fakeSender là push gateway giả: ghi lại mọi lần gửi, có thể giả lập lỗi
type fakeSender struct {
	mu     sync.Mutex
	fail   bool
	pushes []fakePush
}

func (f *fakeSender) Send(ctx context.Context, token string, title string, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, fakePush{Token: token, Title: title, Body: body, Data: data})
	if f.fail {
		return errors.New("push gateway không phản hồi")
	}
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushes)
}

func (f *fakeSender) all() []fakePush {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]fakePush, len(f.pushes))
	copy(out, f.pushes)
	return out
}

// failingStore giả lập store không hoàn thành được giao dịch
type failingStore struct {
	*docstore.MemStore
}

func (s *failingStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx docstore.Tx) error) error {
	return common.ErrTransaction
}

func newTestService(store docstore.Store, sender *fakeSender) *OrderService {
	allocator := counter.NewAllocator(store, "system", "counters")
	if sender == nil {
		return NewOrderService(store, allocator, nil)
	}
	return NewOrderService(store, allocator, sender)
}

func validInput() *orderdto.OrderCreateInput {
	return &orderdto.OrderCreateInput{
		Items: []orderdto.OrderItemInput{
			{Name: "Trà sữa trân châu", Price: 45000, Quantity: 2},
			{Name: "Bánh mì", Price: 20000, Quantity: 1},
		},
		TotalAmount:      110000,
		DeliveryLocation: "Tòa A, tầng 3",
	}
}

func TestSubmitOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Tạo đơn hàng thành công với trạng thái PENDING", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)

		orderID, orderNumber, err := svc.SubmitOrder(ctx, "user-1", validInput())
		require.NoError(t, err)
		assert.Equal(t, int64(1), orderNumber)
		assert.Equal(t, "ORD1", orderID)

		doc, err := store.Get(ctx, "orders", orderID)
		require.NoError(t, err)
		assert.Equal(t, ordermodels.StatusPending, doc["status"])
		assert.Equal(t, "user-1", doc["userId"])
	})

	t.Run("userId luôn lấy từ người gọi, không tin payload", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)

		orderID, _, err := svc.SubmitOrder(ctx, "caller-uid", validInput())
		require.NoError(t, err)

		doc, err := store.Get(ctx, "orders", orderID)
		require.NoError(t, err)
		assert.Equal(t, "caller-uid", doc["userId"])
	})

	t.Run("Bộ đếm 41 với 3 lần tạo đồng thời nhận đúng {42,43,44}", func(t *testing.T) {
		store := docstore.NewMemStore()
		require.NoError(t, store.Set(ctx, "system", "counters", docstore.Doc{"orderCounter": int64(41)}))
		svc := newTestService(store, nil)

		var wg sync.WaitGroup
		var mu sync.Mutex
		var numbers []int64
		var ids []string
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				orderID, n, err := svc.SubmitOrder(ctx, fmt.Sprintf("user-%d", i), validInput())
				require.NoError(t, err)
				mu.Lock()
				numbers = append(numbers, n)
				ids = append(ids, orderID)
				mu.Unlock()
			}(i)
		}
		wg.Wait()

		sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
		assert.Equal(t, []int64{42, 43, 44}, numbers)

		// Mỗi số thứ tự nằm trên một document riêng
		seen := make(map[string]bool)
		for _, id := range ids {
			assert.False(t, seen[id])
			seen[id] = true
			_, err := store.Get(ctx, "orders", id)
			require.NoError(t, err)
		}

		counterDoc, err := store.Get(ctx, "system", "counters")
		require.NoError(t, err)
		assert.EqualValues(t, 44, counterDoc["orderCounter"])
	})

	t.Run("Giá sản phẩm bằng 0 thì lỗi validation và không ghi gì", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)

		input := &orderdto.OrderCreateInput{
			Items:       []orderdto.OrderItemInput{{Name: "X", Price: 0, Quantity: 1}},
			TotalAmount: 0,
		}
		_, _, err := svc.SubmitOrder(ctx, "user-1", input)
		require.Error(t, err)
		assert.True(t, common.IsValidationError(err))
		assert.Equal(t, 0, store.Count("orders"))
		assert.Equal(t, 0, store.Count("system"))
	})

	t.Run("Các vi phạm validation khác đều fail trước khi ghi", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)

		cases := []*orderdto.OrderCreateInput{
			{Items: nil, TotalAmount: 100, DeliveryLocation: "A"},
			{Items: []orderdto.OrderItemInput{{Price: 100, Quantity: 0}}, TotalAmount: 100, DeliveryLocation: "A"},
			{Items: []orderdto.OrderItemInput{{Price: 100, Quantity: -2}}, TotalAmount: 100, DeliveryLocation: "A"},
			{Items: []orderdto.OrderItemInput{{Price: -5, Quantity: 1}}, TotalAmount: 100, DeliveryLocation: "A"},
			{Items: []orderdto.OrderItemInput{{Price: 100, Quantity: 1}}, TotalAmount: -1, DeliveryLocation: "A"},
			{Items: []orderdto.OrderItemInput{{Price: 100, Quantity: 1}}, TotalAmount: 100, DeliveryLocation: ""},
		}
		for _, input := range cases {
			_, _, err := svc.SubmitOrder(ctx, "user-1", input)
			require.Error(t, err)
			assert.True(t, common.IsValidationError(err))
		}
		assert.Equal(t, 0, store.Count("orders"))
	})

	t.Run("Allocator lỗi thì không có đơn hàng nào được tạo", func(t *testing.T) {
		store := &failingStore{MemStore: docstore.NewMemStore()}
		svc := newTestService(store, nil)

		_, _, err := svc.SubmitOrder(ctx, "user-1", validInput())
		require.Error(t, err)
		assert.True(t, common.IsAllocationError(err))
		assert.Equal(t, 0, store.Count("orders"))
	})

	t.Run("Fan-out thông báo cho admin giới hạn 20 người nhận", func(t *testing.T) {
		store := docstore.NewMemStore()
		sender := &fakeSender{}
		svc := newTestService(store, sender)

		// 25 admin đều có token, chỉ 20 người đầu trong cửa sổ truy vấn được gửi
		for i := 0; i < 25; i++ {
			require.NoError(t, store.Set(ctx, "admins", fmt.Sprintf("admin-%d", i), docstore.Doc{
				"email":       fmt.Sprintf("admin%d@frizzly.vn", i),
				"deviceToken": fmt.Sprintf("token-%d", i),
			}))
		}

		_, _, err := svc.SubmitOrder(ctx, "user-1", validInput())
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			return sender.count() == 20
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("Admin không có device token thì bị bỏ qua khi fan-out", func(t *testing.T) {
		store := docstore.NewMemStore()
		sender := &fakeSender{}
		svc := newTestService(store, sender)

		require.NoError(t, store.Set(ctx, "admins", "admin-1", docstore.Doc{
			"email":       "admin1@frizzly.vn",
			"deviceToken": "token-1",
		}))
		require.NoError(t, store.Set(ctx, "admins", "admin-2", docstore.Doc{
			"email":       "admin2@frizzly.vn",
			"deviceToken": "token-2",
		}))
		require.NoError(t, store.Set(ctx, "admins", "admin-no-token", docstore.Doc{
			"email": "quiet@frizzly.vn",
		}))

		_, _, err := svc.SubmitOrder(ctx, "user-1", validInput())
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			return sender.count() == 2
		}, 2*time.Second, 10*time.Millisecond)

		// Không có push nào tới admin thiếu token
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 2, sender.count())
	})

	t.Run("Push gửi admin thất bại không làm fail việc tạo đơn", func(t *testing.T) {
		store := docstore.NewMemStore()
		sender := &fakeSender{fail: true}
		svc := newTestService(store, sender)

		require.NoError(t, store.Set(ctx, "admins", "admin-1", docstore.Doc{"deviceToken": "token-1"}))

		orderID, _, err := svc.SubmitOrder(ctx, "user-1", validInput())
		require.NoError(t, err)
		_, err = store.Get(ctx, "orders", orderID)
		require.NoError(t, err)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	seedOrder := func(t *testing.T, store docstore.Store, orderID, userID string) {
		t.Helper()
		require.NoError(t, store.Set(ctx, "orders", orderID, docstore.Doc{
			"userId":      userID,
			"orderNumber": int64(42),
			"totalAmount": float64(110000),
			"status":      ordermodels.StatusPending,
		}))
	}

	t.Run("Trạng thái không thuộc tập hợp lệ thì lỗi validation", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)
		seedOrder(t, store, "ORD42", "user-1")

		err := svc.UpdateStatus(ctx, "ORD42", "SHIPPED", "admin-1")
		require.Error(t, err)
		assert.True(t, common.IsValidationError(err))

		// Trạng thái cũ không bị đụng tới
		doc, err := store.Get(ctx, "orders", "ORD42")
		require.NoError(t, err)
		assert.Equal(t, ordermodels.StatusPending, doc["status"])
	})

	t.Run("Đơn hàng không tồn tại thì trả về not found", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)

		err := svc.UpdateStatus(ctx, "ORD999", ordermodels.StatusConfirmed, "admin-1")
		require.Error(t, err)
		assert.True(t, common.IsNotFound(err))
		assert.Equal(t, 0, store.Count("notifications"))
	})

	t.Run("CONFIRMED tạo đúng một thông báo khớp template", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)
		seedOrder(t, store, "ORD42", "user-1")

		require.NoError(t, svc.UpdateStatus(ctx, "ORD42", ordermodels.StatusConfirmed, "admin-1"))

		doc, err := store.Get(ctx, "orders", "ORD42")
		require.NoError(t, err)
		assert.Equal(t, ordermodels.StatusConfirmed, doc["status"])

		notifs, err := store.Query(ctx, "notifications", nil, 0)
		require.NoError(t, err)
		require.Len(t, notifs, 1)

		msg, ok := ordermodels.MessageForStatus(ordermodels.StatusConfirmed)
		require.True(t, ok)
		assert.Equal(t, msg.Title, notifs[0]["title"])
		assert.Equal(t, fmt.Sprintf(msg.Body, "ORD42"), notifs[0]["body"])
		assert.Equal(t, "user-1", notifs[0]["userId"])
		assert.Equal(t, "ORD42", notifs[0]["orderId"])
		assert.Equal(t, false, notifs[0]["isRead"])
	})

	t.Run("Push gateway luôn lỗi thì trạng thái và thông báo vẫn được commit", func(t *testing.T) {
		store := docstore.NewMemStore()
		sender := &fakeSender{fail: true}
		svc := newTestService(store, sender)
		seedOrder(t, store, "ORD42", "user-1")
		require.NoError(t, store.Set(ctx, "users", "user-1", docstore.Doc{
			"email":       "u1@frizzly.vn",
			"deviceToken": "user-token",
		}))

		require.NoError(t, svc.UpdateStatus(ctx, "ORD42", ordermodels.StatusDelivered, "admin-1"))

		doc, err := store.Get(ctx, "orders", "ORD42")
		require.NoError(t, err)
		assert.Equal(t, ordermodels.StatusDelivered, doc["status"])
		assert.Equal(t, 1, store.Count("notifications"))
	})

	t.Run("Chủ đơn có device token thì nhận được push đúng nội dung", func(t *testing.T) {
		store := docstore.NewMemStore()
		sender := &fakeSender{}
		svc := newTestService(store, sender)
		seedOrder(t, store, "ORD42", "user-1")
		require.NoError(t, store.Set(ctx, "users", "user-1", docstore.Doc{
			"deviceToken": "user-token",
		}))

		require.NoError(t, svc.UpdateStatus(ctx, "ORD42", ordermodels.StatusOutForDelivery, "admin-1"))

		require.Eventually(t, func() bool {
			return sender.count() == 1
		}, 2*time.Second, 10*time.Millisecond)

		msg, _ := ordermodels.MessageForStatus(ordermodels.StatusOutForDelivery)
		got := sender.all()[0]
		assert.Equal(t, "user-token", got.Token)
		assert.Equal(t, msg.Title, got.Title)
		assert.Equal(t, fmt.Sprintf(msg.Body, "ORD42"), got.Body)
		assert.Equal(t, "ORD42", got.Data["orderId"])
	})

	t.Run("Chủ đơn không có device token thì bỏ qua push", func(t *testing.T) {
		store := docstore.NewMemStore()
		sender := &fakeSender{}
		svc := newTestService(store, sender)
		seedOrder(t, store, "ORD42", "user-1")
		require.NoError(t, store.Set(ctx, "users", "user-1", docstore.Doc{"email": "u1@frizzly.vn"}))

		require.NoError(t, svc.UpdateStatus(ctx, "ORD42", ordermodels.StatusReady, "admin-1"))

		// Cho goroutine (nếu có) kịp chạy rồi mới khẳng định không có push
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 0, sender.count())
	})

	t.Run("Đọc trạng thái sau khi cập nhật luôn thấy giá trị mới", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)
		seedOrder(t, store, "ORD42", "user-1")

		statuses := []string{
			ordermodels.StatusConfirmed,
			ordermodels.StatusPreparing,
			ordermodels.StatusReady,
			ordermodels.StatusOutForDelivery,
			ordermodels.StatusDelivered,
		}
		for _, status := range statuses {
			require.NoError(t, svc.UpdateStatus(ctx, "ORD42", status, "admin-1"))
			order, err := svc.GetOrder(ctx, "ORD42")
			require.NoError(t, err)
			assert.Equal(t, status, order.Status)
		}
	})

	t.Run("Trạng thái kết thúc vẫn chuyển tiếp được sang trạng thái khác", func(t *testing.T) {
		// Chưa có ràng buộc máy trạng thái, mọi trạng thái hợp lệ
		// đều chuyển được sang mọi trạng thái khác
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)
		seedOrder(t, store, "ORD42", "user-1")

		require.NoError(t, svc.UpdateStatus(ctx, "ORD42", ordermodels.StatusDelivered, "admin-1"))
		require.NoError(t, svc.UpdateStatus(ctx, "ORD42", ordermodels.StatusReturned, "admin-1"))

		order, err := svc.GetOrder(ctx, "ORD42")
		require.NoError(t, err)
		assert.Equal(t, ordermodels.StatusReturned, order.Status)
	})
}

func TestOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("Không cập nhật được đơn hàng của người khác", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)
		require.NoError(t, store.Set(ctx, "orders", "ORD1", docstore.Doc{
			"userId": "owner",
			"status": ordermodels.StatusPending,
		}))

		err := svc.UpdateOwnStatus(ctx, "intruder", "ORD1", ordermodels.StatusCancelled)
		require.Error(t, err)
		assert.True(t, common.IsNotFound(err))
	})

	t.Run("Chủ đơn tự hủy đơn của mình", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)
		require.NoError(t, store.Set(ctx, "orders", "ORD1", docstore.Doc{
			"userId": "owner",
			"status": ordermodels.StatusPending,
		}))

		require.NoError(t, svc.UpdateOwnStatus(ctx, "owner", "ORD1", ordermodels.StatusCancelled))
		order, err := svc.GetOrder(ctx, "ORD1")
		require.NoError(t, err)
		assert.Equal(t, ordermodels.StatusCancelled, order.Status)

		// Tự cập nhật không sinh thông báo
		assert.Equal(t, 0, store.Count("notifications"))
	})

	t.Run("Không xóa được đơn hàng của người khác", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)
		require.NoError(t, store.Set(ctx, "orders", "ORD1", docstore.Doc{"userId": "owner"}))

		err := svc.DeleteOwn(ctx, "intruder", "ORD1")
		require.Error(t, err)
		assert.True(t, common.IsNotFound(err))
		assert.Equal(t, 1, store.Count("orders"))
	})

	t.Run("Chủ đơn xóa đơn của mình", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)
		require.NoError(t, store.Set(ctx, "orders", "ORD1", docstore.Doc{"userId": "owner"}))

		require.NoError(t, svc.DeleteOwn(ctx, "owner", "ORD1"))
		assert.Equal(t, 0, store.Count("orders"))
	})
}

func TestAnalytics(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, store docstore.Store) {
		t.Helper()
		docs := []struct {
			id     string
			userID string
			amount float64
			status string
		}{
			{"ORD1", "user-1", 100000, ordermodels.StatusPending},
			{"ORD2", "user-1", 250000, ordermodels.StatusDelivered},
			{"ORD3", "user-2", 80000, ordermodels.StatusDelivered},
			{"ORD4", "user-2", 60000, ordermodels.StatusCancelled},
		}
		for _, d := range docs {
			require.NoError(t, store.Set(ctx, "orders", d.id, docstore.Doc{
				"userId":      d.userID,
				"totalAmount": d.amount,
				"status":      d.status,
			}))
		}
	}

	t.Run("Thống kê theo người dùng", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)
		seed(t, store)

		result, err := svc.Analytics(ctx, "user-1")
		require.NoError(t, err)
		assert.EqualValues(t, 2, result.TotalOrders)
		assert.EqualValues(t, 350000, result.TotalRevenue)
		assert.EqualValues(t, 1, result.StatusCounts[ordermodels.StatusPending])
		assert.EqualValues(t, 1, result.StatusCounts[ordermodels.StatusDelivered])
	})

	t.Run("Thống kê toàn hệ thống", func(t *testing.T) {
		store := docstore.NewMemStore()
		svc := newTestService(store, nil)
		seed(t, store)

		result, err := svc.Analytics(ctx, "")
		require.NoError(t, err)
		assert.EqualValues(t, 4, result.TotalOrders)
		assert.EqualValues(t, 490000, result.TotalRevenue)
		assert.EqualValues(t, 2, result.StatusCounts[ordermodels.StatusDelivered])
	})
}
