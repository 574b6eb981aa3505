// Package counter cấp số thứ tự tăng dần, không trùng, không hổng
// từ một document bộ đếm trong document store.
package counter

import (
	"context"
	"fmt"

	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/docstore"
)

// Allocator cấp số thứ tự từ một document bộ đếm duy nhất.
// Mỗi lần Next là một giao dịch read-modify-write nguyên tử trên store:
// đọc giá trị hiện tại, cộng một, ghi lại. Không đọc trước ngoài giao dịch,
// không cache giá trị giữa các lần cấp.
type Allocator struct {
	store      docstore.Store
	collection string // Collection chứa document bộ đếm
	docID      string // ID của document bộ đếm
}

// NewAllocator tạo Allocator trên document bộ đếm collection/docID
func NewAllocator(store docstore.Store, collection string, docID string) *Allocator {
	return &Allocator{
		store:      store,
		collection: collection,
		docID:      docID,
	}
}

// Next cấp số tiếp theo cho bộ đếm counterName.
//
// Parameters:
//   - counterName: Tên field bộ đếm trong document (ví dụ: "orderCounter")
//
// Returns:
//   - int64: Số vừa cấp, tăng nghiêm ngặt qua các lần gọi thành công
//   - error: Lỗi cấp số (tạm thời, caller có thể thử lại toàn bộ thao tác)
//
// Bộ đếm chưa tồn tại được coi là 0, lần cấp đầu trả về 1.
// Hai lần gọi đồng thời không bao giờ nhận cùng một số: store sẽ phát hiện
// xung đột và chạy lại giao dịch của một bên.
func (a *Allocator) Next(ctx context.Context, counterName string) (int64, error) {
	if counterName == "" {
		return 0, common.ErrRequiredField
	}

	var next int64
	err := a.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		doc, err := tx.Get(ctx, a.collection, a.docID)
		if err != nil {
			if !common.IsNotFound(err) {
				return err
			}
			doc = docstore.Doc{}
		}

		current, err := asInt64(doc[counterName])
		if err != nil {
			return fmt.Errorf("counter %s: %w", counterName, err)
		}

		next = current + 1
		doc[counterName] = next
		return tx.Set(ctx, a.collection, a.docID, doc)
	})
	if err != nil {
		return 0, common.NewAllocationError(err)
	}

	return next, nil
}

// asInt64 chuyển giá trị bộ đếm từ store về int64.
// MongoDB có thể trả int32/int64/float64 tùy cách giá trị được ghi.
func asInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected counter value type %T: %w", v, common.ErrInvalidFormat)
	}
}
