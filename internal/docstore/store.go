// Package docstore cung cấp lớp truy cập document store với giao dịch
// read-modify-write. Production dùng MongoDB, unit test dùng bản in-memory.
package docstore

import "context"

// FieldID là tên field chứa định danh document trong Doc trả về từ Query
const FieldID = "_id"

// Doc là một document dạng map field -> giá trị
type Doc map[string]interface{}

// Clone trả về bản copy nông của document (các giá trị lồng nhau không được copy sâu)
func (d Doc) Clone() Doc {
	if d == nil {
		return nil
	}
	out := make(Doc, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Filter mô tả một điều kiện lọc đơn giản trên một field
type Filter struct {
	Field string      // Tên field
	Op    string      // Toán tử: ==, !=, >, >=, <, <=
	Value interface{} // Giá trị so sánh
}

// Tx là tập thao tác được phép bên trong một giao dịch.
// Mọi thao tác đọc ghi trong callback của RunTransaction phải đi qua Tx
// để đảm bảo tính nguyên tử.
type Tx interface {
	// Get đọc document theo id. Trả về common.ErrNotFound nếu không tồn tại.
	Get(ctx context.Context, collection string, id string) (Doc, error)

	// Set ghi đè toàn bộ document theo id, tạo mới nếu chưa tồn tại
	Set(ctx context.Context, collection string, id string, doc Doc) error
}

// Store là giao diện document store mà các service sử dụng
type Store interface {
	// Get đọc document theo id. Trả về common.ErrNotFound nếu không tồn tại.
	Get(ctx context.Context, collection string, id string) (Doc, error)

	// Set ghi đè toàn bộ document theo id, tạo mới nếu chưa tồn tại
	Set(ctx context.Context, collection string, id string, doc Doc) error

	// Delete xóa document theo id. Không lỗi nếu document không tồn tại.
	Delete(ctx context.Context, collection string, id string) error

	// Query trả về các document thỏa tất cả filters, tối đa limit document
	// (limit <= 0 nghĩa là không giới hạn). Mỗi document trả về có kèm FieldID.
	Query(ctx context.Context, collection string, filters []Filter, limit int64) ([]Doc, error)

	// RunTransaction chạy fn trong một giao dịch nguyên tử. Nếu giao dịch
	// xung đột với writer khác, store tự retry fn; fn vì vậy phải idempotent
	// và không được gây side effect ngoài Tx. fn trả về lỗi thì giao dịch
	// được rollback và lỗi trả về nguyên vẹn cho caller.
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
