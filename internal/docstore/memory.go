package docstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/y84-dev/API-FRIZZLY/internal/common"
)

// maxTxAttempts là số lần thử lại tối đa khi giao dịch in-memory bị xung đột.
// Đặt cao để giao dịch không bị bỏ cuộc dưới tranh chấp nặng, tương tự
// cách driver MongoDB retry TransientTransactionError cho đến khi timeout.
const maxTxAttempts = 1000

// MemStore triển khai Store hoàn toàn trong bộ nhớ, dùng cho unit test.
// Giao dịch dùng optimistic concurrency: mỗi document có version, khi commit
// nếu version của các document đã đọc thay đổi thì chạy lại callback.
type MemStore struct {
	mu       sync.RWMutex
	data     map[string]map[string]Doc // collection -> id -> doc
	versions map[string]uint64         // "collection/id" -> version
}

// NewMemStore tạo một MemStore rỗng
func NewMemStore() *MemStore {
	return &MemStore{
		data:     make(map[string]map[string]Doc),
		versions: make(map[string]uint64),
	}
}

func versionKey(collection, id string) string {
	return collection + "/" + id
}

// Get đọc document theo id
func (s *MemStore) Get(ctx context.Context, collection string, id string) (Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(collection, id)
}

func (s *MemStore) getLocked(collection, id string) (Doc, error) {
	col, ok := s.data[collection]
	if !ok {
		return nil, common.ErrNotFound
	}
	doc, ok := col[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := doc.Clone()
	out[FieldID] = id
	return out, nil
}

// Set ghi đè toàn bộ document theo id
func (s *MemStore) Set(ctx context.Context, collection string, id string, doc Doc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(collection, id, doc)
	return nil
}

func (s *MemStore) setLocked(collection, id string, doc Doc) {
	col, ok := s.data[collection]
	if !ok {
		col = make(map[string]Doc)
		s.data[collection] = col
	}
	body := doc.Clone()
	delete(body, FieldID)
	col[id] = body
	s.versions[versionKey(collection, id)]++
}

// Delete xóa document theo id
func (s *MemStore) Delete(ctx context.Context, collection string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if col, ok := s.data[collection]; ok {
		delete(col, id)
		s.versions[versionKey(collection, id)]++
	}
	return nil
}

// Query trả về các document thỏa tất cả filters
func (s *MemStore) Query(ctx context.Context, collection string, filters []Filter, limit int64) ([]Doc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []Doc
	for id, doc := range s.data[collection] {
		match, err := matchesFilters(doc, filters)
		if err != nil {
			return nil, err
		}
		if !match {
			continue
		}
		out := doc.Clone()
		out[FieldID] = id
		results = append(results, out)
		if limit > 0 && int64(len(results)) >= limit {
			break
		}
	}
	return results, nil
}

// Count trả về số document trong collection, tiện cho việc kiểm tra trong test
func (s *MemStore) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[collection])
}

func matchesFilters(doc Doc, filters []Filter) (bool, error) {
	for _, f := range filters {
		value, ok := doc[f.Field]
		if !ok {
			return false, nil
		}
		match, err := compare(value, f.Op, f.Value)
		if err != nil {
			return false, err
		}
		if !match {
			return false, nil
		}
	}
	return true, nil
}

func compare(a interface{}, op string, b interface{}) (bool, error) {
	// So sánh số với mọi kiểu numeric, còn lại so sánh trực tiếp
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)

	switch op {
	case "==":
		if aNum && bNum {
			return af == bf, nil
		}
		return a == b, nil
	case "!=":
		if aNum && bNum {
			return af != bf, nil
		}
		return a != b, nil
	case ">", ">=", "<", "<=":
		if !aNum || !bNum {
			return false, fmt.Errorf("ordered comparison requires numeric values: %w", common.ErrInvalidInput)
		}
		switch op {
		case ">":
			return af > bf, nil
		case ">=":
			return af >= bf, nil
		case "<":
			return af < bf, nil
		default:
			return af <= bf, nil
		}
	default:
		return false, fmt.Errorf("unsupported filter operator: %s: %w", op, common.ErrInvalidInput)
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// memTx là một giao dịch in-memory: đọc có ghi nhận version, ghi được buffer
// lại và chỉ áp dụng khi commit thành công.
type memTx struct {
	store      *MemStore
	reads      map[string]uint64 // version của document tại thời điểm đọc
	writes     map[string]Doc
	writeOrder []string
}

func (t *memTx) Get(ctx context.Context, collection string, id string) (Doc, error) {
	key := versionKey(collection, id)

	// Đọc lại document đã ghi trong cùng giao dịch
	if doc, ok := t.writes[key]; ok {
		out := doc.Clone()
		out[FieldID] = id
		return out, nil
	}

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	if _, seen := t.reads[key]; !seen {
		t.reads[key] = t.store.versions[key]
	}
	return t.store.getLocked(collection, id)
}

func (t *memTx) Set(ctx context.Context, collection string, id string, doc Doc) error {
	key := versionKey(collection, id)
	if _, ok := t.writes[key]; !ok {
		t.writeOrder = append(t.writeOrder, key)
	}
	body := doc.Clone()
	delete(body, FieldID)
	t.writes[key] = body
	return nil
}

// commit áp dụng các writes nếu không có document đã đọc nào bị thay đổi
func (t *memTx) commit() bool {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for key, version := range t.reads {
		if t.store.versions[key] != version {
			return false
		}
	}

	for _, key := range t.writeOrder {
		collection, id := splitVersionKey(key)
		t.store.setLocked(collection, id, t.writes[key])
	}
	return true
}

func splitVersionKey(key string) (collection, id string) {
	for i := 0; i < len(key); i++ {
		if key[i] == '/' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}

// RunTransaction chạy fn trong một giao dịch optimistic, tự retry khi xung đột
func (s *MemStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		tx := &memTx{
			store:  s,
			reads:  make(map[string]uint64),
			writes: make(map[string]Doc),
		}

		if err := fn(ctx, tx); err != nil {
			// Lỗi từ callback trả về nguyên vẹn, không retry
			return err
		}

		if tx.commit() {
			return nil
		}
	}
	return common.ErrTransaction
}
