package ordersvc

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	notifmodels "github.com/y84-dev/API-FRIZZLY/internal/api/notification/models"
	orderdto "github.com/y84-dev/API-FRIZZLY/internal/api/order/dto"
	ordermodels "github.com/y84-dev/API-FRIZZLY/internal/api/order/models"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/counter"
	"github.com/y84-dev/API-FRIZZLY/internal/docstore"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
	"github.com/y84-dev/API-FRIZZLY/internal/logger"
	"github.com/y84-dev/API-FRIZZLY/internal/push"
	"github.com/y84-dev/API-FRIZZLY/internal/utility"
)

// maxAdminFanout giới hạn số admin được thông báo khi có đơn hàng mới
const maxAdminFanout = 20

// OrderService xử lý nghiệp vụ đơn hàng: tạo đơn với số thứ tự tuần tự,
// cập nhật trạng thái kèm thông báo đẩy, truy vấn và thống kê.
type OrderService struct {
	store     docstore.Store
	allocator *counter.Allocator
	sender    push.Sender

	ordersCol string
	usersCol  string
	adminsCol string
	notifsCol string
	idPrefix  string
}

// NewOrderService tạo mới OrderService.
//
// Parameters:
//   - store: document store (MongoDB trong production)
//   - allocator: bộ cấp phát số thứ tự đơn hàng
//   - sender: push gateway, nil thì bỏ qua gửi thông báo đẩy
func NewOrderService(store docstore.Store, allocator *counter.Allocator, sender push.Sender) *OrderService {
	idPrefix := "ORD"
	if global.ServerConfig != nil && global.ServerConfig.OrderIDPrefix != "" {
		idPrefix = global.ServerConfig.OrderIDPrefix
	}
	return &OrderService{
		store:     store,
		allocator: allocator,
		sender:    sender,
		ordersCol: global.MongoDB_ColNames.Orders,
		usersCol:  global.MongoDB_ColNames.Users,
		adminsCol: global.MongoDB_ColNames.Admins,
		notifsCol: global.MongoDB_ColNames.Notifications,
		idPrefix:  idPrefix,
	}
}

// validateSubmitInput kiểm tra payload tạo đơn hàng.
// Mọi vi phạm trả về ValidationError trước khi có bất kỳ ghi nào xuống store.
func validateSubmitInput(input *orderdto.OrderCreateInput) error {
	if input == nil {
		return common.NewValidationError("Thiếu dữ liệu đơn hàng", nil)
	}
	if len(input.Items) == 0 {
		return common.NewValidationError("Đơn hàng phải có ít nhất một sản phẩm", nil)
	}
	for i, item := range input.Items {
		if item.Price <= 0 {
			return common.NewValidationError(fmt.Sprintf("Sản phẩm thứ %d có giá không hợp lệ", i+1), map[string]interface{}{"index": i, "price": item.Price})
		}
		if item.Quantity <= 0 {
			return common.NewValidationError(fmt.Sprintf("Sản phẩm thứ %d có số lượng không hợp lệ", i+1), map[string]interface{}{"index": i, "quantity": item.Quantity})
		}
	}
	if input.TotalAmount <= 0 {
		return common.NewValidationError("Tổng tiền phải lớn hơn 0", map[string]interface{}{"totalAmount": input.TotalAmount})
	}
	if input.DeliveryLocation == "" {
		return common.NewValidationError("Thiếu địa điểm giao hàng", nil)
	}
	return nil
}

// SubmitOrder tạo đơn hàng mới với số thứ tự tuần tự.
// Thứ tự side effect là bắt buộc: đơn hàng được ghi bền vững TRƯỚC khi
// gửi thông báo cho admin, lỗi thông báo không rollback và không làm fail call.
//
// Parameters:
//   - ctx: context
//   - userID: id người gọi đã xác thực, luôn là chủ đơn hàng (không tin payload)
//   - input: payload đơn hàng đã parse
//
// Returns:
//   - string: mã đơn hàng dạng "ORD<n>"
//   - int64: số thứ tự đơn hàng
//   - error: ValidationError hoặc AllocationError hoặc lỗi ghi store
func (s *OrderService) SubmitOrder(ctx context.Context, userID string, input *orderdto.OrderCreateInput) (string, int64, error) {
	if userID == "" {
		return "", 0, common.ErrRequiredField
	}
	if err := validateSubmitInput(input); err != nil {
		return "", 0, err
	}

	counterName := "orderCounter"
	if global.ServerConfig != nil && global.ServerConfig.OrderCounterName != "" {
		counterName = global.ServerConfig.OrderCounterName
	}

	orderNumber, err := s.allocator.Next(ctx, counterName)
	if err != nil {
		return "", 0, err
	}

	orderID := fmt.Sprintf("%s%d", s.idPrefix, orderNumber)
	now := utility.CurrentTimeInMilli()
	order := ordermodels.Order{
		ID:               orderID,
		UserID:           userID,
		OrderNumber:      orderNumber,
		Items:            itemsFromInput(input.Items),
		TotalAmount:      input.TotalAmount,
		DeliveryLocation: input.DeliveryLocation,
		Note:             input.Note,
		Status:           ordermodels.StatusPending,
		Timestamp:        now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	doc, err := toDoc(order)
	if err != nil {
		return "", 0, err
	}
	if err := s.store.Set(ctx, s.ordersCol, orderID, doc); err != nil {
		return "", 0, err
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"order_id":     orderID,
		"order_number": orderNumber,
		"user_id":      userID,
	}).Info("🛒 Tạo đơn hàng mới thành công")

	// Đơn hàng đã ghi bền vững, từ đây trở đi chỉ còn side effect best-effort
	s.notifyAdminsNewOrder(ctx, orderID)

	return orderID, orderNumber, nil
}

// notifyAdminsNewOrder gửi thông báo đẩy cho các admin khi có đơn hàng mới.
// Liệt kê có giới hạn (tối đa maxAdminFanout), mỗi admin có device token
// được gửi độc lập trong goroutine riêng, lỗi chỉ được log.
func (s *OrderService) notifyAdminsNewOrder(ctx context.Context, orderID string) {
	admins, err := s.store.Query(ctx, s.adminsCol, nil, maxAdminFanout)
	if err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{
			"order_id": orderID,
			"error":    err.Error(),
		}).Warn("❌ Không lấy được danh sách admin để thông báo đơn hàng mới")
		return
	}

	title := "Đơn hàng mới"
	body := fmt.Sprintf("🛒 Đơn hàng %s vừa được tạo", orderID)
	data := map[string]string{"orderId": orderID, "type": "NEW_ORDER"}

	for _, admin := range admins {
		token, _ := admin["deviceToken"].(string)
		if token == "" {
			continue
		}
		push.DispatchAsync(s.sender, token, title, body, data)
	}
}

// UpdateStatus cập nhật trạng thái đơn hàng và thông báo cho chủ đơn.
// Ghi trạng thái và bản ghi thông báo được commit TRƯỚC khi gửi push;
// push thất bại chỉ được log, không bao giờ làm hỏng hai ghi trước đó.
// Mọi trạng thái hợp lệ đều có thể chuyển sang mọi trạng thái khác.
//
// Parameters:
//   - ctx: context
//   - orderID: mã đơn hàng
//   - newStatus: trạng thái mới, phải thuộc tập trạng thái hợp lệ
//   - actingAdminID: id admin thực hiện, dùng cho log
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, newStatus string, actingAdminID string) error {
	if !ordermodels.IsValidStatus(newStatus) {
		return common.NewValidationError("Trạng thái không hợp lệ: "+newStatus, map[string]interface{}{"status": newStatus})
	}

	doc, err := s.store.Get(ctx, s.ordersCol, orderID)
	if err != nil {
		return err
	}

	doc["status"] = newStatus
	doc["updatedAt"] = utility.CurrentTimeInMilli()
	if err := s.store.Set(ctx, s.ordersCol, orderID, doc); err != nil {
		return err
	}

	userID, _ := doc["userId"].(string)
	msg, _ := ordermodels.MessageForStatus(newStatus)
	body := fmt.Sprintf(msg.Body, orderID)

	notification := notifmodels.Notification{
		ID:        primitive.NewObjectID().Hex(),
		UserID:    userID,
		Title:     msg.Title,
		Body:      body,
		OrderID:   orderID,
		Status:    newStatus,
		IsRead:    false,
		CreatedAt: utility.CurrentTimeInMilli(),
	}
	notifDoc, err := toDoc(notification)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.notifsCol, notification.ID, notifDoc); err != nil {
		return err
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   newStatus,
		"admin_id": actingAdminID,
	}).Info("📋 Cập nhật trạng thái đơn hàng")

	// Trạng thái và thông báo đã commit, push chỉ là best-effort
	s.pushToOwner(ctx, userID, msg.Title, body, map[string]string{
		"orderId": orderID,
		"status":  newStatus,
		"type":    "ORDER_STATUS",
	})

	return nil
}

// pushToOwner tra device token của chủ đơn và gửi push nếu có
func (s *OrderService) pushToOwner(ctx context.Context, userID string, title string, body string, data map[string]string) {
	if userID == "" {
		return
	}
	userDoc, err := s.store.Get(ctx, s.usersCol, userID)
	if err != nil {
		if !common.IsNotFound(err) {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Warn("❌ Không đọc được thông tin người dùng để gửi thông báo")
		}
		return
	}
	token, _ := userDoc["deviceToken"].(string)
	if token == "" {
		return
	}
	push.DispatchAsync(s.sender, token, title, body, data)
}

// GetOrder đọc một đơn hàng theo mã
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*ordermodels.Order, error) {
	doc, err := s.store.Get(ctx, s.ordersCol, orderID)
	if err != nil {
		return nil, err
	}
	return docToOrder(doc)
}

// ListByUser trả về các đơn hàng của một người dùng
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]*ordermodels.Order, error) {
	docs, err := s.store.Query(ctx, s.ordersCol, []docstore.Filter{
		{Field: "userId", Op: "==", Value: userID},
	}, 0)
	if err != nil {
		return nil, err
	}
	return docsToOrders(docs)
}

// ListAll trả về mọi đơn hàng (dành cho admin), limit <= 0 là không giới hạn
func (s *OrderService) ListAll(ctx context.Context, limit int64) ([]*ordermodels.Order, error) {
	docs, err := s.store.Query(ctx, s.ordersCol, nil, limit)
	if err != nil {
		return nil, err
	}
	return docsToOrders(docs)
}

// UpdateOwnStatus cho người dùng cập nhật trạng thái đơn hàng CỦA MÌNH.
// Khác với UpdateStatus, thao tác này không sinh thông báo.
func (s *OrderService) UpdateOwnStatus(ctx context.Context, userID string, orderID string, newStatus string) error {
	if !ordermodels.IsValidStatus(newStatus) {
		return common.NewValidationError("Trạng thái không hợp lệ: "+newStatus, map[string]interface{}{"status": newStatus})
	}
	doc, err := s.store.Get(ctx, s.ordersCol, orderID)
	if err != nil {
		return err
	}
	if owner, _ := doc["userId"].(string); owner != userID {
		// Không tiết lộ sự tồn tại của đơn hàng người khác
		return common.ErrNotFound
	}
	doc["status"] = newStatus
	doc["updatedAt"] = utility.CurrentTimeInMilli()
	return s.store.Set(ctx, s.ordersCol, orderID, doc)
}

// DeleteOwn xóa đơn hàng của chính người dùng
func (s *OrderService) DeleteOwn(ctx context.Context, userID string, orderID string) error {
	doc, err := s.store.Get(ctx, s.ordersCol, orderID)
	if err != nil {
		return err
	}
	if owner, _ := doc["userId"].(string); owner != userID {
		return common.ErrNotFound
	}
	return s.store.Delete(ctx, s.ordersCol, orderID)
}

// AdminUpdateFields cho admin cập nhật các field tự do của đơn hàng
func (s *OrderService) AdminUpdateFields(ctx context.Context, orderID string, fields map[string]interface{}) error {
	doc, err := s.store.Get(ctx, s.ordersCol, orderID)
	if err != nil {
		return err
	}
	for k, v := range fields {
		if k == docstore.FieldID || k == "userId" || k == "orderNumber" {
			continue
		}
		doc[k] = v
	}
	doc["updatedAt"] = utility.CurrentTimeInMilli()
	return s.store.Set(ctx, s.ordersCol, orderID, doc)
}

// AdminDelete xóa một đơn hàng bất kỳ
func (s *OrderService) AdminDelete(ctx context.Context, orderID string) error {
	return s.store.Delete(ctx, s.ordersCol, orderID)
}

// OrderAnalytics là kết quả thống kê đơn hàng
type OrderAnalytics struct {
	TotalOrders  int64            `json:"totalOrders"`
	TotalRevenue float64          `json:"totalRevenue"`
	StatusCounts map[string]int64 `json:"statusCounts"`
}

// Analytics tính thống kê đơn hàng: tổng số đơn, tổng doanh thu,
// phân bố theo trạng thái. userID rỗng nghĩa là thống kê toàn hệ thống.
func (s *OrderService) Analytics(ctx context.Context, userID string) (*OrderAnalytics, error) {
	var filters []docstore.Filter
	if userID != "" {
		filters = append(filters, docstore.Filter{Field: "userId", Op: "==", Value: userID})
	}
	docs, err := s.store.Query(ctx, s.ordersCol, filters, 0)
	if err != nil {
		return nil, err
	}

	result := &OrderAnalytics{StatusCounts: make(map[string]int64)}
	for _, doc := range docs {
		result.TotalOrders++
		result.TotalRevenue += toFloat(doc["totalAmount"])
		status, _ := doc["status"].(string)
		if status == "" {
			status = "UNKNOWN"
		}
		result.StatusCounts[status]++
	}
	return result, nil
}

// itemsFromInput chuyển line item từ DTO sang model
func itemsFromInput(in []orderdto.OrderItemInput) []ordermodels.OrderItem {
	items := make([]ordermodels.OrderItem, 0, len(in))
	for _, it := range in {
		items = append(items, ordermodels.OrderItem{
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return items
}

// toDoc chuyển struct sang docstore.Doc qua bson tags
func toDoc(v interface{}) (docstore.Doc, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, common.NewError(common.ErrCodeDatabase, "Lỗi chuyển đổi dữ liệu: "+err.Error(), common.StatusInternalServerError, nil)
	}
	var doc docstore.Doc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, common.NewError(common.ErrCodeDatabase, "Lỗi chuyển đổi dữ liệu: "+err.Error(), common.StatusInternalServerError, nil)
	}
	return doc, nil
}

// docToOrder chuyển docstore.Doc sang Order qua bson tags
func docToOrder(doc docstore.Doc) (*ordermodels.Order, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, common.NewError(common.ErrCodeDatabase, "Lỗi đọc dữ liệu đơn hàng: "+err.Error(), common.StatusInternalServerError, nil)
	}
	var order ordermodels.Order
	if err := bson.Unmarshal(raw, &order); err != nil {
		return nil, common.NewError(common.ErrCodeDatabase, "Lỗi đọc dữ liệu đơn hàng: "+err.Error(), common.StatusInternalServerError, nil)
	}
	return &order, nil
}

func docsToOrders(docs []docstore.Doc) ([]*ordermodels.Order, error) {
	orders := make([]*ordermodels.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := docToOrder(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// toFloat ép các kiểu số mà driver có thể trả về sang float64
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
