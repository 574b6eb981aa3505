// Package models - Order thuộc domain Order.
package models

// Danh sách trạng thái hợp lệ của đơn hàng
const (
	StatusPending        = "PENDING"          // Chờ xác nhận
	StatusConfirmed      = "CONFIRMED"        // Đã xác nhận
	StatusPreparing      = "PREPARING"        // Đang chuẩn bị
	StatusReady          = "READY"            // Sẵn sàng giao
	StatusOutForDelivery = "OUT_FOR_DELIVERY" // Đang giao
	StatusDelivered      = "DELIVERED"        // Đã giao
	StatusCancelled      = "CANCELLED"        // Đã hủy
	StatusReturned       = "RETURNED"         // Đã trả lại
)

// ValidStatuses chứa tập trạng thái hợp lệ của đơn hàng
var ValidStatuses = map[string]bool{
	StatusPending:        true,
	StatusConfirmed:      true,
	StatusPreparing:      true,
	StatusReady:          true,
	StatusOutForDelivery: true,
	StatusDelivered:      true,
	StatusCancelled:      true,
	StatusReturned:       true,
}

// IsValidStatus kiểm tra status có thuộc tập trạng thái hợp lệ không
func IsValidStatus(status string) bool {
	return ValidStatuses[status]
}

// OrderItem là một dòng sản phẩm trong đơn hàng
type OrderItem struct {
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

// Order là đơn hàng của người dùng.
// ID có dạng "ORD<số thứ tự>" với số thứ tự cấp phát tuần tự, không trùng, không nhảy số.
type Order struct {
	ID               string      `json:"id" bson:"_id"`
	UserID           string      `json:"userId" bson:"userId" index:"single:1"`
	OrderNumber      int64       `json:"orderNumber" bson:"orderNumber"`
	Items            []OrderItem `json:"items" bson:"items"`
	TotalAmount      float64     `json:"totalAmount" bson:"totalAmount"`
	DeliveryLocation string      `json:"deliveryLocation" bson:"deliveryLocation"`
	Note             string      `json:"note,omitempty" bson:"note,omitempty"`
	Status           string      `json:"status" bson:"status" index:"single:1"`
	Timestamp        int64       `json:"timestamp" bson:"timestamp"`
	CreatedAt        int64       `json:"createdAt" bson:"createdAt"`
	UpdatedAt        int64       `json:"updatedAt" bson:"updatedAt"`
}

// StatusMessage là nội dung thông báo ứng với một trạng thái đơn hàng
type StatusMessage struct {
	Title string // Tiêu đề thông báo
	Body  string // Nội dung thông báo, chứa %s cho mã đơn hàng
}

// statusMessages là template thông báo cố định cho từng trạng thái
var statusMessages = map[string]StatusMessage{
	StatusPending:        {Title: "Đơn hàng mới", Body: "🕒 Đơn hàng %s đang chờ xác nhận"},
	StatusConfirmed:      {Title: "Đơn hàng được xác nhận", Body: "✅ Đơn hàng %s đã được xác nhận"},
	StatusPreparing:      {Title: "Đơn hàng đang chuẩn bị", Body: "👨‍🍳 Đơn hàng %s đang được chuẩn bị"},
	StatusReady:          {Title: "Đơn hàng sẵn sàng", Body: "📦 Đơn hàng %s đã sẵn sàng giao"},
	StatusOutForDelivery: {Title: "Đơn hàng đang giao", Body: "🚚 Đơn hàng %s đang trên đường giao đến bạn"},
	StatusDelivered:      {Title: "Đơn hàng đã giao", Body: "🎉 Đơn hàng %s đã được giao thành công"},
	StatusCancelled:      {Title: "Đơn hàng bị hủy", Body: "❌ Đơn hàng %s đã bị hủy"},
	StatusReturned:       {Title: "Đơn hàng trả lại", Body: "↩️ Đơn hàng %s đã được trả lại"},
}

// MessageForStatus trả về template thông báo của một trạng thái.
//
// Returns:
//   - StatusMessage: template thông báo
//   - bool: false nếu status không thuộc tập trạng thái hợp lệ
func MessageForStatus(status string) (StatusMessage, bool) {
	msg, ok := statusMessages[status]
	return msg, ok
}
