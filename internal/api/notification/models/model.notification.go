// Package models - Notification thuộc domain Notification.
// Bản ghi thông báo là append-only: notifier ghi, API chỉ đọc.
package models

// Notification là thông báo gửi tới người dùng khi trạng thái đơn hàng thay đổi
type Notification struct {
	ID        string `json:"id" bson:"_id"`
	UserID    string `json:"userId" bson:"userId" index:"single:1"`
	Title     string `json:"title" bson:"title"`
	Body      string `json:"body" bson:"body"`
	OrderID   string `json:"orderId" bson:"orderId" index:"single:1"`
	Status    string `json:"status" bson:"status"`
	IsRead    bool   `json:"isRead" bson:"isRead"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}
