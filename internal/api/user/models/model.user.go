// Package models - User thuộc domain User.
// Document người dùng dùng chính Firebase UID làm id.
package models

// User là hồ sơ người dùng của ứng dụng đặt hàng
type User struct {
	ID           string   `json:"id" bson:"_id"`
	UserID       string   `json:"userId" bson:"userId"`
	Email        string   `json:"email" bson:"email" index:"single:1"`
	DisplayName  string   `json:"displayName,omitempty" bson:"displayName,omitempty"`
	PhoneNumbers []string `json:"phoneNumbers,omitempty" bson:"phoneNumbers,omitempty"`
	DeviceToken  string   `json:"deviceToken,omitempty" bson:"deviceToken,omitempty"`
	CreatedAt    int64    `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64    `json:"updatedAt" bson:"updatedAt"`
}
