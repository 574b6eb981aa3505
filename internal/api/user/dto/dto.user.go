package userdto

// UserCreateInput dùng cho tạo hồ sơ người dùng (tầng transport)
type UserCreateInput struct {
	UserID       string   `json:"userId" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	DisplayName  string   `json:"displayName,omitempty"`
	PhoneNumbers []string `json:"phoneNumbers,omitempty"`
}

// DeviceTokenInput dùng cho đăng ký device token nhận thông báo đẩy
type DeviceTokenInput struct {
	DeviceToken string `json:"deviceToken" validate:"required"`
}
