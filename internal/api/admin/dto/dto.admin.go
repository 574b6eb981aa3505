package admindto

// AdminLoginInput dùng cho đăng nhập quản trị viên (tầng transport)
type AdminLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminCreateInput dùng cho tạo tài khoản quản trị viên (tầng transport)
type AdminCreateInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Name        string `json:"name,omitempty"`
	DeviceToken string `json:"deviceToken,omitempty"`
}

// AdminUpdateInput dùng cho cập nhật tài khoản quản trị viên (tầng transport)
type AdminUpdateInput struct {
	Name        string `json:"name,omitempty" bson:"name,omitempty"`
	DeviceToken string `json:"deviceToken,omitempty" bson:"deviceToken,omitempty"`
}
