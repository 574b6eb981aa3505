package productdto

// ProductCreateInput dùng cho tạo sản phẩm (tầng transport)
type ProductCreateInput struct {
	Name        string  `json:"name" bson:"name" validate:"required"`
	Price       float64 `json:"price" bson:"price" validate:"required,gt=0"`
	Category    string  `json:"category,omitempty" bson:"category,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	InStock     *bool   `json:"inStock,omitempty" bson:"inStock,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty" bson:"isActive,omitempty"`
}

// ProductUpdateInput dùng cho cập nhật sản phẩm (tầng transport).
// Price là con trỏ để phân biệt "không gửi" với "gửi giá trị 0".
type ProductUpdateInput struct {
	Name        string   `json:"name,omitempty" bson:"name,omitempty"`
	Price       *float64 `json:"price,omitempty" bson:"price,omitempty" validate:"omitempty,gt=0"`
	Category    string   `json:"category,omitempty" bson:"category,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	InStock     *bool    `json:"inStock,omitempty" bson:"inStock,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty" bson:"isActive,omitempty"`
}
