package categorydto

// CategoryCreateInput dùng cho tạo danh mục (tầng transport)
type CategoryCreateInput struct {
	Name        string `json:"name" bson:"name" validate:"required"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	SortOrder   int    `json:"sortOrder,omitempty" bson:"sortOrder,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty" bson:"isActive,omitempty"`
}

// CategoryUpdateInput dùng cho cập nhật danh mục (tầng transport)
type CategoryUpdateInput struct {
	Name        string `json:"name,omitempty" bson:"name,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	SortOrder   *int   `json:"sortOrder,omitempty" bson:"sortOrder,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty" bson:"isActive,omitempty"`
}
