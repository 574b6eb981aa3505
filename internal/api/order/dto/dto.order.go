package orderdto

// OrderItemInput là một dòng sản phẩm trong payload tạo đơn hàng (tầng transport)
type OrderItemInput struct {
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price" validate:"required,gt=0"`
	Quantity int     `json:"quantity" bson:"quantity" validate:"required,gt=0"`
}

// OrderCreateInput dùng cho tạo đơn hàng (tầng transport).
// userId KHÔNG nhận từ payload, luôn lấy từ người gọi đã xác thực.
type OrderCreateInput struct {
	Items            []OrderItemInput `json:"items" bson:"items" validate:"required,min=1,dive"`
	TotalAmount      float64          `json:"totalAmount" bson:"totalAmount" validate:"required,gt=0"`
	DeliveryLocation string           `json:"deliveryLocation" bson:"deliveryLocation" validate:"required"`
	Note             string           `json:"note,omitempty" bson:"note,omitempty"`
}

// OrderStatusUpdateInput dùng cho cập nhật trạng thái đơn hàng (tầng transport)
type OrderStatusUpdateInput struct {
	Status string `json:"status" validate:"required,order_status"`
}

// OrderAdminUpdateInput dùng cho admin cập nhật đơn hàng (tầng transport)
type OrderAdminUpdateInput struct {
	DeliveryLocation string `json:"deliveryLocation,omitempty" bson:"deliveryLocation,omitempty"`
	Note             string `json:"note,omitempty" bson:"note,omitempty"`
}
