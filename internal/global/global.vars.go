package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/y84-dev/API-FRIZZLY/config"
	"github.com/y84-dev/API-FRIZZLY/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Orders        string // Tên collection cho đơn hàng
	Products      string // Tên collection cho sản phẩm
	Categories    string // Tên collection cho danh mục sản phẩm
	Users         string // Tên collection cho người dùng
	Admins        string // Tên collection cho tài khoản quản trị
	Notifications string // Tên collection cho thông báo
	Counters      string // Tên collection cho bộ đếm số thứ tự
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration         // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{
	Orders:        "orders",
	Products:      "products",
	Categories:    "categories",
	Users:         "users",
	Admins:        "admins",
	Notifications: "notifications",
	Counters:      "system",
} // Tên các collection, có thể ghi đè lúc khởi động server

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
