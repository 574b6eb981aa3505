package main

import (
	"context"

	"github.com/sirupsen/logrus"

	adminmodels "github.com/y84-dev/API-FRIZZLY/internal/api/admin/models"
	categorymodels "github.com/y84-dev/API-FRIZZLY/internal/api/category/models"
	notifmodels "github.com/y84-dev/API-FRIZZLY/internal/api/notification/models"
	ordermodels "github.com/y84-dev/API-FRIZZLY/internal/api/order/models"
	productmodels "github.com/y84-dev/API-FRIZZLY/internal/api/product/models"
	usermodels "github.com/y84-dev/API-FRIZZLY/internal/api/user/models"
	"github.com/y84-dev/API-FRIZZLY/config"
	"github.com/y84-dev/API-FRIZZLY/internal/database"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
	"github.com/y84-dev/API-FRIZZLY/internal/utility"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initFirebase()         // Khởi tạo Firebase
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Orders = "orders"
	global.MongoDB_ColNames.Products = "products"
	global.MongoDB_ColNames.Categories = "categories"
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Admins = "admins"
	global.MongoDB_ColNames.Notifications = "notifications"
	global.MongoDB_ColNames.Counters = "system"

	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo validator
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections")

	// Khởi tạo các index cho các collection
	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Orders), ordermodels.Order{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Products), productmodels.Product{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Categories), categorymodels.Category{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Users), usermodels.User{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Admins), adminmodels.Admin{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Notifications), notifmodels.Notification{})
}

// initFirebase khởi tạo Firebase Admin SDK (Auth cho xác thực, Messaging cho push)
func initFirebase() {
	cfg := global.ServerConfig

	if cfg.FirebaseProjectID == "" || cfg.FirebaseCredentialsPath == "" {
		logrus.Warn("Firebase config không đầy đủ, bỏ qua khởi tạo Firebase")
		return
	}

	if err := utility.InitFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath); err != nil {
		logrus.Errorf("Failed to initialize Firebase: %v", err)
		// Không fatal, hệ thống vẫn chạy được nhưng không xác thực user và không gửi push
		return
	}

	logrus.Info("Firebase initialized successfully")
}
