package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	adminsvc "github.com/y84-dev/API-FRIZZLY/internal/api/admin/service"
)

// InitDefaultData tạo tài khoản quản trị mặc định nếu chưa có admin nào.
// Email và mật khẩu lấy từ ADMIN_INITIAL_EMAIL / ADMIN_INITIAL_PASSWORD,
// thiếu biến môi trường thì bỏ qua bước seed.
func InitDefaultData() {
	email := os.Getenv("ADMIN_INITIAL_EMAIL")
	password := os.Getenv("ADMIN_INITIAL_PASSWORD")
	if email == "" || password == "" {
		logrus.Info("Bỏ qua seed admin mặc định (thiếu ADMIN_INITIAL_EMAIL/ADMIN_INITIAL_PASSWORD)")
		return
	}

	service, err := adminsvc.NewAdminService()
	if err != nil {
		logrus.Errorf("Failed to create admin service for seeding: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := service.CountDocuments(ctx, bson.M{})
	if err != nil {
		logrus.Errorf("Failed to count admins: %v", err)
		return
	}
	if count > 0 {
		return
	}

	admin, err := service.CreateAdmin(ctx, email, password, "Quản trị viên", "")
	if err != nil {
		logrus.Errorf("Failed to seed default admin: %v", err)
		return
	}
	logrus.Infof("Seeded default admin %s", admin.Email)
}
