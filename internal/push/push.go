// Package push gửi thông báo đẩy tới thiết bị người dùng qua
// Firebase Cloud Messaging. Mọi lần gửi đều là best-effort: lỗi gửi
// được ghi log và nuốt, không bao giờ làm hỏng thao tác nghiệp vụ.
package push

import (
	"context"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"

	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/logger"
)

// sendTimeout giới hạn thời gian chờ FCM cho một lần gửi
const sendTimeout = 10 * time.Second

// Sender gửi một thông báo đẩy tới device token
type Sender interface {
	Send(ctx context.Context, token string, title string, body string, data map[string]string) error
}

// FCMSender triển khai Sender trên Firebase Cloud Messaging
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender tạo FCMSender từ messaging client đã khởi tạo
func NewFCMSender(client *messaging.Client) *FCMSender {
	return &FCMSender{client: client}
}

// Send gửi thông báo tới một device token qua FCM
func (s *FCMSender) Send(ctx context.Context, token string, title string, body string, data map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := s.client.Send(ctx, msg); err != nil {
		return common.NewDispatchError(err)
	}
	return nil
}

// DispatchAsync gửi thông báo trong một goroutine riêng, không chờ kết quả.
// Lỗi gửi chỉ được ghi log. Token rỗng thì bỏ qua luôn.
func DispatchAsync(sender Sender, token string, title string, body string, data map[string]string) {
	if sender == nil || token == "" {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.GetErrorLogger().Errorf("Panic khi gửi thông báo đẩy: %v", r)
			}
		}()

		if err := sender.Send(context.Background(), token, title, body, data); err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"title": title,
			}).WithError(err).Warn("❌ Gửi thông báo đẩy thất bại")
		}
	}()
}
