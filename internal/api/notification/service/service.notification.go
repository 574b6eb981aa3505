package notifsvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	notifmodels "github.com/y84-dev/API-FRIZZLY/internal/api/notification/models"
	"github.com/y84-dev/API-FRIZZLY/internal/common"
	"github.com/y84-dev/API-FRIZZLY/internal/docstore"
	"github.com/y84-dev/API-FRIZZLY/internal/global"
)

// NotificationService đọc các bản ghi thông báo.
// Bản ghi do notifier của domain Order ghi, API này chỉ đọc.
type NotificationService struct {
	store     docstore.Store
	notifsCol string
}

// NewNotificationService tạo mới NotificationService
func NewNotificationService(store docstore.Store) *NotificationService {
	return &NotificationService{
		store:     store,
		notifsCol: global.MongoDB_ColNames.Notifications,
	}
}

// ListByUser trả về các thông báo của một người dùng
func (s *NotificationService) ListByUser(ctx context.Context, userID string, limit int64) ([]*notifmodels.Notification, error) {
	if userID == "" {
		return nil, common.ErrRequiredField
	}
	docs, err := s.store.Query(ctx, s.notifsCol, []docstore.Filter{
		{Field: "userId", Op: "==", Value: userID},
	}, limit)
	if err != nil {
		return nil, err
	}

	notifications := make([]*notifmodels.Notification, 0, len(docs))
	for _, doc := range docs {
		notification, err := docToNotification(doc)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, nil
}

// docToNotification chuyển docstore.Doc sang Notification qua bson tags
func docToNotification(doc docstore.Doc) (*notifmodels.Notification, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, common.NewError(common.ErrCodeDatabase, "Lỗi đọc dữ liệu thông báo: "+err.Error(), common.StatusInternalServerError, nil)
	}
	var notification notifmodels.Notification
	if err := bson.Unmarshal(raw, &notification); err != nil {
		return nil, common.NewError(common.ErrCodeDatabase, "Lỗi đọc dữ liệu thông báo: "+err.Error(), common.StatusInternalServerError, nil)
	}
	return &notification, nil
}
