package notification

import (
	"ComiYA-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	NotificationRepository interface {
		CreateNotification(ctx context.Context, notification *entities.Notification) error
		GetNotificationByID(ctx context.Context, id string) (*entities.Notification, error)
		GetUserNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]*entities.Notification, int64, error)
		CountUnread(ctx context.Context, userID string) (int64, error)
		MarkAsRead(ctx context.Context, id string) error
		MarkAllAsRead(ctx context.Context, userID string) error
		SoftDeleteNotification(ctx context.Context, id string) error

		SaveDeviceToken(ctx context.Context, token *entities.DeviceToken) error
		GetDeviceTokens(ctx context.Context, userID string) ([]*entities.DeviceToken, error)
		DeleteDeviceToken(ctx context.Context, userID string, token string) error
		DeleteDeviceTokenByValue(ctx context.Context, token string) error
	}

	notificationRepository struct {
		db *gorm.DB
	}
)

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *entities.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) GetNotificationByID(ctx context.Context, id string) (*entities.Notification, error) {
	var notification entities.Notification
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) GetUserNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) ([]*entities.Notification, int64, error) {
	var notifications []*entities.Notification
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ? AND is_deleted = ?", userID, false)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Model(&entities.Notification{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, count, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_deleted = ?", userID, false, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": true}).Error
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true}).Error
}

func (r *notificationRepository) SoftDeleteNotification(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true}).Error
}

func (r *notificationRepository) SaveDeviceToken(ctx context.Context, token *entities.DeviceToken) error {
	// A token can migrate between accounts on shared devices, keep one row per token.
	if err := r.db.WithContext(ctx).
		Where("token = ?", token.Token).
		Delete(&entities.DeviceToken{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *notificationRepository) GetDeviceTokens(ctx context.Context, userID string) ([]*entities.DeviceToken, error) {
	var tokens []*entities.DeviceToken
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *notificationRepository) DeleteDeviceToken(ctx context.Context, userID string, token string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&entities.DeviceToken{}).Error
}

func (r *notificationRepository) DeleteDeviceTokenByValue(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&entities.DeviceToken{}).Error
}
