package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetNotifications    = "notifications retrieved successfully"
	MessageSuccessMarkAsRead          = "notification marked as read"
	MessageSuccessMarkAllAsRead       = "all notifications marked as read"
	MessageSuccessDeleteNotification  = "notification deleted successfully"
	MessageSuccessRegisterDeviceToken = "device token registered successfully"
	MessageSuccessRemoveDeviceToken   = "device token removed successfully"

	MessageFailedGetNotifications    = "failed to retrieve notifications"
	MessageFailedMarkAsRead          = "failed to mark notification as read"
	MessageFailedDeleteNotification  = "failed to delete notification"
	MessageFailedRegisterDeviceToken = "failed to register device token"

	ErrNotificationNotFound           = errors.New("notification not found")
	ErrUnauthorizedNotificationAccess = errors.New("unauthorized access to notification")
	ErrDeviceTokenInvalid             = errors.New("invalid device token")
)

type (
	// PickupEvent is the dispatch input produced by the pickup lifecycle for
	// every state change. Delivery is best-effort and never affects the
	// transition's outcome.
	PickupEvent struct {
		RecipientUserID string
		Type            string
		Title           string
		Body            string
		PickupID        string
		Screen          string
		Data            map[string]string
	}

	NotificationResponse struct {
		ID        string            `json:"id"`
		Type      string            `json:"type"`
		Title     string            `json:"title"`
		Body      string            `json:"body"`
		Data      map[string]string `json:"data,omitempty"`
		PickupID  string            `json:"pickup_id,omitempty"`
		IsRead    bool              `json:"is_read"`
		CreatedAt time.Time         `json:"created_at"`
	}

	NotificationList struct {
		Data        []*NotificationResponse `json:"data"`
		UnreadCount int64                   `json:"unread_count"`
		Total       int64                   `json:"total"`
		Page        int                     `json:"page"`
		Limit       int                     `json:"limit"`
		TotalPages  int64                   `json:"total_pages"`
	}

	RegisterDeviceTokenRequest struct {
		Token    string `json:"token" validate:"required"`
		Platform string `json:"platform" validate:"required,oneof=ios android"`
	}
)
