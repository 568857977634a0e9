package notification

import (
	"ComiYA-Backend/domain"
	"ComiYA-Backend/entities"
	"ComiYA-Backend/pkg/user"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
	"gorm.io/gorm"
)

type (
	// Mailer is the email side-channel. A nil Mailer disables email delivery.
	Mailer func(toEmail string, subject string, body string) error

	NotificationService interface {
		Dispatch(ctx context.Context, event domain.PickupEvent) error
		GetUserNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) (domain.NotificationList, error)
		MarkAsRead(ctx context.Context, id string, userID string) error
		MarkAllAsRead(ctx context.Context, userID string) error
		DeleteNotification(ctx context.Context, id string, userID string) error
		RegisterDeviceToken(ctx context.Context, req domain.RegisterDeviceTokenRequest, userID string) error
		RemoveDeviceToken(ctx context.Context, token string, userID string) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
		userRepository         user.UserRepository
		pushClient             PushClient
		mailer                 Mailer
	}
)

func NewNotificationService(
	notificationRepository NotificationRepository,
	userRepository user.UserRepository,
	pushClient PushClient,
	mailer Mailer,
) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		userRepository:         userRepository,
		pushClient:             pushClient,
		mailer:                 mailer,
	}
}

// Dispatch records the notification and fans it out to the recipient's devices.
// Transport failures are logged and swallowed, the stored record is the source
// of truth for the inbox.
func (s *notificationService) Dispatch(ctx context.Context, event domain.PickupEvent) error {
	recipientUUID, err := uuid.Parse(event.RecipientUserID)
	if err != nil {
		return domain.ErrParseUUID
	}

	data := map[string]string{
		"screen": event.Screen,
	}
	for key, value := range event.Data {
		data[key] = value
	}
	if event.PickupID != "" {
		data["pickup_id"] = event.PickupID
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	notification := &entities.Notification{
		ID:     uuid.New(),
		UserID: recipientUUID,
		Type:   event.Type,
		Title:  event.Title,
		Body:   event.Body,
		Data:   string(payload),
	}
	if event.PickupID != "" {
		pickupUUID, err := uuid.Parse(event.PickupID)
		if err != nil {
			return domain.ErrParseUUID
		}
		notification.PickupID = &pickupUUID
	}

	if err := s.notificationRepository.CreateNotification(ctx, notification); err != nil {
		return err
	}

	s.sendPush(ctx, event, data)
	s.sendEmail(ctx, event)

	return nil
}

func (s *notificationService) sendPush(ctx context.Context, event domain.PickupEvent, data map[string]string) {
	tokens, err := s.notificationRepository.GetDeviceTokens(ctx, event.RecipientUserID)
	if err != nil {
		log.Warnf("push dispatch: failed to load device tokens for %s: %v", event.RecipientUserID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	pushTokens := make([]expo.ExponentPushToken, 0, len(tokens))
	for _, token := range tokens {
		pushToken, err := expo.NewExponentPushToken(token.Token)
		if err != nil {
			log.Warnf("push dispatch: removing malformed token %q: %v", token.Token, err)
			_ = s.notificationRepository.DeleteDeviceTokenByValue(ctx, token.Token)
			continue
		}
		pushTokens = append(pushTokens, pushToken)
	}
	if len(pushTokens) == 0 {
		return
	}

	var messages []expo.PushMessage
	for _, chunk := range chunkTokens(pushTokens, expoChunkSize) {
		messages = append(messages, expo.PushMessage{
			To:       chunk,
			Title:    event.Title,
			Body:     event.Body,
			Data:     data,
			Sound:    "default",
			Priority: expo.DefaultPriority,
		})
	}

	responses, err := s.pushClient.PublishMultiple(messages)
	if err != nil {
		log.Warnf("push dispatch: publish failed for %s: %v", event.RecipientUserID, err)
		return
	}

	for _, response := range responses {
		if response.ValidateResponse() == nil {
			continue
		}
		if response.Details["error"] == "DeviceNotRegistered" {
			for _, token := range response.PushMessage.To {
				_ = s.notificationRepository.DeleteDeviceTokenByValue(ctx, string(token))
			}
			continue
		}
		log.Warnf("push dispatch: delivery error for %s: %s", event.RecipientUserID, response.Message)
	}
}

func (s *notificationService) sendEmail(ctx context.Context, event domain.PickupEvent) {
	if s.mailer == nil {
		return
	}

	recipient, err := s.userRepository.GetUserByID(ctx, event.RecipientUserID)
	if err != nil {
		log.Warnf("email dispatch: failed to load recipient %s: %v", event.RecipientUserID, err)
		return
	}

	body := fmt.Sprintf("<p>%s</p>", event.Body)
	if err := s.mailer(recipient.Email, event.Title, body); err != nil {
		log.Warnf("email dispatch: failed to send to %s: %v", recipient.Email, err)
	}
}

func toNotificationResponse(notification *entities.Notification) *domain.NotificationResponse {
	response := &domain.NotificationResponse{
		ID:        notification.ID.String(),
		Type:      notification.Type,
		Title:     notification.Title,
		Body:      notification.Body,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
	if notification.PickupID != nil {
		response.PickupID = notification.PickupID.String()
	}
	if notification.Data != "" {
		var data map[string]string
		if err := json.Unmarshal([]byte(notification.Data), &data); err == nil {
			response.Data = data
		}
	}
	return response
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int) (domain.NotificationList, error) {
	notifications, count, err := s.notificationRepository.GetUserNotifications(ctx, userID, unreadOnly, page, limit)
	if err != nil {
		return domain.NotificationList{}, err
	}

	unread, err := s.notificationRepository.CountUnread(ctx, userID)
	if err != nil {
		return domain.NotificationList{}, err
	}

	data := make([]*domain.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		data = append(data, toNotificationResponse(notification))
	}

	pagination := domain.NewPagination(page, limit, count)
	return domain.NotificationList{
		Data:        data,
		UnreadCount: unread,
		Total:       pagination.Total,
		Page:        pagination.Page,
		Limit:       pagination.Limit,
		TotalPages:  pagination.TotalPages,
	}, nil
}

func (s *notificationService) ownedNotification(ctx context.Context, id string, userID string) (*entities.Notification, error) {
	notification, err := s.notificationRepository.GetNotificationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}
	if notification.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedNotificationAccess
	}
	return notification, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, id string, userID string) error {
	notification, err := s.ownedNotification(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.notificationRepository.MarkAsRead(ctx, notification.ID.String())
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.notificationRepository.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) DeleteNotification(ctx context.Context, id string, userID string) error {
	notification, err := s.ownedNotification(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.notificationRepository.SoftDeleteNotification(ctx, notification.ID.String())
}

func (s *notificationService) RegisterDeviceToken(ctx context.Context, req domain.RegisterDeviceTokenRequest, userID string) error {
	if _, err := expo.NewExponentPushToken(req.Token); err != nil {
		return domain.ErrDeviceTokenInvalid
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	return s.notificationRepository.SaveDeviceToken(ctx, &entities.DeviceToken{
		ID:       uuid.New(),
		UserID:   userUUID,
		Token:    req.Token,
		Platform: req.Platform,
	})
}

func (s *notificationService) RemoveDeviceToken(ctx context.Context, token string, userID string) error {
	return s.notificationRepository.DeleteDeviceToken(ctx, userID, token)
}
