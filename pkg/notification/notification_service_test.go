package notification

import (
	"ComiYA-Backend/domain"
	"ComiYA-Backend/entities"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeNotificationRepository struct {
	notifications map[string]*entities.Notification
	tokens        map[string]*entities.DeviceToken
	readAllFor    string
}

func newFakeNotificationRepository() *fakeNotificationRepository {
	return &fakeNotificationRepository{
		notifications: make(map[string]*entities.Notification),
		tokens:        make(map[string]*entities.DeviceToken),
	}
}

func (r *fakeNotificationRepository) CreateNotification(_ context.Context, notification *entities.Notification) error {
	r.notifications[notification.ID.String()] = notification
	return nil
}

func (r *fakeNotificationRepository) GetNotificationByID(_ context.Context, id string) (*entities.Notification, error) {
	notification, ok := r.notifications[id]
	if !ok || notification.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	return notification, nil
}

func (r *fakeNotificationRepository) GetUserNotifications(_ context.Context, userID string, unreadOnly bool, _, _ int) ([]*entities.Notification, int64, error) {
	var result []*entities.Notification
	for _, notification := range r.notifications {
		if notification.UserID.String() != userID || notification.IsDeleted {
			continue
		}
		if unreadOnly && notification.IsRead {
			continue
		}
		result = append(result, notification)
	}
	return result, int64(len(result)), nil
}

func (r *fakeNotificationRepository) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, notification := range r.notifications {
		if notification.UserID.String() == userID && !notification.IsRead && !notification.IsDeleted {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepository) MarkAsRead(_ context.Context, id string) error {
	if notification, ok := r.notifications[id]; ok {
		notification.IsRead = true
	}
	return nil
}

func (r *fakeNotificationRepository) MarkAllAsRead(_ context.Context, userID string) error {
	r.readAllFor = userID
	for _, notification := range r.notifications {
		if notification.UserID.String() == userID {
			notification.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepository) SoftDeleteNotification(_ context.Context, id string) error {
	if notification, ok := r.notifications[id]; ok {
		notification.IsDeleted = true
	}
	return nil
}

func (r *fakeNotificationRepository) SaveDeviceToken(_ context.Context, token *entities.DeviceToken) error {
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeNotificationRepository) GetDeviceTokens(_ context.Context, userID string) ([]*entities.DeviceToken, error) {
	var result []*entities.DeviceToken
	for _, token := range r.tokens {
		if token.UserID.String() == userID {
			result = append(result, token)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepository) DeleteDeviceToken(_ context.Context, userID string, token string) error {
	if stored, ok := r.tokens[token]; ok && stored.UserID.String() == userID {
		delete(r.tokens, token)
	}
	return nil
}

func (r *fakeNotificationRepository) DeleteDeviceTokenByValue(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

type fakeUserRepository struct {
	users map[string]*entities.User
}

func (r *fakeUserRepository) CreateUser(_ context.Context, _ *entities.User) error { return nil }

func (r *fakeUserRepository) GetUserByEmail(_ context.Context, _ string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) CreateBeneficiary(_ context.Context, _ *entities.Beneficiary) error {
	return nil
}

func (r *fakeUserRepository) GetBeneficiaryByUserID(_ context.Context, _ string) (*entities.Beneficiary, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) CreateEstablishment(_ context.Context, _ *entities.Establishment) error {
	return nil
}

func (r *fakeUserRepository) GetEstablishmentByUserID(_ context.Context, _ string) (*entities.Establishment, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) GetEstablishmentByID(_ context.Context, _ string) (*entities.Establishment, error) {
	return nil, gorm.ErrRecordNotFound
}

type fakePushClient struct {
	published [][]expo.PushMessage
	responses []expo.PushResponse
	err       error
}

func (c *fakePushClient) PublishMultiple(messages []expo.PushMessage) ([]expo.PushResponse, error) {
	c.published = append(c.published, messages)
	if c.err != nil {
		return nil, c.err
	}
	if c.responses != nil {
		return c.responses, nil
	}
	responses := make([]expo.PushResponse, len(messages))
	for i := range responses {
		responses[i].Status = expo.SuccessStatus
	}
	return responses, nil
}

func expoToken(n int) string {
	return fmt.Sprintf("ExponentPushToken[%022d]", n)
}

func newService(repo *fakeNotificationRepository, users *fakeUserRepository, push *fakePushClient, mailer Mailer) NotificationService {
	if users == nil {
		users = &fakeUserRepository{users: map[string]*entities.User{}}
	}
	return NewNotificationService(repo, users, push, mailer)
}

func TestDispatchStoresNotification(t *testing.T) {
	repo := newFakeNotificationRepository()
	push := &fakePushClient{}
	service := newService(repo, nil, push, nil)

	recipientID := uuid.New()
	pickupID := uuid.New()

	err := service.Dispatch(context.Background(), domain.PickupEvent{
		RecipientUserID: recipientID.String(),
		Type:            domain.NotificationPickupConfirmed,
		Title:           "Pickup confirmed",
		Body:            "Your pickup was confirmed.",
		PickupID:        pickupID.String(),
		Screen:          "PickupDetail",
		Data:            map[string]string{"status": entities.PickupStatusConfirmed},
	})
	require.NoError(t, err)

	require.Len(t, repo.notifications, 1)
	for _, stored := range repo.notifications {
		assert.Equal(t, recipientID, stored.UserID)
		assert.Equal(t, domain.NotificationPickupConfirmed, stored.Type)
		require.NotNil(t, stored.PickupID)
		assert.Equal(t, pickupID, *stored.PickupID)
		assert.False(t, stored.IsRead)

		var data map[string]string
		require.NoError(t, json.Unmarshal([]byte(stored.Data), &data))
		assert.Equal(t, "PickupDetail", data["screen"])
		assert.Equal(t, pickupID.String(), data["pickup_id"])
		assert.Equal(t, entities.PickupStatusConfirmed, data["status"])
	}

	// no registered devices, nothing published
	assert.Empty(t, push.published)
}

func TestDispatchPushesToDevices(t *testing.T) {
	repo := newFakeNotificationRepository()
	push := &fakePushClient{}
	service := newService(repo, nil, push, nil)

	recipientID := uuid.New()
	repo.tokens[expoToken(1)] = &entities.DeviceToken{UserID: recipientID, Token: expoToken(1)}
	repo.tokens[expoToken(2)] = &entities.DeviceToken{UserID: recipientID, Token: expoToken(2)}
	repo.tokens["garbage-token"] = &entities.DeviceToken{UserID: recipientID, Token: "garbage-token"}

	err := service.Dispatch(context.Background(), domain.PickupEvent{
		RecipientUserID: recipientID.String(),
		Type:            domain.NotificationPickupRequested,
		Title:           "New pickup request",
		Body:            "Someone wants your bread.",
	})
	require.NoError(t, err)

	require.Len(t, push.published, 1)
	require.Len(t, push.published[0], 1)
	assert.Len(t, push.published[0][0].To, 2)
	assert.Equal(t, "New pickup request", push.published[0][0].Title)

	// the malformed token is purged on sight
	_, ok := repo.tokens["garbage-token"]
	assert.False(t, ok)
}

func TestDispatchRemovesUnregisteredDevices(t *testing.T) {
	repo := newFakeNotificationRepository()
	recipientID := uuid.New()
	repo.tokens[expoToken(7)] = &entities.DeviceToken{UserID: recipientID, Token: expoToken(7)}

	token, err := expo.NewExponentPushToken(expoToken(7))
	require.NoError(t, err)

	push := &fakePushClient{
		responses: []expo.PushResponse{{
			Status:  expo.ErrorDeviceNotRegistered,
			Details: map[string]string{"error": "DeviceNotRegistered"},
			PushMessage: expo.PushMessage{
				To: []expo.ExponentPushToken{token},
			},
		}},
	}
	service := newService(repo, nil, push, nil)

	err = service.Dispatch(context.Background(), domain.PickupEvent{
		RecipientUserID: recipientID.String(),
		Type:            domain.NotificationPickupCancelled,
		Title:           "Pickup cancelled",
		Body:            "The beneficiary cancelled.",
	})
	require.NoError(t, err)

	assert.Empty(t, repo.tokens)
}

func TestDispatchSurvivesPushFailure(t *testing.T) {
	repo := newFakeNotificationRepository()
	recipientID := uuid.New()
	repo.tokens[expoToken(9)] = &entities.DeviceToken{UserID: recipientID, Token: expoToken(9)}

	push := &fakePushClient{err: assert.AnError}
	service := newService(repo, nil, push, nil)

	err := service.Dispatch(context.Background(), domain.PickupEvent{
		RecipientUserID: recipientID.String(),
		Type:            domain.NotificationPickupCompleted,
		Title:           "Pickup completed",
		Body:            "Enjoy your food.",
	})

	// the stored record is the source of truth, transport errors are swallowed
	require.NoError(t, err)
	assert.Len(t, repo.notifications, 1)
}

func TestDispatchSendsEmail(t *testing.T) {
	repo := newFakeNotificationRepository()
	recipientID := uuid.New()
	users := &fakeUserRepository{users: map[string]*entities.User{
		recipientID.String(): {ID: recipientID, Email: "maria@example.com"},
	}}

	var sentTo, sentSubject string
	mailer := func(toEmail, subject, _ string) error {
		sentTo = toEmail
		sentSubject = subject
		return nil
	}
	service := newService(repo, users, &fakePushClient{}, mailer)

	err := service.Dispatch(context.Background(), domain.PickupEvent{
		RecipientUserID: recipientID.String(),
		Type:            domain.NotificationPickupConfirmed,
		Title:           "Pickup confirmed",
		Body:            "See you tomorrow.",
	})
	require.NoError(t, err)

	assert.Equal(t, "maria@example.com", sentTo)
	assert.Equal(t, "Pickup confirmed", sentSubject)
}

func TestDispatchRejectsBadRecipient(t *testing.T) {
	service := newService(newFakeNotificationRepository(), nil, &fakePushClient{}, nil)

	err := service.Dispatch(context.Background(), domain.PickupEvent{
		RecipientUserID: "not-a-uuid",
		Type:            domain.NotificationPickupConfirmed,
	})
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestChunkTokens(t *testing.T) {
	tokens := make([]expo.ExponentPushToken, 250)
	chunks := chunkTokens(tokens, expoChunkSize)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
	assert.Len(t, chunks[2], 50)

	assert.Nil(t, chunkTokens(nil, expoChunkSize))
}

func TestInboxLifecycle(t *testing.T) {
	repo := newFakeNotificationRepository()
	service := newService(repo, nil, &fakePushClient{}, nil)

	userID := uuid.New()
	first := &entities.Notification{ID: uuid.New(), UserID: userID, Title: "one"}
	second := &entities.Notification{ID: uuid.New(), UserID: userID, Title: "two", IsRead: true}
	other := &entities.Notification{ID: uuid.New(), UserID: uuid.New(), Title: "not yours"}
	for _, notification := range []*entities.Notification{first, second, other} {
		repo.notifications[notification.ID.String()] = notification
	}

	list, err := service.GetUserNotifications(context.Background(), userID.String(), false, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, int64(1), list.UnreadCount)

	require.NoError(t, service.MarkAsRead(context.Background(), first.ID.String(), userID.String()))
	assert.True(t, first.IsRead)

	err = service.MarkAsRead(context.Background(), other.ID.String(), userID.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedNotificationAccess)

	require.NoError(t, service.DeleteNotification(context.Background(), first.ID.String(), userID.String()))
	assert.True(t, first.IsDeleted)

	err = service.MarkAsRead(context.Background(), first.ID.String(), userID.String())
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}

func TestDeviceTokenRegistration(t *testing.T) {
	repo := newFakeNotificationRepository()
	service := newService(repo, nil, &fakePushClient{}, nil)
	userID := uuid.New()

	err := service.RegisterDeviceToken(context.Background(), domain.RegisterDeviceTokenRequest{
		Token:    expoToken(3),
		Platform: "android",
	}, userID.String())
	require.NoError(t, err)
	require.Contains(t, repo.tokens, expoToken(3))
	assert.Equal(t, userID, repo.tokens[expoToken(3)].UserID)

	err = service.RegisterDeviceToken(context.Background(), domain.RegisterDeviceTokenRequest{
		Token:    "definitely-not-expo",
		Platform: "ios",
	}, userID.String())
	assert.ErrorIs(t, err, domain.ErrDeviceTokenInvalid)

	require.NoError(t, service.RemoveDeviceToken(context.Background(), expoToken(3), userID.String()))
	assert.Empty(t, repo.tokens)
}
