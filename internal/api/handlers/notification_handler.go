package handlers

import (
	"ComiYA-Backend/domain"
	"ComiYA-Backend/internal/api/presenters"
	"ComiYA-Backend/pkg/notification"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	NotificationHandler interface {
		GetNotifications(c *fiber.Ctx) error
		MarkAsRead(c *fiber.Ctx) error
		MarkAllAsRead(c *fiber.Ctx) error
		DeleteNotification(c *fiber.Ctx) error
		RegisterDeviceToken(c *fiber.Ctx) error
		RemoveDeviceToken(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
		validator           *validator.Validate
	}
)

func NewNotificationHandler(notificationService notification.NotificationService, validator *validator.Validate) NotificationHandler {
	return &notificationHandler{
		notificationService: notificationService,
		validator:           validator,
	}
}

func (h *notificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	unreadOnly := c.Query("unread") == "true"
	page, limit := parsePagination(c)

	result, err := h.notificationService.GetUserNotifications(c.Context(), userID, unreadOnly, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	notificationID := c.Params("id")

	if err := h.notificationService.MarkAsRead(c.Context(), notificationID, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedMarkAsRead, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkAsRead)
}

func (h *notificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.notificationService.MarkAllAsRead(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedMarkAsRead, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkAllAsRead)
}

func (h *notificationHandler) DeleteNotification(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	notificationID := c.Params("id")

	if err := h.notificationService.DeleteNotification(c.Context(), notificationID, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteNotification, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteNotification)
}

func (h *notificationHandler) RegisterDeviceToken(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.RegisterDeviceTokenRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegisterDeviceToken, err)
	}

	if err := h.notificationService.RegisterDeviceToken(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRegisterDeviceToken, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessRegisterDeviceToken)
}

func (h *notificationHandler) RemoveDeviceToken(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	token := c.Query("token")

	if token == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegisterDeviceToken, domain.ErrDeviceTokenInvalid)
	}

	if err := h.notificationService.RemoveDeviceToken(c.Context(), token, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRegisterDeviceToken, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRemoveDeviceToken)
}
