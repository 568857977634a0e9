package handlers

import (
	"ComiYA-Backend/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP statuses: missing entities are 404,
// ownership violations are 403, everything else a precondition failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPickupNotFound),
		errors.Is(err, domain.ErrFoodNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBeneficiaryNotFound),
		errors.Is(err, domain.ErrEstablishmentNotFound),
		errors.Is(err, domain.ErrNotificationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedPickupAccess),
		errors.Is(err, domain.ErrUnauthorizedFoodAccess),
		errors.Is(err, domain.ErrUnauthorizedNotificationAccess),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}
