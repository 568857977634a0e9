package handlers

import (
	"ComiYA-Backend/domain"
	"ComiYA-Backend/internal/api/presenters"
	"ComiYA-Backend/pkg/pickup"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PickupHandler interface {
		CreatePickup(c *fiber.Ctx) error
		ConfirmPickup(c *fiber.Ctx) error
		ConfirmVisit(c *fiber.Ctx) error
		CompletePickup(c *fiber.Ctx) error
		CancelPickup(c *fiber.Ctx) error
		UpdatePickup(c *fiber.Ctx) error
		GetPickup(c *fiber.Ctx) error
		GetPickups(c *fiber.Ctx) error
		GetMyPickups(c *fiber.Ctx) error
		GetEstablishmentPickups(c *fiber.Ctx) error
		GetStatistics(c *fiber.Ctx) error
	}

	pickupHandler struct {
		pickupService pickup.PickupService
		validator     *validator.Validate
	}
)

func NewPickupHandler(pickupService pickup.PickupService, validator *validator.Validate) PickupHandler {
	return &pickupHandler{
		pickupService: pickupService,
		validator:     validator,
	}
}

func (h *pickupHandler) CreatePickup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreatePickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePickup, err)
	}

	result, err := h.pickupService.CreatePickup(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreatePickup, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessCreatePickup)
}

func (h *pickupHandler) ConfirmPickup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	pickupID := c.Params("id")

	req := new(domain.ConfirmPickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConfirmPickup, err)
	}

	result, err := h.pickupService.ConfirmPickup(c.Context(), pickupID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedConfirmPickup, err)
	}

	message := domain.MessageSuccessConfirmPickup
	if req.Confirmed != nil && !*req.Confirmed {
		message = domain.MessageSuccessRejectPickup
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, message)
}

func (h *pickupHandler) ConfirmVisit(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	pickupID := c.Params("id")

	result, err := h.pickupService.ConfirmVisit(c.Context(), pickupID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedConfirmVisit, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessConfirmVisit)
}

func (h *pickupHandler) CompletePickup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	pickupID := c.Params("id")

	req := new(domain.CompletePickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCompletePickup, err)
	}

	result, err := h.pickupService.CompletePickup(c.Context(), pickupID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCompletePickup, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessCompletePickup)
}

func (h *pickupHandler) CancelPickup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	pickupID := c.Params("id")

	req := new(domain.CancelPickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelPickup, err)
	}

	result, err := h.pickupService.CancelPickup(c.Context(), pickupID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCancelPickup, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessCancelPickup)
}

func (h *pickupHandler) UpdatePickup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	pickupID := c.Params("id")

	req := new(domain.UpdatePickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePickup, err)
	}

	result, err := h.pickupService.UpdatePickup(c.Context(), pickupID, *req, userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdatePickup, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessUpdatePickup)
}

func (h *pickupHandler) GetPickup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	pickupID := c.Params("id")

	result, err := h.pickupService.GetPickupByID(c.Context(), pickupID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPickups, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetPickupDetail)
}

func parsePickupFilter(c *fiber.Ctx) domain.PickupFilter {
	page, limit := parsePagination(c)

	filter := domain.PickupFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}

	if raw := c.Query("start_date"); raw != "" {
		if startDate, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.StartDate = startDate
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if endDate, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.EndDate = endDate
		}
	}

	return filter
}

func (h *pickupHandler) GetPickups(c *fiber.Ctx) error {
	filter := parsePickupFilter(c)
	filter.BeneficiaryID = c.Query("beneficiary_id")
	filter.EstablishmentID = c.Query("establishment_id")

	result, err := h.pickupService.GetPickups(c.Context(), filter)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPickups, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetPickups)
}

func (h *pickupHandler) GetMyPickups(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	filter := parsePickupFilter(c)

	result, err := h.pickupService.GetPickupsByBeneficiary(c.Context(), userID, filter)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPickups, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetPickups)
}

func (h *pickupHandler) GetEstablishmentPickups(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	filter := parsePickupFilter(c)

	result, err := h.pickupService.GetPickupsByEstablishment(c.Context(), userID, filter)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPickups, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetPickups)
}

func (h *pickupHandler) GetStatistics(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)

	scope, err := h.pickupService.ResolveScope(c.Context(), userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPickupStats, err)
	}

	result, err := h.pickupService.GetStatistics(c.Context(), scope)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetPickupStats, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetPickupStats)
}
