package handlers

import (
	"ComiYA-Backend/domain"
	"ComiYA-Backend/internal/api/presenters"
	"ComiYA-Backend/pkg/food"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FoodHandler interface {
		AddFood(c *fiber.Ctx) error
		UpdateFood(c *fiber.Ctx) error
		DeleteFood(c *fiber.Ctx) error
		GetFoodDetails(c *fiber.Ctx) error
		GetMyFoods(c *fiber.Ctx) error
		BrowseFoods(c *fiber.Ctx) error
		UploadFoodImage(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
		validator   *validator.Validate
	}
)

func NewFoodHandler(foodService food.FoodService, validator *validator.Validate) FoodHandler {
	return &foodHandler{
		foodService: foodService,
		validator:   validator,
	}
}

func parsePagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	return page, limit
}

func (h *foodHandler) AddFood(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.AddFoodRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddFood, err)
	}

	result, err := h.foodService.AddFood(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddFood, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessAddFood)
}

func (h *foodHandler) UpdateFood(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	foodID := c.Params("id")

	req := new(domain.UpdateFoodRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFood, err)
	}

	result, err := h.foodService.UpdateFood(c.Context(), foodID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateFood, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessUpdateFood)
}

func (h *foodHandler) DeleteFood(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	foodID := c.Params("id")

	if err := h.foodService.DeleteFood(c.Context(), foodID, userID); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteFood, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFood)
}

func (h *foodHandler) GetFoodDetails(c *fiber.Ctx) error {
	foodID := c.Params("id")

	result, err := h.foodService.GetFoodByID(c.Context(), foodID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetFoods, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetFoodDetail)
}

func (h *foodHandler) GetMyFoods(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status", "all")
	page, limit := parsePagination(c)

	foods, count, err := h.foodService.GetMyFoods(c.Context(), userID, status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetFoods, err)
	}

	pagination := domain.NewPagination(page, limit, count)
	return presenters.SuccessResponse(c, fiber.Map{
		"foods":      foods,
		"pagination": pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetFoods)
}

func (h *foodHandler) BrowseFoods(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	foods, count, err := h.foodService.BrowseAvailableFoods(c.Context(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetFoods, err)
	}

	pagination := domain.NewPagination(page, limit, count)
	return presenters.SuccessResponse(c, fiber.Map{
		"foods":      foods,
		"pagination": pagination,
	}, fiber.StatusOK, domain.MessageSuccessGetFoods)
}

func (h *foodHandler) UploadFoodImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.UploadFoodImageRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.Image, _ = c.FormFile("image")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	result, err := h.foodService.UploadFoodImage(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
