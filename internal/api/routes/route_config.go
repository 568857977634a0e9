package routes

import (
	"ComiYA-Backend/internal/api/handlers"
	"ComiYA-Backend/internal/middleware"
	"ComiYA-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	FoodHandler         handlers.FoodHandler
	PickupHandler       handlers.PickupHandler
	NotificationHandler handlers.NotificationHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Foods()
	c.Pickups()
	c.Notifications()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Post("/beneficiary", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.CreateBeneficiary)
		user.Post("/establishment", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.CreateEstablishment)
	}
}

func (c *Config) Foods() {
	foods := c.App.Group("/api/v1/foods", c.Middleware.AuthMiddleware(c.JWTService))

	// Basic CRUD operations
	foods.Post("", c.FoodHandler.AddFood)
	foods.Get("/browse", c.FoodHandler.BrowseFoods)
	foods.Get("/mine", c.FoodHandler.GetMyFoods)
	foods.Get("/:id", c.FoodHandler.GetFoodDetails)
	foods.Put("/:id", c.FoodHandler.UpdateFood)
	foods.Delete("/:id", c.FoodHandler.DeleteFood)

	// Special operations
	foods.Post("/image", c.FoodHandler.UploadFoodImage)
}

func (c *Config) Pickups() {
	pickups := c.App.Group("/api/v1/pickups", c.Middleware.AuthMiddleware(c.JWTService))

	pickups.Post("", c.PickupHandler.CreatePickup)
	pickups.Get("", c.PickupHandler.GetPickups)
	pickups.Get("/statistics", c.PickupHandler.GetStatistics)
	pickups.Get("/mine", c.PickupHandler.GetMyPickups)
	pickups.Get("/establishment", c.PickupHandler.GetEstablishmentPickups)
	pickups.Get("/:id", c.PickupHandler.GetPickup)
	pickups.Patch("/:id", c.PickupHandler.UpdatePickup)

	// Lifecycle transitions
	pickups.Post("/:id/confirm", c.PickupHandler.ConfirmPickup)
	pickups.Post("/:id/visit", c.PickupHandler.ConfirmVisit)
	pickups.Post("/:id/complete", c.PickupHandler.CompletePickup)
	pickups.Post("/:id/cancel", c.PickupHandler.CancelPickup)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))

	notifications.Get("", c.NotificationHandler.GetNotifications)
	notifications.Patch("/read-all", c.NotificationHandler.MarkAllAsRead)
	notifications.Patch("/:id/read", c.NotificationHandler.MarkAsRead)
	notifications.Delete("/:id", c.NotificationHandler.DeleteNotification)

	notifications.Post("/devices", c.NotificationHandler.RegisterDeviceToken)
	notifications.Delete("/devices", c.NotificationHandler.RemoveDeviceToken)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
