package config

import (
	"ComiYA-Backend/internal/api/handlers"
	"ComiYA-Backend/internal/api/routes"
	"ComiYA-Backend/internal/middleware"
	"ComiYA-Backend/internal/utils"
	"ComiYA-Backend/internal/utils/mailing"
	"ComiYA-Backend/internal/utils/storage"
	"ComiYA-Backend/pkg/food"
	"ComiYA-Backend/pkg/jwt"
	"ComiYA-Backend/pkg/notification"
	"ComiYA-Backend/pkg/pickup"
	"ComiYA-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "America/Lima",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	foodRepository := food.NewFoodRepository(db)
	pickupRepository := pickup.NewPickupRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	foodService := food.NewFoodService(foodRepository, userRepository, s3)
	notificationService := notification.NewNotificationService(
		notificationRepository,
		userRepository,
		notification.NewExpoPushClient(),
		mailing.SendMail,
	)
	pickupService := pickup.NewPickupService(
		pickupRepository,
		foodRepository,
		userRepository,
		notificationService,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	pickupHandler := handlers.NewPickupHandler(pickupService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		FoodHandler:         foodHandler,
		PickupHandler:       pickupHandler,
		NotificationHandler: notificationHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
