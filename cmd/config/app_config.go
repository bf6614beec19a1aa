package config

import (
	"GIVD-Backend/internal/api/handlers"
	"GIVD-Backend/internal/api/routes"
	"GIVD-Backend/internal/events"
	"GIVD-Backend/internal/middleware"
	"GIVD-Backend/internal/utils"
	"GIVD-Backend/internal/utils/storage"
	"GIVD-Backend/pkg/consumption"
	"GIVD-Backend/pkg/jwt"
	"GIVD-Backend/pkg/receipt"
	"GIVD-Backend/pkg/stock"
	"GIVD-Backend/pkg/subscription"
	"GIVD-Backend/pkg/user"
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
		TimeZone:   "Europe/Paris",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	hub := events.NewHub()

	// Repository
	userRepository := user.NewUserRepository(db)
	receiptRepository := receipt.NewReceiptRepository(db)
	stockRepository := stock.NewStockRepository(db)
	consumptionRepository := consumption.NewConsumptionRepository(db)
	subscriptionRepository := subscription.NewSubscriptionRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	receiptService := receipt.NewReceiptService(receiptRepository, s3)
	stockService := stock.NewStockService(stockRepository, consumptionRepository)
	consumptionService := consumption.NewConsumptionService(consumptionRepository, hub)
	subscriptionService := subscription.NewSubscriptionService(subscriptionRepository, userRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)
	stockHandler := handlers.NewStockHandler(stockService, validator)
	consumptionHandler := handlers.NewConsumptionHandler(consumptionService, hub, validator)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		ReceiptHandler:      receiptHandler,
		StockHandler:        stockHandler,
		ConsumptionHandler:  consumptionHandler,
		SubscriptionHandler: subscriptionHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
