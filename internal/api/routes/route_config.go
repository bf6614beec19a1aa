package routes

import (
	"GIVD-Backend/internal/api/handlers"
	"GIVD-Backend/internal/middleware"
	"GIVD-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	ReceiptHandler      handlers.ReceiptHandler
	StockHandler        handlers.StockHandler
	ConsumptionHandler  handlers.ConsumptionHandler
	SubscriptionHandler handlers.SubscriptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Receipts()
	c.Stock()
	c.Consumption()
	c.Subscriptions()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/v1/receipts", c.Middleware.AuthMiddleware(c.JWTService))

	receipts.Post("", c.ReceiptHandler.SubmitReceipt)
	receipts.Get("", c.ReceiptHandler.GetReceipts)
	receipts.Get("/products", c.ReceiptHandler.GetProducts)
	receipts.Get("/:id", c.ReceiptHandler.GetReceiptDetails)
	receipts.Post("/photo", c.ReceiptHandler.AttachReceiptPhoto)
}

func (c *Config) Stock() {
	stock := c.App.Group("/api/v1/stock", c.Middleware.AuthMiddleware(c.JWTService))

	stock.Get("", c.StockHandler.GetStock)
	stock.Get("/low", c.StockHandler.GetLowStock)
	stock.Get("/dashboard", c.StockHandler.GetDashboardSummary)
	stock.Patch("/:id", c.StockHandler.UpdateStockItem)
}

func (c *Config) Consumption() {
	consumption := c.App.Group("/api/v1/consumption", c.Middleware.AuthMiddleware(c.JWTService))

	consumption.Post("", c.ConsumptionHandler.LogConsumption)
	consumption.Get("", c.ConsumptionHandler.GetConsumptionLogs)
	consumption.Get("/top-products", c.ConsumptionHandler.GetTopProducts)

	// EventSource cannot set headers, so the auth token rides a query param.
	c.App.Get("/api/v1/events/stream", c.Middleware.AuthMiddleware(c.JWTService), c.ConsumptionHandler.StreamEvents)
}

func (c *Config) Subscriptions() {
	subscriptions := c.App.Group("/api/v1/subscriptions")

	subscriptions.Get("/plans", c.SubscriptionHandler.GetPlans)
	subscriptions.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.GetSubscription)
	subscriptions.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.SubscriptionHandler.Subscribe)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.SubscriptionHandler.PaymentWebhook)
}
