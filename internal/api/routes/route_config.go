package routes

import (
	"PixGen-Backend/internal/api/handlers"
	"PixGen-Backend/internal/middleware"
	"PixGen-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	GenerationHandler handlers.GenerationHandler
	PaymentHandler    handlers.PaymentHandler
	AdminHandler      handlers.AdminHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Generations()
	c.Payments()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/send_code", c.UserHandler.SendVerificationCode)
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/username", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUsername)
		user.Delete("/account", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.DeleteAccount)
	}
}

func (c *Config) Generations() {
	generations := c.App.Group("/api/v1/generations")
	{
		generations.Post("/guest", c.GenerationHandler.GenerateGuest)
		generations.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.GenerationHandler.Generate)
		generations.Get("", c.Middleware.AuthMiddleware(c.JWTService), c.GenerationHandler.GetLibrary)
		generations.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.GenerationHandler.DeleteGeneration)
	}
}

func (c *Config) Payments() {
	c.App.Get("/api/v1/plans", c.PaymentHandler.GetPlans)

	payments := c.App.Group("/api/v1/payments")
	{
		payments.Post("/initiate", c.Middleware.AuthMiddleware(c.JWTService), c.PaymentHandler.InitiatePayment)
		// Gateway callbacks carry the intent token, not a session.
		payments.Get("/success", c.PaymentHandler.PaymentSuccess)
		payments.Get("/failure", c.PaymentHandler.PaymentFailure)
	}
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin")
	{
		admin.Post("/login", c.AdminHandler.Login)
		admin.Get(
			"/dashboard",
			c.Middleware.AuthMiddleware(c.JWTService),
			c.Middleware.AdminMiddleware(),
			c.AdminHandler.Dashboard,
		)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
