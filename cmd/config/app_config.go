package config

import (
	"PixGen-Backend/internal/api/handlers"
	"PixGen-Backend/internal/api/routes"
	"PixGen-Backend/internal/middleware"
	"PixGen-Backend/internal/utils"
	"PixGen-Backend/internal/utils/storage"
	"PixGen-Backend/pkg/admin"
	"PixGen-Backend/pkg/credit"
	"PixGen-Backend/pkg/generation"
	"PixGen-Backend/pkg/jwt"
	"PixGen-Backend/pkg/payment"
	"PixGen-Backend/pkg/user"
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
	creditRepository := credit.NewCreditRepository(db)
	paymentRepository := payment.NewPaymentRepository(db)
	generationRepository := generation.NewGenerationRepository(db)
	adminRepository := admin.NewAdminRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	creditService := credit.NewCreditService(creditRepository)
	userService := user.NewUserService(userRepository, creditService, jwtService)
	esewaCodec := payment.NewEsewaCodec(
		utils.GetConfig("ESEWA_PRODUCT_CODE"),
		utils.GetConfig("ESEWA_SECRET_KEY"),
	)
	intentStore := payment.NewIntentStore(payment.DefaultIntentTTL)
	paymentService := payment.NewPaymentService(
		paymentRepository,
		creditService,
		intentStore,
		esewaCodec,
	)
	backendClient := generation.NewBackendClient()
	generationService := generation.NewGenerationService(
		generationRepository,
		creditService,
		backendClient,
		s3,
	)
	adminService := admin.NewAdminService(adminRepository, jwtService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	generationHandler := handlers.NewGenerationHandler(generationService, validator)
	paymentHandler := handlers.NewPaymentHandler(paymentService, validator)
	adminHandler := handlers.NewAdminHandler(adminService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		GenerationHandler: generationHandler,
		PaymentHandler:    paymentHandler,
		AdminHandler:      adminHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
