package app

import (
	"fmt"
	"os"

	"inmobiliaria-api/app/controller"
	"inmobiliaria-api/app/router"
	"inmobiliaria-api/db"
	"inmobiliaria-api/repository"
	"inmobiliaria-api/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Get credentials path from environment variable
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath == "" {
		return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
	}

	// Google-backed services (document storage and OTP mail)
	driveService, err := service.NewDriveService(credentialsPath)
	if err != nil {
		return err
	}
	mailService, err := service.NewMailService(credentialsPath)
	if err != nil {
		return err
	}

	// Redis-backed store for OTPs, lockouts and reset tokens
	authStore, err := service.NewAuthStore()
	if err != nil {
		return err
	}

	reciboService := service.NewReciboService()

	// Repositories
	contratoRepo := repository.NewContratoRepository()
	loteRepo := repository.NewLoteRepository()
	clienteRepo := repository.NewClienteRepository()
	pagoRepo := repository.NewPagoRepository()
	ubicacionRepo := repository.NewUbicacionRepository()
	userRepo := repository.NewUserRepository()

	// Create controllers
	controllers := &router.Controllers{
		Contrato:  controller.NewContratoController(contratoRepo),
		Lote:      controller.NewLoteController(loteRepo),
		Cliente:   controller.NewClienteController(clienteRepo, driveService),
		Pago:      controller.NewPagoController(pagoRepo, contratoRepo, reciboService),
		Ubicacion: controller.NewUbicacionController(ubicacionRepo),
		User:      controller.NewUserController(userRepo),
		Auth:      controller.NewAuthController(userRepo, authStore, mailService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
