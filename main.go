package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"

	"crystalseed-scanner/internal/ai"
	"crystalseed-scanner/internal/config"
	"crystalseed-scanner/internal/gmail"
	"crystalseed-scanner/internal/handler"
	"crystalseed-scanner/internal/logger"
	"crystalseed-scanner/internal/repository"
	"crystalseed-scanner/internal/repository/memory"
	"crystalseed-scanner/internal/repository/postgres"
	"crystalseed-scanner/internal/repository/sheets"
	"crystalseed-scanner/internal/router"
	"crystalseed-scanner/internal/service"
	"crystalseed-scanner/internal/token"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatal("Config validation failed:", err)
	}

	// Initialize logger
	appLogger := logger.New()

	ctx := context.Background()

	// Initialize the contact store (postgres, sheets, or in-memory based on config)
	var contactRepo repository.ContactRepository
	switch {
	case cfg.DatabaseURL != "":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		if err := postgres.InitializeSchema(db); err != nil {
			log.Fatal("Failed to initialize database:", err)
		}
		contactRepo = postgres.NewPostgresContactRepository(db)
		appLogger.Info("Using PostgreSQL contact store")

	case cfg.SheetsID != "":
		repo, err := sheets.NewSheetsContactRepository(ctx, cfg.SheetsID, cfg.ServiceAccountKey, appLogger)
		if err != nil {
			log.Fatal("Failed to create Sheets contact store:", err)
		}
		contactRepo = repo
		appLogger.Info("Using Google Sheets contact store")

	default:
		contactRepo = memory.NewInMemoryContactRepository()
		appLogger.Info("Using in-memory contact store")
	}

	// Initialize the token generator
	tokens := token.NewGenerator(cfg.UnsubscribeSecret)

	// Initialize AI client
	aiClient := ai.NewAIClient(cfg.AIProvider, cfg.AIKey, appLogger)

	// Initialize Gmail client with refresh-token credentials
	gmailClient, err := gmail.NewGmailClient(ctx,
		cfg.GmailClientID, cfg.GmailClientSecret, cfg.GmailRefreshToken,
		cfg.SnippetMaxChars, appLogger)
	if err != nil {
		log.Fatal("Failed to create Gmail client:", err)
	}

	// Initialize services
	scanService := service.NewScanService(contactRepo, gmailClient, aiClient, tokens, service.ScanConfig{
		IntakeMaxResults: cfg.ScanMaxResults,
		UnsubMaxResults:  cfg.UnsubMaxResults,
		MinConfidence:    cfg.MinConfidence,
		SelfAddresses:    cfg.SelfAddresses,
	}, appLogger)
	unsubscribeService := service.NewUnsubscribeService(contactRepo, appLogger)
	subscribeService := service.NewSubscribeService(contactRepo, tokens, appLogger)

	// Initialize handlers
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	scanHandler := handler.NewScanHandler(scanService, e.Logger)
	unsubscribeHandler := handler.NewUnsubscribeHandler(unsubscribeService, tokens, cfg, e.Logger)
	subscribeHandler := handler.NewSubscribeHandler(subscribeService, cfg.AllowedFormOrigins, e.Logger)
	authHandler := handler.NewAuthHandler(cfg, e.Logger)

	// Setup routes
	router.SetupRoutes(e, cfg, scanHandler, unsubscribeHandler, subscribeHandler, authHandler)

	// Start server
	appLogger.Info("Starting server on port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		appLogger.Error("Failed to start server:", err)
	}
}
