package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"crystalseed-scanner/internal/config"
	"crystalseed-scanner/internal/handler"
	"crystalseed-scanner/internal/middleware"
)

func SetupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	scanHandler *handler.ScanHandler,
	unsubscribeHandler *handler.UnsubscribeHandler,
	subscribeHandler *handler.SubscribeHandler,
	authHandler *handler.AuthHandler,
) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	// Operator setup flow for minting the Gmail refresh token
	e.GET("/auth/google", authHandler.BeginAuth)
	e.GET("/auth/google/callback", authHandler.Callback)

	// Scheduled trigger, bearer-token gated
	cron := e.Group("/api/cron")
	cron.Use(middleware.CronAuth(cfg.CronSecret))
	cron.GET("/scan", scanHandler.RunScan)

	// Public surfaces
	e.GET("/api/unsubscribe", unsubscribeHandler.Unsubscribe)
	e.POST("/api/generate-footer", unsubscribeHandler.GenerateFooter)
	e.POST("/api/subscribe", subscribeHandler.Subscribe)
}
