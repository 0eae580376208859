package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"crystalseed-scanner/internal/service"
)

// SubscribeHandler takes website contact-form signups. The form must never
// break on the client side, so every outcome is a 200 with {"ok": true};
// failures are only logged.
type SubscribeHandler struct {
	subscribeService service.SubscribeService
	allowedOrigins   []string
	logger           echo.Logger
}

func NewSubscribeHandler(subscribeService service.SubscribeService, allowedOrigins []string, logger echo.Logger) *SubscribeHandler {
	return &SubscribeHandler{
		subscribeService: subscribeService,
		allowedOrigins:   allowedOrigins,
		logger:           logger,
	}
}

func (h *SubscribeHandler) Subscribe(c echo.Context) error {
	ok := map[string]bool{"ok": true}

	origin := c.Request().Header.Get("Origin")
	if !h.originAllowed(origin) {
		return c.JSON(http.StatusOK, ok)
	}

	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, ok)
	}

	if err := h.subscribeService.Subscribe(c.Request().Context(), req.Email, req.Name); err != nil {
		h.logger.Error("Subscribe failed:", err)
	}
	return c.JSON(http.StatusOK, ok)
}

func (h *SubscribeHandler) originAllowed(origin string) bool {
	for _, allowed := range h.allowedOrigins {
		if strings.HasPrefix(origin, allowed) {
			return true
		}
	}
	return false
}
