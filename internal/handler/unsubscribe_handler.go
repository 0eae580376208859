package handler

import (
	"crypto/subtle"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"crystalseed-scanner/internal/config"
	"crystalseed-scanner/internal/service"
	"crystalseed-scanner/internal/token"
)

type UnsubscribeHandler struct {
	unsubscribeService service.UnsubscribeService
	tokens             *token.Generator
	config             *config.Config
	logger             echo.Logger
}

func NewUnsubscribeHandler(unsubscribeService service.UnsubscribeService, tokens *token.Generator, config *config.Config, logger echo.Logger) *UnsubscribeHandler {
	return &UnsubscribeHandler{
		unsubscribeService: unsubscribeService,
		tokens:             tokens,
		config:             config,
		logger:             logger,
	}
}

// Unsubscribe handles the user-facing unsubscribe link. Store and provider
// errors collapse to one generic page with a manual-contact fallback.
func (h *UnsubscribeHandler) Unsubscribe(c echo.Context) error {
	t := c.QueryParam("token")
	if !token.IsWellFormed(t) {
		return c.HTML(http.StatusBadRequest, resultPage("Invalid unsubscribe link.", false))
	}

	found, err := h.unsubscribeService.UnsubscribeByToken(c.Request().Context(), t)
	if err != nil {
		h.logger.Error("Unsubscribe failed:", err)
		return c.HTML(http.StatusInternalServerError,
			resultPage("Something went wrong. Please email crystalseedtarot@gmail.com to unsubscribe.", false))
	}
	if !found {
		return c.HTML(http.StatusNotFound,
			resultPage("This unsubscribe link is not valid or has already been used.", false))
	}
	return c.HTML(http.StatusOK,
		resultPage("You've been successfully unsubscribed from Crystal Seed Tarot emails.", true))
}

// GenerateFooter returns the deterministic token for an address plus
// ready-to-embed footer variants. Gated by the shared unsubscribe secret.
func (h *UnsubscribeHandler) GenerateFooter(c echo.Context) error {
	var req struct {
		Email  string `json:"email"`
		Secret string `json:"secret"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	expected := h.config.UnsubscribeSecret
	if expected == "" || subtle.ConstantTimeCompare([]byte(req.Secret), []byte(expected)) != 1 {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid email",
		})
	}

	t := h.tokens.Token(email)
	unsubURL := h.config.BaseURL + "/api/unsubscribe?token=" + t
	footerText, footerHTML := token.Footer(unsubURL)

	return c.JSON(http.StatusOK, map[string]string{
		"email":           email,
		"token":           t,
		"unsubscribe_url": unsubURL,
		"footer_text":     footerText,
		"footer_html":     footerHTML,
	})
}

func resultPage(message string, success bool) string {
	title := "Unsubscribed"
	heading := "Unsubscribed"
	accent := "#a78bfa"
	if !success {
		title = "Error"
		heading = "Oops"
		accent = "#f87171"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>%s — Crystal Seed Tarot</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      background: #1a1a2e;
      color: #e0e0e0;
      display: flex;
      justify-content: center;
      align-items: center;
      min-height: 100vh;
      margin: 0;
    }
    .card {
      background: rgba(255, 255, 255, 0.08);
      border-radius: 12px;
      padding: 2rem;
      max-width: 500px;
      text-align: center;
    }
    h1 { color: %s; }
    a { color: #a78bfa; }
  </style>
</head>
<body>
  <div class="card">
    <h1>%s</h1>
    <p>%s</p>
    <p style="margin-top: 1.5rem; font-size: 0.875rem; opacity: 0.6;">
      <a href="https://crystalseedtarot.com">Crystal Seed Tarot</a>
    </p>
  </div>
</body>
</html>`, title, accent, heading, html.EscapeString(message))
}
