package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"

	"crystalseed-scanner/internal/config"
)

// AuthHandler runs the one-time operator OAuth flow that mints the Gmail
// refresh token the scanner runs on. It is a setup tool, not a login system:
// the callback just displays the refresh token to put in the environment.
type AuthHandler struct {
	config *config.Config
	logger echo.Logger
}

func NewAuthHandler(cfg *config.Config, logger echo.Logger) *AuthHandler {
	gothic.Store = sessions.NewCookieStore([]byte(cfg.SessionSecret))

	provider := google.New(
		cfg.GmailClientID,
		cfg.GmailClientSecret,
		cfg.BaseURL+"/auth/google/callback",
		"https://www.googleapis.com/auth/gmail.readonly",
		"https://www.googleapis.com/auth/spreadsheets",
	)
	// offline + consent forces Google to issue a refresh token
	provider.SetAccessType("offline")
	provider.SetPrompt("consent")
	goth.UseProviders(provider)

	return &AuthHandler{
		config: cfg,
		logger: logger,
	}
}

// BeginAuth starts the Google consent flow
func (h *AuthHandler) BeginAuth(c echo.Context) error {
	req := withProvider(c)
	gothic.BeginAuthHandler(c.Response(), req)
	return nil
}

// Callback completes the flow and shows the refresh token to the operator
func (h *AuthHandler) Callback(c echo.Context) error {
	req := withProvider(c)
	user, err := gothic.CompleteUserAuth(c.Response(), req)
	if err != nil {
		h.logger.Error("Failed to complete auth:", err)
		return c.String(http.StatusInternalServerError, "Authentication failed")
	}

	if user.RefreshToken == "" {
		return c.String(http.StatusOK,
			"Google did not return a refresh token. Revoke the app's access at myaccount.google.com/permissions and try again.")
	}

	return c.String(http.StatusOK, fmt.Sprintf(
		"Authenticated as %s.\n\nSet this in the environment and restart:\n\nGMAIL_REFRESH_TOKEN=%s\n",
		user.Email, user.RefreshToken))
}

// withProvider sets the provider query parameter Goth keys on
func withProvider(c echo.Context) *http.Request {
	req := c.Request()
	q := req.URL.Query()
	q.Set("provider", "google")
	req.URL.RawQuery = q.Encode()
	return req
}
