package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crystalseed-scanner/internal/config"
	"crystalseed-scanner/internal/handler"
	"crystalseed-scanner/internal/logger"
	"crystalseed-scanner/internal/model"
	"crystalseed-scanner/internal/repository"
	"crystalseed-scanner/internal/repository/memory"
	"crystalseed-scanner/internal/service"
	"crystalseed-scanner/internal/token"
)

func seedContact(t *testing.T, repo *memory.InMemoryContactRepository, tokens *token.Generator, email, status string) *model.Contact {
	t.Helper()
	contact := model.NewContact(email, "", model.SourceGmailScan, model.ClassificationGeneralInterest, "seeded", tokens.Token(email))
	contact.Status = status
	require.NoError(t, repo.Append(context.Background(), contact))
	return contact
}

func newUnsubscribeFixture(t *testing.T) (*echo.Echo, *memory.InMemoryContactRepository, *token.Generator, *handler.UnsubscribeHandler) {
	t.Helper()
	e := echo.New()
	contactRepo := memory.NewInMemoryContactRepository()
	tokens := token.NewGenerator("test-secret")
	svc := service.NewUnsubscribeService(contactRepo, logger.New())
	cfg := &config.Config{BaseURL: "http://localhost:8080", UnsubscribeSecret: "footer-secret"}
	return e, contactRepo, tokens, handler.NewUnsubscribeHandler(svc, tokens, cfg, e.Logger)
}

func TestUnsubscribeMalformedToken(t *testing.T) {
	e, _, _, h := newUnsubscribeFixture(t)

	for _, tok := range []string{"", "short", strings.Repeat("g", 64), strings.Repeat("a", 63)} {
		req := httptest.NewRequest(http.MethodGet, "/api/unsubscribe?token="+tok, nil)
		rec := httptest.NewRecorder()

		err := h.Unsubscribe(e.NewContext(req, rec))

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tok)
		assert.Contains(t, rec.Body.String(), "Invalid unsubscribe link")
	}
}

func TestUnsubscribeSuccess(t *testing.T) {
	e, contactRepo, tokens, h := newUnsubscribeFixture(t)
	seedContact(t, contactRepo, tokens, "jane@x.com", model.StatusActive)

	req := httptest.NewRequest(http.MethodGet, "/api/unsubscribe?token="+tokens.Token("jane@x.com"), nil)
	rec := httptest.NewRecorder()

	err := h.Unsubscribe(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "successfully unsubscribed")

	contacts, _ := contactRepo.LoadAll(context.Background())
	assert.Equal(t, model.StatusUnsubscribed, contacts[0].Status)
}

func TestUnsubscribeUnknownToken(t *testing.T) {
	e, _, _, h := newUnsubscribeFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/unsubscribe?token="+strings.Repeat("a", 64), nil)
	rec := httptest.NewRecorder()

	err := h.Unsubscribe(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not valid")
}

// failingContactRepository simulates an unreachable store.
type failingContactRepository struct{}

func (failingContactRepository) LoadAll(ctx context.Context) ([]*model.Contact, error) {
	return nil, fmt.Errorf("%w: connection refused", repository.ErrStoreUnavailable)
}

func (failingContactRepository) Append(ctx context.Context, contact *model.Contact) error {
	return repository.ErrStoreUnavailable
}

func (failingContactRepository) SetStatus(ctx context.Context, row int, status string) error {
	return repository.ErrStoreUnavailable
}

func TestUnsubscribeStoreError(t *testing.T) {
	e := echo.New()
	tokens := token.NewGenerator("test-secret")
	svc := service.NewUnsubscribeService(failingContactRepository{}, logger.New())
	h := handler.NewUnsubscribeHandler(svc, tokens, &config.Config{}, e.Logger)

	req := httptest.NewRequest(http.MethodGet, "/api/unsubscribe?token="+strings.Repeat("a", 64), nil)
	rec := httptest.NewRecorder()

	err := h.Unsubscribe(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "crystalseedtarot@gmail.com")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestGenerateFooterWrongSecret(t *testing.T) {
	e, _, _, h := newUnsubscribeFixture(t)

	body := `{"email": "jane@x.com", "secret": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-footer", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.GenerateFooter(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerateFooterSuccess(t *testing.T) {
	e, _, tokens, h := newUnsubscribeFixture(t)

	body := `{"email": "Jane@X.com", "secret": "footer-secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-footer", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.GenerateFooter(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jane@x.com", resp["email"])
	assert.Equal(t, tokens.Token("jane@x.com"), resp["token"])
	assert.Contains(t, resp["unsubscribe_url"], "/api/unsubscribe?token="+resp["token"])
	assert.Contains(t, resp["footer_text"], resp["unsubscribe_url"])
	assert.Contains(t, resp["footer_html"], resp["unsubscribe_url"])
}

func TestGenerateFooterInvalidEmail(t *testing.T) {
	e, _, _, h := newUnsubscribeFixture(t)

	body := `{"email": "not-an-email", "secret": "footer-secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-footer", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.GenerateFooter(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
