package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crystalseed-scanner/internal/logger"
	"crystalseed-scanner/internal/model"
)

func TestParseClassificationPlainJSON(t *testing.T) {
	result, err := ParseClassification(`{"should_add": true, "classification": "quote_request", "confidence": "high", "reason": "asking for a quote"}`)

	require.NoError(t, err)
	assert.True(t, result.ShouldAdd)
	assert.Equal(t, "quote_request", result.Classification)
	assert.Equal(t, model.ConfidenceHigh, result.Confidence)
	assert.Equal(t, "asking for a quote", result.Reason)
}

func TestParseClassificationFencedJSON(t *testing.T) {
	text := "```json\n{\"should_add\": false, \"classification\": \"not_relevant\", \"confidence\": \"medium\", \"reason\": \"newsletter\"}\n```"

	result, err := ParseClassification(text)

	require.NoError(t, err)
	assert.False(t, result.ShouldAdd)
	assert.Equal(t, "not_relevant", result.Classification)
}

func TestParseClassificationGarbage(t *testing.T) {
	_, err := ParseClassification("I think this sender looks interesting!")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Raw, "interesting")
}

func TestParseClassificationUnknownConfidence(t *testing.T) {
	_, err := ParseClassification(`{"should_add": true, "classification": "quote_request", "confidence": "very high", "reason": "x"}`)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseClassificationMissingClassification(t *testing.T) {
	_, err := ParseClassification(`{"should_add": true, "confidence": "high", "reason": "x"}`)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestClassifyEmailAnthropic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": [{"type": "text", "text": "{\"should_add\": true, \"classification\": \"booking_inquiry\", \"confidence\": \"high\", \"reason\": \"wants a party booking\"}"}]}`))
	}))
	defer server.Close()

	client := &aiClient{
		provider:   ProviderAnthropic,
		apiKey:     "test-key",
		baseURL:    server.URL,
		httpClient: server.Client(),
		logger:     logger.New(),
	}

	result, err := client.ClassifyEmail(context.Background(), "Jane", "jane@x.com", "Party booking", "Can you read at my party?")

	require.NoError(t, err)
	assert.True(t, result.ShouldAdd)
	assert.Equal(t, "booking_inquiry", result.Classification)
}

func TestClassifyEmailUnparseableCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": [{"type": "text", "text": "Sure! Here is my analysis..."}]}`))
	}))
	defer server.Close()

	client := &aiClient{
		provider:   ProviderAnthropic,
		apiKey:     "test-key",
		baseURL:    server.URL,
		httpClient: server.Client(),
		logger:     logger.New(),
	}

	_, err := client.ClassifyEmail(context.Background(), "Jane", "jane@x.com", "Hi", "hello")

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestClassifyEmailTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := &aiClient{
		provider:   ProviderAnthropic,
		apiKey:     "test-key",
		baseURL:    server.URL,
		httpClient: server.Client(),
		logger:     logger.New(),
	}

	_, err := client.ClassifyEmail(context.Background(), "Jane", "jane@x.com", "Hi", "hello")

	require.Error(t, err)
	var parseErr *ParseError
	assert.False(t, errors.As(err, &parseErr))
}

func TestClassifyEmailOpenAIStyle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "{\"should_add\": false, \"classification\": \"not_relevant\", \"confidence\": \"high\", \"reason\": \"automated notification\"}"}}]}`))
	}))
	defer server.Close()

	client := &aiClient{
		provider:   ProviderOpenAI,
		apiKey:     "test-key",
		baseURL:    server.URL,
		httpClient: server.Client(),
		logger:     logger.New(),
	}

	result, err := client.ClassifyEmail(context.Background(), "", "noreply@saas.com", "Your invoice", "Invoice attached")

	require.NoError(t, err)
	assert.False(t, result.ShouldAdd)
}
