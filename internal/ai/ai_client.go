package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"crystalseed-scanner/internal/logger"
	"crystalseed-scanner/internal/model"
	"crystalseed-scanner/internal/service"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

const systemPrompt = `You are an email classifier for Crystal Seed Tarot, a tarot reading business run by Holly Nicole in Oregon. Services: tarot readings (in-person/virtual), event bookings (corporate, parties, festivals), teaching/workshops, spiritual guidance.

ADD contacts who are: requesting readings/quotes, inquiring about events, interested in lessons, vendors/partners, genuinely interested.
DON'T add: spam, automated notifications, newsletters from other businesses, personal emails from friends/family, customer support.

Valid classifications: quote_request, booking_inquiry, event_inquiry, tarot_student, general_interest, vendor_partner, not_relevant

Respond ONLY with valid JSON.`

const snippetPromptLimit = 500

// ParseError reports a completion that was not the strict JSON shape the
// prompt asks for. Callers treat it as a per-message failure, not a run
// failure.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable classification response: %q", e.Raw)
}

type aiClient struct {
	provider   string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewAIClient(provider, apiKey string, logger *logger.Logger) service.AIClient {
	return &aiClient{
		provider:   provider,
		apiKey:     apiKey,
		baseURL:    getBaseURL(provider),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func getBaseURL(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "https://api.openai.com/v1"
	default:
		return "https://api.anthropic.com" // Anthropic messages API
	}
}

func getModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return "claude-haiku-4-5-20251001"
	}
}

func (a *aiClient) ClassifyEmail(ctx context.Context, senderName, senderEmail, subject, snippet string) (*model.Classification, error) {
	prompt := buildUserPrompt(senderName, senderEmail, subject, snippet)

	var text string
	var err error
	switch a.provider {
	case ProviderOpenAI:
		text, err = a.completeWithOpenAI(ctx, prompt)
	default:
		text, err = a.completeWithAnthropic(ctx, prompt)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to classify email: %w", err)
	}

	result, err := ParseClassification(text)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Classified email from", senderEmail, "as:", result.Classification)
	return result, nil
}

func buildUserPrompt(senderName, senderEmail, subject, snippet string) string {
	if runes := []rune(snippet); len(runes) > snippetPromptLimit {
		snippet = string(runes[:snippetPromptLimit])
	}
	return fmt.Sprintf("Analyze this email:\n\nFrom: %s <%s>\nSubject: %s\nBody preview:\n%s\n\nRespond with JSON:\n{\"should_add\": true/false, \"classification\": \"<category>\", \"confidence\": \"high\"|\"medium\"|\"low\", \"reason\": \"<brief explanation>\"}",
		senderName, senderEmail, subject, snippet)
}

// ParseClassification strips an optional fenced code block wrapper and
// decodes the strict-JSON verdict. Anything else is a *ParseError.
func ParseClassification(text string) (*model.Classification, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		if _, rest, ok := strings.Cut(cleaned, "\n"); ok {
			cleaned = rest
		}
		cleaned = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(cleaned), "```"))
	}

	var result model.Classification
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &ParseError{Raw: text}
	}
	switch result.Confidence {
	case model.ConfidenceHigh, model.ConfidenceMedium, model.ConfidenceLow:
	default:
		return nil, &ParseError{Raw: text}
	}
	if result.Classification == "" {
		return nil, &ParseError{Raw: text}
	}
	return &result, nil
}

// Anthropic messages API request/response structures
type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContentBlock `json:"content"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (a *aiClient) completeWithAnthropic(ctx context.Context, prompt string) (string, error) {
	request := anthropicRequest{
		Model:     getModel(a.provider),
		MaxTokens: 256,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/v1/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("no content blocks returned")
	}
	return parsed.Content[0].Text, nil
}

// OpenAI chat completions request/response structures
type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

func (a *aiClient) completeWithOpenAI(ctx context.Context, prompt string) (string, error) {
	request := chatCompletionRequest{
		Model: getModel(a.provider),
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 256,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return parsed.Choices[0].Message.Content, nil
}
