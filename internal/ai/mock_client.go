package ai

import (
	"context"

	"crystalseed-scanner/internal/model"
)

// MockAIClient is a mock implementation of service.AIClient for testing
type MockAIClient struct {
	ClassifyEmailFunc func(ctx context.Context, senderName, senderEmail, subject, snippet string) (*model.Classification, error)
}

func NewMockAIClient() *MockAIClient {
	return &MockAIClient{}
}

func (m *MockAIClient) ClassifyEmail(ctx context.Context, senderName, senderEmail, subject, snippet string) (*model.Classification, error) {
	if m.ClassifyEmailFunc != nil {
		return m.ClassifyEmailFunc(ctx, senderName, senderEmail, subject, snippet)
	}

	// Default mock behavior: confident general interest
	return &model.Classification{
		ShouldAdd:      true,
		Classification: model.ClassificationGeneralInterest,
		Confidence:     model.ConfidenceHigh,
		Reason:         "mock classification",
	}, nil
}
