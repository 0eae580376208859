package gmail

import (
	"context"

	"crystalseed-scanner/internal/model"
)

// MockGmailClient is a mock implementation of service.GmailClient for testing
type MockGmailClient struct {
	ListInboxMessagesFunc func(ctx context.Context, query string, maxResults int64) ([]*model.InboxMessage, error)
}

func NewMockGmailClient() *MockGmailClient {
	return &MockGmailClient{}
}

func (m *MockGmailClient) ListInboxMessages(ctx context.Context, query string, maxResults int64) ([]*model.InboxMessage, error) {
	if m.ListInboxMessagesFunc != nil {
		return m.ListInboxMessagesFunc(ctx, query, maxResults)
	}

	// Default mock behavior: empty inbox
	return []*model.InboxMessage{}, nil
}
