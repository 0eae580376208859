package service

import (
	"context"

	"crystalseed-scanner/internal/model"
)

type ScanService interface {
	Scan(ctx context.Context) (*model.ScanSummary, error)
}

type UnsubscribeService interface {
	// UnsubscribeByToken flips the matching contact's status to
	// unsubscribed. Returns false when no row carries the token.
	UnsubscribeByToken(ctx context.Context, token string) (bool, error)
}

type SubscribeService interface {
	Subscribe(ctx context.Context, email, name string) error
}

// GmailClient interface for interacting with the Gmail API
type GmailClient interface {
	ListInboxMessages(ctx context.Context, query string, maxResults int64) ([]*model.InboxMessage, error)
}

// AIClient interface for interacting with the classification model
type AIClient interface {
	ClassifyEmail(ctx context.Context, senderName, senderEmail, subject, snippet string) (*model.Classification, error)
}
