package gmail

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"crystalseed-scanner/internal/logger"
	"crystalseed-scanner/internal/model"
	"crystalseed-scanner/internal/service"
)

type gmailClient struct {
	svc             *gmail.Service
	snippetMaxChars int
	logger          *logger.Logger
}

// NewGmailClient builds an inbox gateway authenticated with a long-lived
// OAuth2 refresh token; access tokens are minted on demand.
func NewGmailClient(ctx context.Context, clientID, clientSecret, refreshToken string, snippetMaxChars int, logger *logger.Logger) (service.GmailClient, error) {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailReadonlyScope},
	}
	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &gmailClient{
		svc:             svc,
		snippetMaxChars: snippetMaxChars,
		logger:          logger,
	}, nil
}

func (g *gmailClient) ListInboxMessages(ctx context.Context, query string, maxResults int64) ([]*model.InboxMessage, error) {
	user := "me"
	list, err := g.svc.Users.Messages.List(user).Q(query).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	var messages []*model.InboxMessage
	for _, ref := range list.Messages {
		msg, err := g.svc.Users.Messages.Get(user, ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			g.logger.Error("Failed to get message:", ref.Id, err)
			continue
		}
		if msg.Payload == nil {
			continue
		}

		name, email := ExtractSender(msg.Payload.Headers)
		snippet := ExtractSnippet(msg.Payload, g.snippetMaxChars)
		if snippet == "" {
			snippet = msg.Snippet
		}

		messages = append(messages, &model.InboxMessage{
			ID:          ref.Id,
			SenderName:  name,
			SenderEmail: email,
			Subject:     ExtractSubject(msg.Payload.Headers),
			Snippet:     snippet,
		})
	}

	g.logger.Info("Fetched", len(messages), "messages from Gmail for query:", query)
	return messages, nil
}
