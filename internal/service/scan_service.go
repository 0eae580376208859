package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"crystalseed-scanner/internal/logger"
	"crystalseed-scanner/internal/model"
	"crystalseed-scanner/internal/repository"
	"crystalseed-scanner/internal/token"
)

// Senders excluded at the query level. Filtering in the Gmail query itself
// keeps bulk mail away from the classifier, the most expensive step per
// message.
var intakeExcludes = []string{
	"-from:noreply", "-from:no-reply", "-from:notifications",
	"-from:mailer-daemon", "-category:promotions", "-category:social",
	"-category:updates", "-category:forums", "-unsubscribe",
	"-from:txt.voice.google.com",
}

const unsubscribeQuery = "in:inbox {unsubscribe remove opt-out}"

var unsubPattern = regexp.MustCompile(`(?i)\b(unsubscribe|remove me|stop emailing|opt out|take me off|don'?t (want|need) (any ?more|these) emails?|please remove|no longer wish|stop sending)\b`)

var confidenceRank = map[string]int{
	model.ConfidenceLow:    0,
	model.ConfidenceMedium: 1,
	model.ConfidenceHigh:   2,
}

// ScanConfig carries the per-run policy knobs. MinConfidence is the
// acceptance threshold applied on top of the model's own should_add verdict.
type ScanConfig struct {
	IntakeMaxResults int64
	UnsubMaxResults  int64
	MinConfidence    string
	SelfAddresses    []string
}

type scanService struct {
	contactRepo repository.ContactRepository
	gmailClient GmailClient
	aiClient    AIClient
	tokens      *token.Generator
	cfg         ScanConfig
	logger      *logger.Logger
}

func NewScanService(
	contactRepo repository.ContactRepository,
	gmailClient GmailClient,
	aiClient AIClient,
	tokens *token.Generator,
	cfg ScanConfig,
	logger *logger.Logger,
) ScanService {
	return &scanService{
		contactRepo: contactRepo,
		gmailClient: gmailClient,
		aiClient:    aiClient,
		tokens:      tokens,
		cfg:         cfg,
		logger:      logger,
	}
}

// Scan runs one triage pass over the inbox: classify new senders into the
// contact list, then honor unsubscribe requests. Messages are processed
// strictly one at a time; the store's append is not safe under concurrent
// writers and the classifier should be called at a bounded rate.
// Re-running over the same mailbox window is safe: duplicates are skipped
// and unsubscribe updates are no-ops once applied.
func (s *scanService) Scan(ctx context.Context) (*model.ScanSummary, error) {
	summary := model.NewScanSummary()

	contacts, err := s.contactRepo.LoadAll(ctx)
	if err != nil {
		summary.AddLog("Error: " + err.Error())
		return summary, fmt.Errorf("failed to load contacts: %w", err)
	}

	seen := make(map[string]bool, len(contacts))
	for _, c := range contacts {
		if c.Email != "" {
			seen[strings.ToLower(c.Email)] = true
		}
	}
	summary.AddLog(fmt.Sprintf("Existing contacts: %d", len(seen)))

	if err := s.scanIntake(ctx, summary, seen); err != nil {
		summary.AddLog("Error: " + err.Error())
		return summary, err
	}

	if err := s.scanUnsubscribes(ctx, summary, seen, contacts); err != nil {
		summary.AddLog("Error: " + err.Error())
		return summary, err
	}

	summary.AddLog(fmt.Sprintf("Done: +%d added, %d skipped, %d irrelevant, -%d unsubscribed",
		summary.Added, summary.Skipped, summary.Irrelevant, summary.Unsubscribed))
	return summary, nil
}

func (s *scanService) scanIntake(ctx context.Context, summary *model.ScanSummary, seen map[string]bool) error {
	query := "in:inbox " + strings.Join(intakeExcludes, " ")
	messages, err := s.gmailClient.ListInboxMessages(ctx, query, s.cfg.IntakeMaxResults)
	if err != nil {
		return fmt.Errorf("failed to list inbox messages: %w", err)
	}
	summary.AddLog(fmt.Sprintf("Gmail messages found: %d", len(messages)))

	for _, msg := range messages {
		if seen[msg.SenderEmail] {
			summary.Skipped++
			continue
		}

		result, err := s.aiClient.ClassifyEmail(ctx, msg.SenderName, msg.SenderEmail, msg.Subject, msg.Snippet)
		if err != nil {
			// One bad completion never aborts the run; the next
			// scheduled run re-encounters the message anyway.
			s.logger.Error("Failed to classify message:", msg.ID, err)
			continue
		}

		if !s.accepts(result) {
			summary.Irrelevant++
			continue
		}

		contact := model.NewContact(
			msg.SenderEmail,
			msg.SenderName,
			model.SourceGmailScan,
			result.Classification,
			result.Reason,
			s.tokens.Token(msg.SenderEmail),
		)
		if err := s.contactRepo.Append(ctx, contact); err != nil {
			s.logger.Error("Failed to append contact:", contact.Email, err)
			continue
		}

		// catches a second message from the same sender later in this batch
		seen[msg.SenderEmail] = true
		summary.Added++
		summary.AddLog(fmt.Sprintf("+ %s (%s)", contact.Email, contact.Classification))
	}
	return nil
}

func (s *scanService) scanUnsubscribes(ctx context.Context, summary *model.ScanSummary, seen map[string]bool, contacts []*model.Contact) error {
	messages, err := s.gmailClient.ListInboxMessages(ctx, unsubscribeQuery, s.cfg.UnsubMaxResults)
	if err != nil {
		return fmt.Errorf("failed to list unsubscribe candidates: %w", err)
	}

	for _, msg := range messages {
		if s.isSelfAddress(msg.SenderEmail) {
			continue
		}
		if !unsubPattern.MatchString(msg.Subject+" "+msg.Snippet) || !seen[msg.SenderEmail] {
			continue
		}

		// first matching row wins
		for _, c := range contacts {
			if strings.ToLower(c.Email) != msg.SenderEmail || c.Status == model.StatusUnsubscribed {
				continue
			}
			if err := s.contactRepo.SetStatus(ctx, c.Row, model.StatusUnsubscribed); err != nil {
				s.logger.Error("Failed to mark contact unsubscribed:", c.Email, err)
				break
			}
			c.Status = model.StatusUnsubscribed
			summary.Unsubscribed++
			summary.AddLog("- Unsubscribed: " + msg.SenderEmail)
			break
		}
	}
	return nil
}

func (s *scanService) accepts(result *model.Classification) bool {
	return result.ShouldAdd && confidenceRank[result.Confidence] >= confidenceRank[s.cfg.MinConfidence]
}

// isSelfAddress keeps the operator's own mail from triggering
// self-unsubscription. Entries with an @ match the full address; bare
// entries match the local part or domain exactly.
func (s *scanService) isSelfAddress(email string) bool {
	local, domain, hasAt := strings.Cut(email, "@")
	for _, self := range s.cfg.SelfAddresses {
		if strings.Contains(self, "@") {
			if email == self {
				return true
			}
		} else if hasAt && (local == self || domain == self) {
			return true
		}
	}
	return false
}
