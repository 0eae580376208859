package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"crystalseed-scanner/internal/logger"
	"crystalseed-scanner/internal/model"
	"crystalseed-scanner/internal/repository"
	"crystalseed-scanner/internal/token"
)

var ErrInvalidEmail = errors.New("invalid email address")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type subscribeService struct {
	contactRepo repository.ContactRepository
	tokens      *token.Generator
	logger      *logger.Logger
}

func NewSubscribeService(contactRepo repository.ContactRepository, tokens *token.Generator, logger *logger.Logger) SubscribeService {
	return &subscribeService{
		contactRepo: contactRepo,
		tokens:      tokens,
		logger:      logger,
	}
}

// Subscribe adds a website-form signup to the contact list. A duplicate
// email is a silent success, matching the form's never-break contract.
func (s *subscribeService) Subscribe(ctx context.Context, email, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}

	contacts, err := s.contactRepo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}
	for _, c := range contacts {
		if strings.ToLower(c.Email) == email {
			return nil
		}
	}

	contact := model.NewContact(
		email,
		strings.TrimSpace(name),
		model.SourceWebsiteForm,
		model.ClassificationGeneralInterest,
		"Submitted via contact form",
		s.tokens.Token(email),
	)
	if err := s.contactRepo.Append(ctx, contact); err != nil {
		return fmt.Errorf("failed to append contact: %w", err)
	}

	s.logger.Info("Added website form contact:", email)
	return nil
}
