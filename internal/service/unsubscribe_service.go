package service

import (
	"context"
	"fmt"

	"crystalseed-scanner/internal/logger"
	"crystalseed-scanner/internal/model"
	"crystalseed-scanner/internal/repository"
)

type unsubscribeService struct {
	contactRepo repository.ContactRepository
	logger      *logger.Logger
}

func NewUnsubscribeService(contactRepo repository.ContactRepository, logger *logger.Logger) UnsubscribeService {
	return &unsubscribeService{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

func (s *unsubscribeService) UnsubscribeByToken(ctx context.Context, token string) (bool, error) {
	contacts, err := s.contactRepo.LoadAll(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load contacts: %w", err)
	}

	for _, c := range contacts {
		if c.UnsubscribeToken != token {
			continue
		}
		if c.Status == model.StatusUnsubscribed {
			// already done; the link stays valid
			return true, nil
		}
		if err := s.contactRepo.SetStatus(ctx, c.Row, model.StatusUnsubscribed); err != nil {
			return false, fmt.Errorf("failed to update contact status: %w", err)
		}
		s.logger.Info("Unsubscribed contact via token:", c.Email)
		return true, nil
	}

	return false, nil
}
