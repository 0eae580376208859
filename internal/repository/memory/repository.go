package memory

import (
	"context"
	"errors"
	"sync"

	"crystalseed-scanner/internal/model"
)

// InMemoryContactRepository keeps the contact list in a slice, preserving
// insertion order. Row handles start at 2 to mirror the sheet layout where
// row 1 is the header.
type InMemoryContactRepository struct {
	contacts []*model.Contact
	mutex    sync.RWMutex
}

func NewInMemoryContactRepository() *InMemoryContactRepository {
	return &InMemoryContactRepository{}
}

func (r *InMemoryContactRepository) LoadAll(ctx context.Context) ([]*model.Contact, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*model.Contact, len(r.contacts))
	for i, c := range r.contacts {
		copied := *c
		result[i] = &copied
	}
	return result, nil
}

func (r *InMemoryContactRepository) Append(ctx context.Context, contact *model.Contact) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	copied := *contact
	copied.Row = len(r.contacts) + 2
	r.contacts = append(r.contacts, &copied)
	return nil
}

func (r *InMemoryContactRepository) SetStatus(ctx context.Context, row int, status string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, c := range r.contacts {
		if c.Row == row {
			c.Status = status
			return nil
		}
	}
	return errors.New("contact row not found")
}
