package repository

import (
	"context"
	"errors"

	"crystalseed-scanner/internal/model"
)

// ErrStoreUnavailable wraps transport failures talking to the contact store.
// A scan run aborts when it sees this; everything else is per-row.
var ErrStoreUnavailable = errors.New("contact store unavailable")

// ContactRepository defines the interface for the contact list store.
// The store is append-only: rows are never reordered or deleted, and the
// only mutation besides Append is flipping a row's status.
type ContactRepository interface {
	// LoadAll returns all contact rows in insertion order. Each contact
	// carries the backend row handle to pass back to SetStatus.
	LoadAll(ctx context.Context) ([]*model.Contact, error)
	// Append adds one row at the end. The row either fully appears or
	// not at all.
	Append(ctx context.Context, contact *model.Contact) error
	// SetStatus updates the status cell of exactly one row.
	SetStatus(ctx context.Context, row int, status string) error
}
