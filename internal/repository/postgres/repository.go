package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"crystalseed-scanner/internal/model"
	"crystalseed-scanner/internal/repository"
)

// PostgresContactRepository backs the contact list with a table instead of a
// sheet, preserving the same append-only, single-status-mutation contract.
// row_num plays the role of the sheet row handle.
type PostgresContactRepository struct {
	db *sql.DB
}

func NewPostgresContactRepository(db *sql.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

func InitializeSchema(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS contacts (
			row_num SERIAL PRIMARY KEY,
			email TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			added_at TEXT NOT NULL,
			classification TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			unsubscribe_token TEXT NOT NULL DEFAULT '',
			reason TEXT NOT NULL DEFAULT ''
		)`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create contacts table: %w", err)
	}
	return nil
}

func (r *PostgresContactRepository) LoadAll(ctx context.Context) ([]*model.Contact, error) {
	query := `
		SELECT row_num, email, name, source, added_at, classification, status, unsubscribe_token, reason
		FROM contacts ORDER BY row_num`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var contacts []*model.Contact
	for rows.Next() {
		c := &model.Contact{}
		err := rows.Scan(
			&c.Row, &c.Email, &c.Name, &c.Source, &c.AddedAt,
			&c.Classification, &c.Status, &c.UnsubscribeToken, &c.Reason)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return contacts, nil
}

func (r *PostgresContactRepository) Append(ctx context.Context, contact *model.Contact) error {
	query := `
		INSERT INTO contacts (email, name, source, added_at, classification, status, unsubscribe_token, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		contact.Email, contact.Name, contact.Source, contact.AddedAt,
		contact.Classification, contact.Status, contact.UnsubscribeToken, contact.Reason)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

func (r *PostgresContactRepository) SetStatus(ctx context.Context, row int, status string) error {
	query := `UPDATE contacts SET status = $1 WHERE row_num = $2`
	result, err := r.db.ExecContext(ctx, query, status, row)
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("contact row %d not found", row)
	}
	return nil
}
