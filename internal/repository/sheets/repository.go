package sheets

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"crystalseed-scanner/internal/logger"
	"crystalseed-scanner/internal/model"
	"crystalseed-scanner/internal/repository"
)

// Columns A-H of the sheet, in fixed order:
// Email, Name, Source, Date Added, Classification, Status, Unsubscribe Token, Notes.
// Row 1 is the header and is never written here.
const (
	dataRange       = "Sheet1!A:H"
	statusCellRange = "Sheet1!F%d"
)

type SheetsContactRepository struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	logger        *logger.Logger
}

// NewSheetsContactRepository builds a repository over the Google Sheets API
// using a base64-encoded service account key.
func NewSheetsContactRepository(ctx context.Context, spreadsheetID, serviceAccountKeyB64 string, logger *logger.Logger) (*SheetsContactRepository, error) {
	key, err := base64.StdEncoding.DecodeString(serviceAccountKeyB64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode service account key: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON(key),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &SheetsContactRepository{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

func (r *SheetsContactRepository) LoadAll(ctx context.Context) ([]*model.Contact, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, dataRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}

	var contacts []*model.Contact
	for i, row := range resp.Values {
		if i == 0 {
			continue // header row
		}
		contacts = append(contacts, &model.Contact{
			Email:            cell(row, 0),
			Name:             cell(row, 1),
			Source:           cell(row, 2),
			AddedAt:          cell(row, 3),
			Classification:   cell(row, 4),
			Status:           cell(row, 5),
			UnsubscribeToken: cell(row, 6),
			Reason:           cell(row, 7),
			Row:              i + 1, // 1-based sheet row
		})
	}
	return contacts, nil
}

func (r *SheetsContactRepository) Append(ctx context.Context, contact *model.Contact) error {
	values := &sheetsapi.ValueRange{
		Values: [][]interface{}{{
			contact.Email,
			contact.Name,
			contact.Source,
			contact.AddedAt,
			contact.Classification,
			contact.Status,
			contact.UnsubscribeToken,
			contact.Reason,
		}},
	}

	_, err := r.svc.Spreadsheets.Values.Append(r.spreadsheetID, dataRange, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append contact row: %w", err)
	}
	return nil
}

func (r *SheetsContactRepository) SetStatus(ctx context.Context, row int, status string) error {
	values := &sheetsapi.ValueRange{
		Values: [][]interface{}{{status}},
	}

	_, err := r.svc.Spreadsheets.Values.Update(r.spreadsheetID, fmt.Sprintf(statusCellRange, row), values).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update status cell: %w", err)
	}
	return nil
}

// cell reads column i of a values row, tolerating short rows and non-string
// cells the API may return.
func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return fmt.Sprint(row[i])
}
