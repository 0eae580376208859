package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crystalseed-scanner/internal/model"
	"crystalseed-scanner/internal/repository/memory"
)

func TestAppendAssignsSequentialRows(t *testing.T) {
	repo := memory.NewInMemoryContactRepository()
	ctx := context.Background()

	first := model.NewContact("a@x.com", "A", model.SourceGmailScan, "booking_inquiry", "", "tok-a")
	second := model.NewContact("b@x.com", "B", model.SourceWebsiteForm, model.ClassificationGeneralInterest, "", "tok-b")
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	contacts, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	// row 1 is the header in the backing sheet, data starts at 2
	assert.Equal(t, 2, contacts[0].Row)
	assert.Equal(t, 3, contacts[1].Row)
}

func TestSetStatusByRow(t *testing.T) {
	repo := memory.NewInMemoryContactRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, model.NewContact("a@x.com", "", model.SourceGmailScan, "booking_inquiry", "", "tok-a")))
	require.NoError(t, repo.Append(ctx, model.NewContact("b@x.com", "", model.SourceGmailScan, "booking_inquiry", "", "tok-b")))

	contacts, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.SetStatus(ctx, contacts[1].Row, model.StatusUnsubscribed))

	contacts, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, contacts[0].Status)
	assert.Equal(t, model.StatusUnsubscribed, contacts[1].Status)
}

func TestSetStatusUnknownRow(t *testing.T) {
	repo := memory.NewInMemoryContactRepository()

	err := repo.SetStatus(context.Background(), 99, model.StatusUnsubscribed)
	assert.Error(t, err)
}

func TestLoadAllReturnsCopies(t *testing.T) {
	repo := memory.NewInMemoryContactRepository()
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, model.NewContact("a@x.com", "", model.SourceGmailScan, "booking_inquiry", "", "tok-a")))

	contacts, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	contacts[0].Status = "mutated"

	again, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, again[0].Status)
}
