package recordapplication

import (
	"context"
	stderrors "errors"
	"testing"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/models"
	"schemesathi/internal/schemes/catalog"
	"schemesathi/internal/store/application"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Execute_RecordsWithCatalogName(t *testing.T) {
	store := application.NewMemoryStore()
	h := NewHandler(LoadConfig(), catalog.Default(), store, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{UserID: "u-1", SchemeID: "rythu-bharosa"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ApplicationID)
	assert.Equal(t, models.StatusSubmitted, out.ApplicationStatus)
	assert.Equal(t, "Rythu Bharosa Scheme", out.Application.SchemeName)

	apps, err := store.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, out.ApplicationID, apps[0].ApplicationID)

	_, err = h.Execute(context.Background(), &Input{UserID: "u-1", SchemeID: "rythu-bharosa"})
	assert.Equal(t, errors.ErrCodeDuplicateApplication, errors.CodeOf(err))
}

func TestHandler_Execute_Draft(t *testing.T) {
	h := NewHandler(LoadConfig(), catalog.Default(), application.NewMemoryStore(), logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{UserID: "u-1", SchemeID: "ysr-cheyutha", Status: models.StatusDraft})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, out.ApplicationStatus)
}

func TestHandler_Execute_Rejections(t *testing.T) {
	h := NewHandler(LoadConfig(), catalog.Default(), application.NewMemoryStore(), logger.NewTestLogger(t))

	tests := []struct {
		name  string
		input Input
		want  errors.ErrorCode
	}{
		{name: "no user", input: Input{SchemeID: "rythu-bharosa"}, want: errors.ErrCodeNotAuthenticated},
		{name: "no scheme", input: Input{UserID: "u-1"}, want: errors.ErrCodeValidationFailed},
		{name: "unknown scheme", input: Input{UserID: "u-1", SchemeID: "moon-base"}, want: errors.ErrCodeSchemeNotFound},
		{name: "cannot start approved", input: Input{UserID: "u-1", SchemeID: "rythu-bharosa", Status: models.StatusApproved}, want: errors.ErrCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), &tt.input)
			assert.Equal(t, tt.want, errors.CodeOf(err))
		})
	}
}

func TestHandler_Execute_DatabaseFailureIsRetryable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).WillReturnError(stderrors.New("connection reset"))

	log := logger.NewTestLogger(t)
	h := NewHandler(LoadConfig(), catalog.Default(), application.NewPostgresStore(db, log), log)

	_, err = h.Execute(context.Background(), &Input{UserID: "u-1", SchemeID: "rythu-bharosa"})
	std := errors.AsStandardError(err)
	require.NotNil(t, std)
	assert.Equal(t, errors.ErrCodeDatabaseQueryFailed, std.Code)
	assert.True(t, std.Retryable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
