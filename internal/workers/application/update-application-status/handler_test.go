package updateapplicationstatus

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/models"
	"schemesathi/internal/store/application"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishMessage(ctx context.Context, name, correlationKey string, variables interface{}) error {
	return m.Called(name, correlationKey, variables).Error(0)
}

func seed(t *testing.T, store *application.MemoryStore, status models.ApplicationStatus) string {
	t.Helper()
	app, err := store.Create(context.Background(), models.Application{
		UserID: "u-1", SchemeID: "rythu-bharosa", SchemeName: "Rythu Bharosa Scheme", Status: status,
	})
	require.NoError(t, err)
	return app.ApplicationID
}

func TestHandler_Execute_TransitionsAndPublishes(t *testing.T) {
	store := application.NewMemoryStore()
	id := seed(t, store, models.StatusSubmitted)

	pub := &mockPublisher{}
	pub.On("PublishMessage", "application-status-changed", id, mock.MatchedBy(func(v interface{}) bool {
		msg, ok := v.(statusChangedMessage)
		return ok && msg.PreviousStatus == models.StatusSubmitted && msg.Status == models.StatusUnderReview
	})).Return(nil)

	h := NewHandler(LoadConfig(), store, pub, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{ApplicationID: id, UserID: "u-1", Status: models.StatusUnderReview})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, out.PreviousStatus)
	assert.Equal(t, models.StatusUnderReview, out.Status)
	assert.False(t, out.Terminal)
	assert.True(t, out.MessageSent)
	pub.AssertExpectations(t)
}

func TestHandler_Execute_PublishFailureIsNotFatal(t *testing.T) {
	store := application.NewMemoryStore()
	id := seed(t, store, models.StatusSubmitted)

	pub := &mockPublisher{}
	pub.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(stderrors.New("gateway unavailable"))

	h := NewHandler(LoadConfig(), store, pub, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{ApplicationID: id, Status: models.StatusWithdrawn})
	require.NoError(t, err)
	assert.True(t, out.Terminal)
	assert.False(t, out.MessageSent)

	app, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWithdrawn, app.Status)
}

func TestHandler_Execute_Rejections(t *testing.T) {
	store := application.NewMemoryStore()
	id := seed(t, store, models.StatusSubmitted)
	h := NewHandler(LoadConfig(), store, nil, logger.NewTestLogger(t))

	tests := []struct {
		name  string
		input Input
		want  errors.ErrorCode
	}{
		{name: "skips review", input: Input{ApplicationID: id, Status: models.StatusApproved}, want: errors.ErrCodeInvalidStatusTransition},
		{name: "unknown status", input: Input{ApplicationID: id, Status: "Lost"}, want: errors.ErrCodeValidationFailed},
		{name: "missing status", input: Input{ApplicationID: id}, want: errors.ErrCodeValidationFailed},
		{name: "missing id", input: Input{Status: models.StatusUnderReview}, want: errors.ErrCodeValidationFailed},
		{name: "other owner", input: Input{ApplicationID: id, UserID: "u-2", Status: models.StatusUnderReview}, want: errors.ErrCodeApplicationNotFound},
		{name: "unknown application", input: Input{ApplicationID: "nope", Status: models.StatusUnderReview}, want: errors.ErrCodeApplicationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), &tt.input)
			assert.Equal(t, tt.want, errors.CodeOf(err))
		})
	}
}

func TestHandler_Execute_ConcurrentChangeLoses(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	sqlMock.ExpectQuery(`FROM applications WHERE id = \$1`).
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "scheme_id", "scheme_name", "application_date", "status", "last_status_update"}).
			AddRow("a-1", "u-1", "rythu-bharosa", "Rythu Bharosa Scheme", ts, "Under-Review", ts))
	sqlMock.ExpectExec(`UPDATE applications SET status`).
		WithArgs("Approved", sqlmock.AnyArg(), "a-1", "Under-Review").
		WillReturnResult(sqlmock.NewResult(0, 0))

	log := logger.NewTestLogger(t)
	h := NewHandler(LoadConfig(), application.NewPostgresStore(db, log), nil, log)

	_, err = h.Execute(context.Background(), &Input{ApplicationID: "a-1", Status: models.StatusApproved})
	assert.Equal(t, errors.ErrCodeInvalidStatusTransition, errors.CodeOf(err))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
