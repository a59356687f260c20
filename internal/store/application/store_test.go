package application

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewPostgresStore(db, logger.NewTestLogger(t))
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

var appColumns = []string{"id", "user_id", "scheme_id", "scheme_name", "application_date", "status", "last_status_update"}

func TestCreate_Success(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("u-1", "rythu-bharosa").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs(sqlmock.AnyArg(), "u-1", "rythu-bharosa", "Rythu Bharosa Scheme", fixedNow, "Submitted", fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs("application_created", "application", sqlmock.AnyArg(), sqlmock.AnyArg(), fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	app, err := s.Create(context.Background(), models.Application{
		UserID: "u-1", SchemeID: "rythu-bharosa", SchemeName: "Rythu Bharosa Scheme",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, app.ApplicationID)
	assert.Equal(t, models.StatusSubmitted, app.Status)
	assert.Equal(t, "2025-03-14T10:00:00Z", app.ApplicationDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_AuditFailureIsNotFatal(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO applications`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).WillReturnError(stderrors.New("audit table missing"))

	_, err := s.Create(context.Background(), models.Application{UserID: "u-1", SchemeID: "ysr-cheyutha", SchemeName: "YSR Cheyutha Scheme"})
	assert.NoError(t, err)
}

func TestCreate_Duplicate(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("u-1", "rythu-bharosa").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := s.Create(context.Background(), models.Application{UserID: "u-1", SchemeID: "rythu-bharosa", SchemeName: "Rythu Bharosa Scheme"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeDuplicateApplication))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ConcurrentDuplicateInsert(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("u-1", "rythu-bharosa").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := s.Create(context.Background(), models.Application{UserID: "u-1", SchemeID: "rythu-bharosa", SchemeName: "Rythu Bharosa Scheme"})
	require.Error(t, err)

	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeDuplicateApplication, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InsertFailureIsRetryable(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO applications`).WillReturnError(stderrors.New("connection reset"))

	_, err := s.Create(context.Background(), models.Application{UserID: "u-1", SchemeID: "rythu-bharosa", SchemeName: "Rythu Bharosa Scheme"})
	assert.Equal(t, errors.ErrCodeDatabaseWriteFailed, errors.CodeOf(err))
}

func TestCreate_RejectsBadInput(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Create(context.Background(), models.Application{UserID: "u-1", SchemeID: "x", Status: "Pending"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidationFailed))
}

func TestListByUser(t *testing.T) {
	s, mock := newTestStore(t)
	earlier := fixedNow.Add(-48 * time.Hour)

	mock.ExpectQuery(`SELECT id, user_id, scheme_id, scheme_name, application_date, status, last_status_update FROM applications WHERE user_id = \$1 ORDER BY application_date DESC`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(appColumns).
			AddRow("a-2", "u-1", "ntr-bharosa-pension", "NTR Bharosa Pension Scheme", fixedNow, "Under-Review", fixedNow).
			AddRow("a-1", "u-1", "indiramma-housing", "INDIRAMMA Housing Scheme", earlier, "Approved", fixedNow))

	apps, err := s.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "a-2", apps[0].ApplicationID)
	assert.Equal(t, models.StatusUnderReview, apps[0].Status)
	assert.Equal(t, "2025-03-12T10:00:00Z", apps[1].ApplicationDate)
}

func TestUpdateStatus(t *testing.T) {
	t.Run("allowed transition", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`FROM applications WHERE id = \$1`).
			WithArgs("a-1").
			WillReturnRows(sqlmock.NewRows(appColumns).
				AddRow("a-1", "u-1", "rythu-bharosa", "Rythu Bharosa Scheme", fixedNow, "Submitted", fixedNow))
		mock.ExpectExec(`UPDATE applications SET status`).
			WithArgs("Under-Review", fixedNow, "a-1", "Submitted").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO audit_log`).WillReturnResult(sqlmock.NewResult(1, 1))

		app, prev, err := s.UpdateStatus(context.Background(), "a-1", "u-1", models.StatusUnderReview)
		require.NoError(t, err)
		assert.Equal(t, models.StatusSubmitted, prev)
		assert.Equal(t, models.StatusUnderReview, app.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("terminal status", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`FROM applications WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(appColumns).
				AddRow("a-1", "u-1", "rythu-bharosa", "Rythu Bharosa Scheme", fixedNow, "Approved", fixedNow))

		_, _, err := s.UpdateStatus(context.Background(), "a-1", "u-1", models.StatusSubmitted)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidStatusTransition))
	})

	t.Run("concurrent change", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`FROM applications WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(appColumns).
				AddRow("a-1", "u-1", "rythu-bharosa", "Rythu Bharosa Scheme", fixedNow, "Submitted", fixedNow))
		mock.ExpectExec(`UPDATE applications SET status`).WillReturnResult(sqlmock.NewResult(0, 0))

		_, _, err := s.UpdateStatus(context.Background(), "a-1", "u-1", models.StatusWithdrawn)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidStatusTransition))
	})

	t.Run("other user", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`FROM applications WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(appColumns).
				AddRow("a-1", "u-1", "rythu-bharosa", "Rythu Bharosa Scheme", fixedNow, "Submitted", fixedNow))

		_, _, err := s.UpdateStatus(context.Background(), "a-1", "u-2", models.StatusWithdrawn)
		assert.True(t, errors.HasCode(err, errors.ErrCodeApplicationNotFound))
	})

	t.Run("missing", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(`FROM applications WHERE id = \$1`).WillReturnRows(sqlmock.NewRows(appColumns))

		_, _, err := s.UpdateStatus(context.Background(), "nope", "", models.StatusWithdrawn)
		assert.True(t, errors.HasCode(err, errors.ErrCodeApplicationNotFound))
	})
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	app, err := m.Create(ctx, models.Application{UserID: "u-1", SchemeID: "ysr-cheyutha", SchemeName: "YSR Cheyutha Scheme"})
	require.NoError(t, err)

	_, err = m.Create(ctx, models.Application{UserID: "u-1", SchemeID: "ysr-cheyutha"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeDuplicateApplication))

	updated, prev, err := m.UpdateStatus(ctx, app.ApplicationID, "u-1", models.StatusWithdrawn)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, prev)
	assert.True(t, updated.Status.Terminal())

	list, err := m.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
