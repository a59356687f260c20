// Package application tracks the schemes a citizen has applied to.
package application

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// pq error code for unique_violation, raised when a concurrent Create passes the EXISTS check.
const codeUniqueViolation = "23505"

var Schema = []string{
	`CREATE TABLE IF NOT EXISTS applications (
		id                 TEXT PRIMARY KEY,
		user_id            TEXT NOT NULL,
		scheme_id          TEXT NOT NULL,
		scheme_name        TEXT NOT NULL,
		application_date   TIMESTAMPTZ NOT NULL,
		status             TEXT NOT NULL,
		last_status_update TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, scheme_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_user ON applications (user_id, application_date DESC)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id            BIGSERIAL PRIMARY KEY,
		event_type    TEXT NOT NULL,
		resource_type TEXT NOT NULL,
		resource_id   TEXT NOT NULL,
		details       JSONB,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

type Store interface {
	Create(ctx context.Context, app models.Application) (*models.Application, error)
	ListByUser(ctx context.Context, userID string) ([]models.Application, error)
	Get(ctx context.Context, applicationID string) (*models.Application, error)
	// UpdateStatus moves the application to next and returns it with the previous status.
	// A non-empty userID must own the application.
	UpdateStatus(ctx context.Context, applicationID, userID string, next models.ApplicationStatus) (*models.Application, models.ApplicationStatus, error)
}

type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "applications"}),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

const selectColumns = `SELECT id, user_id, scheme_id, scheme_name, application_date, status, last_status_update FROM applications`

func (s *PostgresStore) Create(ctx context.Context, app models.Application) (*models.Application, error) {
	if app.Status == "" {
		app.Status = models.StatusSubmitted
	}
	if !app.Status.Valid() {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown status %q", app.Status))
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM applications
			WHERE user_id = $1 AND scheme_id = $2
		)`, app.UserID, app.SchemeID).Scan(&exists)
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("duplicate check", err)
	}
	if exists {
		return nil, errors.NewDuplicateApplicationError(app.UserID, app.SchemeID)
	}

	now := s.now()
	appDate := now
	if app.ApplicationDate != "" {
		parsed, err := time.Parse(time.RFC3339, app.ApplicationDate)
		if err != nil {
			return nil, errors.NewValidationError("applicationDate must be an ISO-8601 timestamp")
		}
		appDate = parsed.UTC()
	}

	app.ApplicationID = uuid.New().String()
	app.ApplicationDate = appDate.Format(time.RFC3339)
	app.LastStatusUpdateDate = now.Format(time.RFC3339)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO applications (
			id, user_id, scheme_id, scheme_name,
			application_date, status, last_status_update
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ApplicationID, app.UserID, app.SchemeID, app.SchemeName,
		appDate, string(app.Status), now,
	)
	if isUniqueViolation(err) {
		return nil, errors.NewDuplicateApplicationError(app.UserID, app.SchemeID)
	}
	if err != nil {
		return nil, errors.NewDatabaseWriteFailedError("insert application", err)
	}

	s.audit(ctx, "application_created", app.ApplicationID, map[string]interface{}{
		"userId":   app.UserID,
		"schemeId": app.SchemeID,
		"status":   app.Status,
	})
	return &app, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]models.Application, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE user_id = $1 ORDER BY application_date DESC`, userID)
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("list applications", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, errors.NewDatabaseQueryFailedError("scan application", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseQueryFailedError("list applications", err)
	}
	return apps, nil
}

func (s *PostgresStore) Get(ctx context.Context, applicationID string) (*models.Application, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, applicationID)
	app, err := scanApplication(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewApplicationNotFoundError(applicationID)
	}
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("get application", err)
	}
	return app, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, applicationID, userID string, next models.ApplicationStatus) (*models.Application, models.ApplicationStatus, error) {
	if !next.Valid() {
		return nil, "", errors.NewValidationError(fmt.Sprintf("unknown status %q", next))
	}

	app, err := s.Get(ctx, applicationID)
	if err != nil {
		return nil, "", err
	}
	if userID != "" && app.UserID != userID {
		return nil, "", errors.NewApplicationNotFoundError(applicationID)
	}

	previous := app.Status
	if !previous.CanTransition(next) {
		return nil, "", errors.NewInvalidStatusTransitionError(string(previous), string(next))
	}

	now := s.now()
	res, err := s.db.ExecContext(ctx, `
		UPDATE applications SET status = $1, last_status_update = $2
		WHERE id = $3 AND status = $4`,
		string(next), now, applicationID, string(previous))
	if err != nil {
		return nil, "", errors.NewDatabaseWriteFailedError("update application status", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Someone else moved it first.
		return nil, "", errors.NewInvalidStatusTransitionError(string(previous), string(next))
	}

	app.Status = next
	app.LastStatusUpdateDate = now.Format(time.RFC3339)

	s.audit(ctx, "application_status_changed", applicationID, map[string]interface{}{
		"from": previous,
		"to":   next,
	})
	return app, previous, nil
}

// audit is best effort; a failure is logged and never returned.
func (s *PostgresStore) audit(ctx context.Context, event, resourceID string, details map[string]interface{}) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		s.logger.Warn("failed to marshal audit log details", map[string]interface{}{"error": err})
		detailsJSON = []byte("{}")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		event, "application", resourceID, detailsJSON, s.now())
	if err != nil {
		s.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":         err,
			"applicationId": resourceID,
		})
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row scanner) (*models.Application, error) {
	var (
		app              models.Application
		status           string
		appDate, updated time.Time
	)
	if err := row.Scan(&app.ApplicationID, &app.UserID, &app.SchemeID, &app.SchemeName, &appDate, &status, &updated); err != nil {
		return nil, err
	}
	app.Status = models.ApplicationStatus(status)
	app.ApplicationDate = appDate.UTC().Format(time.RFC3339)
	app.LastStatusUpdateDate = updated.UTC().Format(time.RFC3339)
	return &app, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && string(pqErr.Code) == codeUniqueViolation
}
