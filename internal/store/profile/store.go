// Package profile persists citizen profiles with merge-on-write semantics.
package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/models"

	"github.com/lib/pq"
)

// pq error code for insufficient_privilege, also raised by row-level security policies.
const codeInsufficientPrivilege = "42501"

// Schema creates the tables used by this package.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id        TEXT PRIMARY KEY,
		profile        JSONB NOT NULL DEFAULT '{}'::jsonb,
		schema_version INTEGER NOT NULL DEFAULT 1,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS user_contacts (
		user_id    TEXT PRIMARY KEY,
		email      TEXT,
		phone      TEXT,
		name       TEXT,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

type Store interface {
	// GetProfile returns nil, nil when the user has never saved a profile.
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	// SaveProfile overlays the present fields of p onto the stored profile.
	SaveProfile(ctx context.Context, userID string, p models.Profile) error
}

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT profile FROM user_profiles WHERE user_id = $1`, userID).Scan(&doc)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, userID, "read", nil, false)
	}

	p, err := Migrate(doc)
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("decode profile", err)
	}
	return &p, nil
}

func (s *PostgresStore) SaveProfile(ctx context.Context, userID string, p models.Profile) error {
	p.SchemaVersion = models.ProfileSchemaVersion
	payload, err := json.Marshal(p)
	if err != nil {
		return errors.NewInternalError(fmt.Errorf("marshal profile: %w", err))
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, profile, schema_version, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			profile = user_profiles.profile || EXCLUDED.profile,
			schema_version = EXCLUDED.schema_version,
			updated_at = NOW()`,
		userID, payload, models.ProfileSchemaVersion)
	if err != nil {
		return mapError(err, userID, "write", p, true)
	}
	return nil
}

// SaveContact upserts where notifications for the user are delivered.
func (s *PostgresStore) SaveContact(ctx context.Context, c models.Contact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_contacts (user_id, email, phone, name, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			email = COALESCE(NULLIF(EXCLUDED.email, ''), user_contacts.email),
			phone = COALESCE(NULLIF(EXCLUDED.phone, ''), user_contacts.phone),
			name = COALESCE(NULLIF(EXCLUDED.name, ''), user_contacts.name),
			updated_at = NOW()`,
		c.UserID, c.Email, c.Phone, c.Name)
	if err != nil {
		return mapContactError(err, c.UserID, "write", true)
	}
	return nil
}

// GetContact returns nil, nil when the user has no contact row.
func (s *PostgresStore) GetContact(ctx context.Context, userID string) (*models.Contact, error) {
	var email, phone, name sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT email, phone, name FROM user_contacts WHERE user_id = $1`, userID).Scan(&email, &phone, &name)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapContactError(err, userID, "read", false)
	}
	return &models.Contact{UserID: userID, Email: email.String, Phone: phone.String, Name: name.String}, nil
}

func mapError(err error, userID, operation string, payload interface{}, write bool) error {
	if isPermissionDenied(err) {
		return errors.NewPermissionDeniedError("user_profiles/"+userID, operation, payload, err)
	}
	if write {
		return errors.NewDatabaseWriteFailedError("save profile", err)
	}
	return errors.NewDatabaseQueryFailedError("get profile", err)
}

func mapContactError(err error, userID, operation string, write bool) error {
	if isPermissionDenied(err) {
		return errors.NewPermissionDeniedError("user_contacts/"+userID, operation, nil, err)
	}
	if write {
		return errors.NewDatabaseWriteFailedError("save contact", err)
	}
	return errors.NewDatabaseQueryFailedError("get contact", err)
}

func isPermissionDenied(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && string(pqErr.Code) == codeInsufficientPrivilege
}
