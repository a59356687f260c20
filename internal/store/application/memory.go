package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"schemesathi/internal/common/errors"
	"schemesathi/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store with the same rules as PostgresStore, minus the audit log.
type MemoryStore struct {
	mu   sync.Mutex
	apps map[string]models.Application
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{apps: make(map[string]models.Application)}
}

func (m *MemoryStore) Create(_ context.Context, app models.Application) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if app.Status == "" {
		app.Status = models.StatusSubmitted
	}
	if !app.Status.Valid() {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown status %q", app.Status))
	}
	for _, existing := range m.apps {
		if existing.UserID == app.UserID && existing.SchemeID == app.SchemeID {
			return nil, errors.NewDuplicateApplicationError(app.UserID, app.SchemeID)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	app.ApplicationID = uuid.New().String()
	if app.ApplicationDate == "" {
		app.ApplicationDate = now
	}
	app.LastStatusUpdateDate = now
	m.apps[app.ApplicationID] = app
	return &app, nil
}

func (m *MemoryStore) ListByUser(_ context.Context, userID string) ([]models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.Application{}
	for _, app := range m.apps {
		if app.UserID == userID {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ApplicationDate == out[j].ApplicationDate {
			return out[i].ApplicationID < out[j].ApplicationID
		}
		return out[i].ApplicationDate > out[j].ApplicationDate
	})
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, applicationID string) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.apps[applicationID]
	if !ok {
		return nil, errors.NewApplicationNotFoundError(applicationID)
	}
	return &app, nil
}

func (m *MemoryStore) UpdateStatus(_ context.Context, applicationID, userID string, next models.ApplicationStatus) (*models.Application, models.ApplicationStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !next.Valid() {
		return nil, "", errors.NewValidationError(fmt.Sprintf("unknown status %q", next))
	}
	app, ok := m.apps[applicationID]
	if !ok || (userID != "" && app.UserID != userID) {
		return nil, "", errors.NewApplicationNotFoundError(applicationID)
	}

	previous := app.Status
	if !previous.CanTransition(next) {
		return nil, "", errors.NewInvalidStatusTransitionError(string(previous), string(next))
	}
	app.Status = next
	app.LastStatusUpdateDate = time.Now().UTC().Format(time.RFC3339)
	m.apps[applicationID] = app
	return &app, previous, nil
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
