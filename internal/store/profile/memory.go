package profile

import (
	"context"
	"sync"

	"schemesathi/internal/models"
)

// MemoryStore is an in-process Store with the same merge semantics as PostgresStore.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile
	contacts map[string]models.Contact
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]models.Profile),
		contacts: make(map[string]models.Contact),
	}
}

func (m *MemoryStore) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	merged := models.Profile{}.Merge(p)
	return &merged, nil
}

func (m *MemoryStore) SaveProfile(_ context.Context, userID string, p models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profiles[userID] = m.profiles[userID].Merge(p)
	return nil
}

func (m *MemoryStore) SaveContact(_ context.Context, c models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.contacts[c.UserID]
	current.UserID = c.UserID
	if c.Email != "" {
		current.Email = c.Email
	}
	if c.Phone != "" {
		current.Phone = c.Phone
	}
	if c.Name != "" {
		current.Name = c.Name
	}
	m.contacts[c.UserID] = current
	return nil
}

func (m *MemoryStore) GetContact(_ context.Context, userID string) (*models.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.contacts[userID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}
