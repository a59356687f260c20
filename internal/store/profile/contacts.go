package profile

import (
	"context"

	"schemesathi/internal/models"
)

// ContactStore keeps the delivery addresses taken from verified sessions.
type ContactStore interface {
	SaveContact(ctx context.Context, c models.Contact) error
	GetContact(ctx context.Context, userID string) (*models.Contact, error)
}

var (
	_ Store        = (*PostgresStore)(nil)
	_ ContactStore = (*PostgresStore)(nil)
	_ Store        = (*MemoryStore)(nil)
	_ ContactStore = (*MemoryStore)(nil)
)
