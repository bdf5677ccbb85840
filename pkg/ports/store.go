package ports

import (
	"context"

	"github.com/aretw0/picbot/pkg/domain"
)

// StateStore defines the interface for persisting conversation records.
// Persisting is the only side effect guaranteed to complete before a turn is
// considered done; a Save failure must fail the turn loudly.
type StateStore interface {
	// Save persists the record for a given conversation ID.
	Save(ctx context.Context, conversationID string, conv *domain.Conversation) error

	// Load retrieves the record for a given conversation ID.
	// Returns domain.ErrConversationNotFound if it does not exist.
	Load(ctx context.Context, conversationID string) (*domain.Conversation, error)

	// Delete removes the record for a given conversation ID.
	Delete(ctx context.Context, conversationID string) error

	// List returns the IDs of all known conversations.
	List(ctx context.Context) ([]string, error)
}
