package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/picbot/internal/logging"
	"github.com/aretw0/picbot/pkg/domain"
	"github.com/aretw0/picbot/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serializes access to conversation records. Turns for the same
// conversation run strictly one after another; different conversations are
// fully independent. It uses reference counting to garbage collect unused
// locks.
type Manager struct {
	store ports.StateStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking for multi-replica deployments.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides the distributed lock TTL (default 30s).
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new session Manager over the given store.
func NewManager(store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after
// unlocking.
func (m *Manager) acquire(conversationID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[conversationID]
	if !exists {
		entry = &lockEntry{}
		m.locks[conversationID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(conversationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[conversationID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, conversationID)
	}
}

// Turn executes one serialized read-modify-write cycle for a conversation:
// it holds the conversation lock, checks out the record (default-constructing
// it on first contact), runs fn, and writes the record back if fn succeeds.
// Turn n+1 cannot begin its load until turn n's save has committed.
func (m *Manager) Turn(ctx context.Context, conversationID string, fn func(ctx context.Context, conv *domain.Conversation) error) error {
	return m.withLock(ctx, conversationID, func(ctx context.Context) error {
		conv, err := m.loadOrCreate(ctx, conversationID)
		if err != nil {
			return err
		}
		if err := fn(ctx, conv); err != nil {
			return err
		}
		if err := m.store.Save(ctx, conversationID, conv); err != nil {
			return fmt.Errorf("persist conversation %s: %w", conversationID, err)
		}
		return nil
	})
}

// loadOrCreate loads a record, initializing and reserving a fresh one when
// the conversation has never been seen. Callers must hold the lock.
func (m *Manager) loadOrCreate(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	conv, err := m.store.Load(ctx, conversationID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, domain.ErrConversationNotFound) {
		return nil, fmt.Errorf("load conversation %s: %w", conversationID, err)
	}

	conv = domain.NewConversation()
	if err := m.store.Save(ctx, conversationID, conv); err != nil {
		return nil, fmt.Errorf("initialize conversation %s: %w", conversationID, err)
	}
	return conv, nil
}

// Load retrieves an existing record under the conversation lock.
func (m *Manager) Load(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	var conv *domain.Conversation
	err := m.withLock(ctx, conversationID, func(ctx context.Context) error {
		var err error
		conv, err = m.store.Load(ctx, conversationID)
		return err
	})
	return conv, err
}

// Delete removes the record under the conversation lock.
func (m *Manager) Delete(ctx context.Context, conversationID string) error {
	return m.withLock(ctx, conversationID, func(ctx context.Context) error {
		return m.store.Delete(ctx, conversationID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// withLock executes fn while holding the in-process lock (and, when
// configured, the distributed lock) for the conversation.
func (m *Manager) withLock(ctx context.Context, conversationID string, fn func(context.Context) error) error {
	entry := m.acquire(conversationID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(conversationID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, conversationID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"conversation_id", conversationID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
