package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/picbot/internal/adapters/memory"
	"github.com/aretw0/picbot/pkg/domain"
	"github.com/aretw0/picbot/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emailPattern = `[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`

func TestPIIMiddleware_MasksPersistedText(t *testing.T) {
	backend := memory.NewStore()
	store := middleware.Wrap(backend, middleware.NewPIIMiddleware([]string{emailPattern}))

	conv := domain.NewConversation()
	conv.State.SearchTerm = "photos of bob@example.com"
	conv.Push(domain.Frame{Dialog: "searchDialog", Step: 1, Result: "mail bob@example.com please"})

	require.NoError(t, store.Save(context.Background(), "conv-1", conv))

	stored, err := backend.Load(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "photos of ***", stored.State.SearchTerm)
	assert.Equal(t, "mail *** please", stored.Stack[0].Result)
}

func TestPIIMiddleware_WorkingCopyUntouched(t *testing.T) {
	store := middleware.Wrap(memory.NewStore(), middleware.NewPIIMiddleware([]string{emailPattern}))

	conv := domain.NewConversation()
	conv.State.SearchTerm = "bob@example.com"
	conv.Push(domain.Frame{Dialog: "searchDialog", Result: "bob@example.com"})

	require.NoError(t, store.Save(context.Background(), "conv-1", conv))

	// The engine keeps operating on the real text within the turn.
	assert.Equal(t, "bob@example.com", conv.State.SearchTerm)
	assert.Equal(t, "bob@example.com", conv.Stack[0].Result)
}

func TestPIIMiddleware_NonStringResultsLeftAlone(t *testing.T) {
	backend := memory.NewStore()
	store := middleware.Wrap(backend, middleware.NewPIIMiddleware([]string{emailPattern}))

	conv := domain.NewConversation()
	conv.Push(domain.Frame{Dialog: "mainDialog", Result: 42})

	require.NoError(t, store.Save(context.Background(), "conv-1", conv))

	stored, err := backend.Load(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, float64(42), stored.Stack[0].Result)
}

func TestWrap_OrdersMiddlewares(t *testing.T) {
	backend := memory.NewStore()

	// PII masking must run before encryption, so the masked text is what
	// gets sealed.
	store := middleware.Wrap(backend,
		middleware.NewPIIMiddleware([]string{emailPattern}),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: testKey(1)}),
	)

	conv := domain.NewConversation()
	conv.State.SearchTerm = "bob@example.com"
	require.NoError(t, store.Save(context.Background(), "conv-1", conv))

	raw, err := backend.Load(context.Background(), "conv-1")
	require.NoError(t, err)
	require.Len(t, raw.Stack, 1)
	assert.Equal(t, "__encrypted__", raw.Stack[0].Dialog)

	loaded, err := store.Load(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, "***", loaded.State.SearchTerm)
}
