package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/picbot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore
// implementation adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	conversationID := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		conv := domain.NewConversation()
		conv.State.Greeted = true
		conv.State.SearchTerm = "cats"
		conv.Push(domain.Frame{Dialog: "searchDialog", Step: 1, Awaiting: true})

		err := store.Save(ctx, conversationID, conv)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, conversationID)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, loaded.State.Greeted)
		assert.Equal(t, "cats", loaded.State.SearchTerm)
		require.Len(t, loaded.Stack, 1)
		assert.Equal(t, "searchDialog", loaded.Stack[0].Dialog)
		assert.Equal(t, 1, loaded.Stack[0].Step)
		assert.True(t, loaded.Stack[0].Awaiting)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+conversationID)
		assert.ErrorIs(t, err, domain.ErrConversationNotFound)
	})

	t.Run("Save Is Snapshot", func(t *testing.T) {
		conv := domain.NewConversation()
		conv.State.SearchTerm = "dogs"
		require.NoError(t, store.Save(ctx, conversationID, conv))

		// Mutations after Save must not leak into the stored copy.
		conv.State.SearchTerm = "mutated"
		conv.Push(domain.Frame{Dialog: "mainDialog"})

		loaded, err := store.Load(ctx, conversationID)
		require.NoError(t, err)
		assert.Equal(t, "dogs", loaded.State.SearchTerm)
		assert.Empty(t, loaded.Stack)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, conversationID, domain.NewConversation()))

		err := store.Delete(ctx, conversationID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, conversationID)
		assert.ErrorIs(t, err, domain.ErrConversationNotFound, "Load after Delete should return ErrConversationNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := conversationID + "-1"
		id2 := conversationID + "-2"
		_ = store.Save(ctx, id1, domain.NewConversation())
		_ = store.Save(ctx, id2, domain.NewConversation())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
