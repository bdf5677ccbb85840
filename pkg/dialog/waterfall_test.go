package dialog_test

import (
	"context"
	"testing"

	"github.com/aretw0/picbot/pkg/dialog"
	"github.com/aretw0/picbot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func step(result dialog.Result) dialog.Step {
	return func(ctx context.Context, turn *dialog.TurnContext) (dialog.Result, error) {
		return result, nil
	}
}

func newTurn() *dialog.TurnContext {
	act := domain.Activity{
		Kind:           domain.ActivityMessage,
		Utterance:      "hello",
		ConversationID: "conv-1",
	}
	return dialog.NewTurnContext(act, &domain.ConversationState{}, nil)
}

func TestWaterfall_Advance(t *testing.T) {
	w := dialog.NewWaterfall("test",
		step(dialog.Next()),
		step(dialog.End("done")),
	)

	assert.Equal(t, "test", w.Name())
	assert.Equal(t, 2, w.Len())

	t.Run("Runs Step At Index", func(t *testing.T) {
		res, err := w.Advance(context.Background(), newTurn(), 0)
		require.NoError(t, err)
		assert.Equal(t, dialog.KindNext, res.Kind())

		res, err = w.Advance(context.Background(), newTurn(), 1)
		require.NoError(t, err)
		assert.Equal(t, dialog.KindEnd, res.Kind())
		assert.Equal(t, "done", res.Value())
	})

	t.Run("Implicit End Past Last Step", func(t *testing.T) {
		res, err := w.Advance(context.Background(), newTurn(), 2)
		require.NoError(t, err)
		assert.Equal(t, dialog.KindEnd, res.Kind())
		assert.Nil(t, res.Value())
	})

	t.Run("Out Of Range", func(t *testing.T) {
		_, err := w.Advance(context.Background(), newTurn(), 3)
		assert.Error(t, err)

		_, err = w.Advance(context.Background(), newTurn(), -1)
		assert.Error(t, err)
	})
}

func TestResult_Constructors(t *testing.T) {
	res := dialog.Begin("searchDialog", map[string]string{"facet": "cats"})
	assert.Equal(t, dialog.KindBegin, res.Kind())
	assert.Equal(t, "searchDialog", res.Dialog())
	assert.Equal(t, map[string]string{"facet": "cats"}, res.Args())

	res = dialog.Prompt(dialog.PromptSpec{Text: "what?"})
	assert.Equal(t, dialog.KindPrompt, res.Kind())
	assert.Equal(t, "what?", res.Prompt().Text)
}

func TestRegistry(t *testing.T) {
	reg := dialog.NewRegistry()

	w := dialog.NewWaterfall("mainDialog", step(dialog.End(nil)))
	require.NoError(t, reg.Register(w))

	t.Run("Lookup", func(t *testing.T) {
		got, ok := reg.Lookup("mainDialog")
		assert.True(t, ok)
		assert.Equal(t, w, got)

		_, ok = reg.Lookup("ghost")
		assert.False(t, ok)
	})

	t.Run("Duplicate Rejected", func(t *testing.T) {
		assert.Error(t, reg.Register(dialog.NewWaterfall("mainDialog")))
	})

	t.Run("Empty Name Rejected", func(t *testing.T) {
		assert.Error(t, reg.Register(dialog.NewWaterfall("")))
	})
}

func TestTurnContext_NoChannel(t *testing.T) {
	turn := newTurn()
	err := turn.SendText(context.Background(), "hi")
	assert.ErrorIs(t, err, dialog.ErrNoChannel)
	assert.False(t, turn.Responded())
}
