package flows

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/picbot/internal/adapters/memory"
	"github.com/aretw0/picbot/pkg/dialog"
	"github.com/aretw0/picbot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	results []domain.SearchResult
	err     error
	queries []string
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	s.queries = append(s.queries, query)
	return s.results, s.err
}

type searchFixture struct {
	dialog   *dialog.Waterfall
	searcher *stubSearcher
	channel  *memory.Channel
}

func newSearchFixture(results []domain.SearchResult, err error) *searchFixture {
	searcher := &stubSearcher{results: results, err: err}
	return &searchFixture{
		dialog:   NewSearchDialog(searcher, nil),
		searcher: searcher,
		channel:  memory.NewChannel(),
	}
}

func (f *searchFixture) turn(state *domain.ConversationState, utterance string) *dialog.TurnContext {
	act := domain.Activity{
		Kind:           domain.ActivityMessage,
		Utterance:      utterance,
		ConversationID: "conv-1",
	}
	return dialog.NewTurnContext(act, state, f.channel)
}

func TestSearchDialog_RequestTerm(t *testing.T) {
	t.Run("Prompts When Nothing Prefilled", func(t *testing.T) {
		fix := newSearchFixture(nil, nil)
		state := &domain.ConversationState{}

		res, err := fix.dialog.Advance(context.Background(), fix.turn(state, "search"), 0)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindPrompt, res.Kind())
		assert.Equal(t, SearchPrompt, res.Prompt().Text)
		assert.True(t, state.AwaitingSearchInput)
	})

	t.Run("Skips Prompt When Term Prefilled", func(t *testing.T) {
		fix := newSearchFixture(nil, nil)
		state := &domain.ConversationState{SearchTerm: "cats", AwaitingSearchInput: true}

		res, err := fix.dialog.Advance(context.Background(), fix.turn(state, "search for cats"), 0)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindNext, res.Kind())
		assert.Empty(t, fix.channel.Texts())
	})
}

func TestSearchDialog_Execute(t *testing.T) {
	t.Run("Uses Prefilled Term", func(t *testing.T) {
		fix := newSearchFixture([]domain.SearchResult{
			{Title: "tabby", ImageURL: "https://pics.example/tabby.jpg", Metadata: map[string]string{"host": "pics.example"}},
		}, nil)
		state := &domain.ConversationState{SearchTerm: "cats", AwaitingSearchInput: true}

		res, err := fix.dialog.Advance(context.Background(), fix.turn(state, "search for cats"), 1)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindEnd, res.Kind())
		assert.Equal(t, []string{"cats"}, fix.searcher.queries)

		replies := fix.channel.Replies()
		require.Len(t, replies, 2)
		assert.Equal(t, SearchingMessage("cats"), replies[0].Text)
		assert.Equal(t, ResultsMessage("cats"), replies[1].Text)
		require.Len(t, replies[1].Attachments, 1)
		assert.Equal(t, "tabby", replies[1].Attachments[0].Title)
		assert.Equal(t, map[string]string{"host": "pics.example"}, replies[1].Attachments[0].Metadata)
	})

	t.Run("Adopts Prompt Answer", func(t *testing.T) {
		fix := newSearchFixture(nil, nil)
		state := &domain.ConversationState{AwaitingSearchInput: true}

		res, err := fix.dialog.Advance(context.Background(), fix.turn(state, "  alpine lakes  "), 1)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindEnd, res.Kind())
		assert.Equal(t, []string{"alpine lakes"}, fix.searcher.queries)
	})

	t.Run("Reports Empty Results", func(t *testing.T) {
		fix := newSearchFixture(nil, nil)
		state := &domain.ConversationState{SearchTerm: "unicorns", AwaitingSearchInput: true}

		_, err := fix.dialog.Advance(context.Background(), fix.turn(state, ""), 1)
		require.NoError(t, err)

		assert.Equal(t, []string{
			SearchingMessage("unicorns"),
			NoResultsMessage("unicorns"),
		}, fix.channel.Texts())
	})

	t.Run("Reports Search Failure And Still Ends", func(t *testing.T) {
		fix := newSearchFixture(nil, errors.New("quota exceeded"))
		state := &domain.ConversationState{SearchTerm: "cats", AwaitingSearchInput: true}

		res, err := fix.dialog.Advance(context.Background(), fix.turn(state, ""), 1)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindEnd, res.Kind())
		assert.Equal(t, []string{
			SearchingMessage("cats"),
			SearchFailed,
		}, fix.channel.Texts())
	})

	t.Run("Resets Scratch State", func(t *testing.T) {
		fix := newSearchFixture(nil, nil)
		state := &domain.ConversationState{SearchTerm: "cats", AwaitingSearchInput: true}

		_, err := fix.dialog.Advance(context.Background(), fix.turn(state, ""), 1)
		require.NoError(t, err)

		assert.Empty(t, state.SearchTerm)
		assert.False(t, state.AwaitingSearchInput)
	})

	t.Run("Nil Searcher Degrades To Failure Message", func(t *testing.T) {
		w := NewSearchDialog(nil, nil)
		channel := memory.NewChannel()
		state := &domain.ConversationState{SearchTerm: "cats", AwaitingSearchInput: true}
		act := domain.Activity{Kind: domain.ActivityMessage, ConversationID: "conv-1"}

		res, err := w.Advance(context.Background(), dialog.NewTurnContext(act, state, channel), 1)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindEnd, res.Kind())
		assert.Equal(t, []string{
			SearchingMessage("cats"),
			SearchFailed,
		}, channel.Texts())
	})
}
