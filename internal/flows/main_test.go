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

type stubClassifier struct {
	rec *domain.Recognition
	err error
}

func (s *stubClassifier) Classify(ctx context.Context, utterance string) (*domain.Recognition, error) {
	return s.rec, s.err
}

type mainFixture struct {
	dialog  *dialog.Waterfall
	channel *memory.Channel
}

func newMainFixture(rec *domain.Recognition, err error) *mainFixture {
	return &mainFixture{
		dialog:  NewMainDialog(&stubClassifier{rec: rec, err: err}, nil),
		channel: memory.NewChannel(),
	}
}

func (f *mainFixture) turn(state *domain.ConversationState, utterance string) *dialog.TurnContext {
	act := domain.Activity{
		Kind:           domain.ActivityMessage,
		Utterance:      utterance,
		ConversationID: "conv-1",
	}
	return dialog.NewTurnContext(act, state, f.channel)
}

func TestMainDialog_GreetingStep(t *testing.T) {
	fix := newMainFixture(nil, nil)

	t.Run("Greets Fresh Conversation", func(t *testing.T) {
		state := &domain.ConversationState{}
		res, err := fix.dialog.Advance(context.Background(), fix.turn(state, "hi"), 0)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindEnd, res.Kind())
		assert.Equal(t, []string{WelcomeMessage, HelpMessage}, fix.channel.Texts())
		assert.True(t, state.Greeted)
	})

	t.Run("Silent Once Greeted", func(t *testing.T) {
		fix.channel.Reset()
		state := &domain.ConversationState{Greeted: true}
		res, err := fix.dialog.Advance(context.Background(), fix.turn(state, "hi"), 0)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindNext, res.Kind())
		assert.Empty(t, fix.channel.Texts())
	})
}

func TestMainDialog_MenuKeywordDispatch(t *testing.T) {
	cases := []struct {
		intent domain.Intent
		want   string
	}{
		{domain.IntentSharePic, ShareMessage},
		{domain.IntentOrderPic, OrderMessage},
		{domain.IntentHelp, HelpMessage},
	}
	for _, tc := range cases {
		t.Run(string(tc.intent), func(t *testing.T) {
			fix := newMainFixture(nil, errors.New("classifier must not be called"))
			turn := fix.turn(&domain.ConversationState{Greeted: true}, "whatever")
			turn.Local = &domain.Recognition{Intent: tc.intent, Score: 1.0}

			res, err := fix.dialog.Advance(context.Background(), turn, 1)
			require.NoError(t, err)
			assert.Equal(t, dialog.KindEnd, res.Kind())
			assert.Equal(t, []string{tc.want}, fix.channel.Texts())
		})
	}

	t.Run("Search Keyword Begins Dialog", func(t *testing.T) {
		fix := newMainFixture(nil, errors.New("classifier must not be called"))
		turn := fix.turn(&domain.ConversationState{Greeted: true}, "search")
		turn.Local = &domain.Recognition{Intent: domain.IntentSearchPics, Score: 1.0}

		res, err := fix.dialog.Advance(context.Background(), turn, 1)
		require.NoError(t, err)
		assert.Equal(t, dialog.KindBegin, res.Kind())
		assert.Equal(t, SearchDialogName, res.Dialog())
		assert.Empty(t, fix.channel.Texts())
	})
}

func TestMainDialog_MenuClassifierDispatch(t *testing.T) {
	greeted := func() *domain.ConversationState {
		return &domain.ConversationState{Greeted: true}
	}

	t.Run("Search Intent With Facet Prefills State", func(t *testing.T) {
		fix := newMainFixture(&domain.Recognition{
			Intent:    domain.IntentSearchPics,
			TopIntent: "SearchPics",
			Score:     0.87,
			Entities:  map[string][]string{"facet": {` "cats" `}},
		}, nil)

		state := greeted()
		res, err := fix.dialog.Advance(context.Background(), fix.turn(state, "search for cats"), 1)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindBegin, res.Kind())
		assert.Equal(t, SearchDialogName, res.Dialog())
		assert.Equal(t, "cats", state.SearchTerm)
		assert.True(t, state.AwaitingSearchInput)
		assert.Equal(t, []string{ScoreMessage(0.87)}, fix.channel.Texts())
	})

	t.Run("Search Intent Without Facet Still Begins Dialog", func(t *testing.T) {
		fix := newMainFixture(&domain.Recognition{
			Intent:    domain.IntentSearchPics,
			TopIntent: "SearchPics",
			Score:     0.6,
		}, nil)

		state := greeted()
		res, err := fix.dialog.Advance(context.Background(), fix.turn(state, "find something"), 1)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindBegin, res.Kind())
		assert.Empty(t, state.SearchTerm)
		assert.False(t, state.AwaitingSearchInput)
	})

	t.Run("Greeting Intent Replays Welcome", func(t *testing.T) {
		fix := newMainFixture(&domain.Recognition{
			Intent:    domain.IntentGreeting,
			TopIntent: "Greeting",
			Score:     0.95,
		}, nil)

		res, err := fix.dialog.Advance(context.Background(), fix.turn(greeted(), "good morning"), 1)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindEnd, res.Kind())
		assert.Equal(t, []string{WelcomeMessage, HelpMessage, ScoreMessage(0.95)}, fix.channel.Texts())
	})

	t.Run("None Intent Reports Score", func(t *testing.T) {
		fix := newMainFixture(&domain.Recognition{
			Intent:    domain.IntentNone,
			TopIntent: "None",
			Score:     0.3,
		}, nil)

		res, err := fix.dialog.Advance(context.Background(), fix.turn(greeted(), "blah"), 1)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindEnd, res.Kind())
		assert.Equal(t, []string{NoIntentMessage(0.3)}, fix.channel.Texts())
	})

	t.Run("Absent Top Intent Is Plain Confusion", func(t *testing.T) {
		fix := newMainFixture(&domain.Recognition{TopIntent: ""}, nil)

		res, err := fix.dialog.Advance(context.Background(), fix.turn(greeted(), "???"), 1)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindEnd, res.Kind())
		assert.Equal(t, []string{ConfusedMessage}, fix.channel.Texts())
	})

	t.Run("Classifier Error Degrades To Confusion", func(t *testing.T) {
		fix := newMainFixture(nil, errors.New("endpoint down"))

		res, err := fix.dialog.Advance(context.Background(), fix.turn(greeted(), "search for cats"), 1)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindEnd, res.Kind())
		assert.Equal(t, []string{ConfusedMessage}, fix.channel.Texts())
	})

	t.Run("Nil Classifier Degrades To Confusion", func(t *testing.T) {
		fix := &mainFixture{dialog: NewMainDialog(nil, nil), channel: memory.NewChannel()}

		res, err := fix.dialog.Advance(context.Background(), fix.turn(greeted(), "anything"), 1)
		require.NoError(t, err)

		assert.Equal(t, dialog.KindEnd, res.Kind())
		assert.Equal(t, []string{ConfusedMessage}, fix.channel.Texts())
	})
}
