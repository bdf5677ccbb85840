package flows

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aretw0/picbot/internal/logging"
	"github.com/aretw0/picbot/pkg/dialog"
	"github.com/aretw0/picbot/pkg/domain"
	"github.com/aretw0/picbot/pkg/ports"
)

// mainDialog greets first-time conversations and routes every turn by
// intent: the cheap keyword recognizer first, the external classifier as
// fallback.
type mainDialog struct {
	classifier ports.Classifier
	logger     *slog.Logger
}

// NewMainDialog builds the top-level intent-routing dialog.
// The classifier may be nil; classification then degrades to the confused
// response, like any other adapter failure.
func NewMainDialog(classifier ports.Classifier, logger *slog.Logger) *dialog.Waterfall {
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &mainDialog{classifier: classifier, logger: logger}
	return dialog.NewWaterfall(MainDialogName, m.greeting, m.mainMenu)
}

// greeting welcomes a conversation exactly once. On later turns it falls
// straight through to the menu within the same turn.
func (m *mainDialog) greeting(ctx context.Context, turn *dialog.TurnContext) (dialog.Result, error) {
	if turn.State.Greeted {
		return dialog.Next(), nil
	}

	if err := turn.SendText(ctx, WelcomeMessage); err != nil {
		return dialog.Result{}, err
	}
	if err := turn.SendText(ctx, HelpMessage); err != nil {
		return dialog.Result{}, err
	}
	turn.State.Greeted = true

	// End here so the next inbound message re-enters at the menu.
	return dialog.End(nil), nil
}

func (m *mainDialog) mainMenu(ctx context.Context, turn *dialog.TurnContext) (dialog.Result, error) {
	// The keyword recognizer attached to the turn wins when it fired.
	if turn.Local != nil {
		switch turn.Local.Intent {
		case domain.IntentSearchPics:
			return dialog.Begin(SearchDialogName, nil), nil
		case domain.IntentSharePic:
			return m.reply(ctx, turn, ShareMessage)
		case domain.IntentOrderPic:
			return m.reply(ctx, turn, OrderMessage)
		case domain.IntentHelp:
			return m.reply(ctx, turn, HelpMessage)
		}
	}

	rec, err := m.classify(ctx, turn.Utterance())
	if err != nil {
		m.logger.Warn("intent classification failed", "err", err)
		return m.reply(ctx, turn, ConfusedMessage)
	}

	if rec == nil || rec.TopIntent == "" {
		return m.reply(ctx, turn, ConfusedMessage)
	}

	switch rec.Intent {
	case domain.IntentNone:
		return m.reply(ctx, turn, NoIntentMessage(rec.Score))

	case domain.IntentGreeting:
		if err := turn.SendText(ctx, WelcomeMessage); err != nil {
			return dialog.Result{}, err
		}
		if err := turn.SendText(ctx, HelpMessage); err != nil {
			return dialog.Result{}, err
		}
		return m.reply(ctx, turn, ScoreMessage(rec.Score))

	case domain.IntentOrderPic:
		if err := turn.SendText(ctx, OrderMessage); err != nil {
			return dialog.Result{}, err
		}
		return m.reply(ctx, turn, ScoreMessage(rec.Score))

	case domain.IntentSharePic:
		if err := turn.SendText(ctx, ShareMessage); err != nil {
			return dialog.Result{}, err
		}
		return m.reply(ctx, turn, ScoreMessage(rec.Score))

	case domain.IntentSearchPics:
		// A facet entity pre-fills the term so the search dialog skips its
		// prompt. A missing or empty facet just falls back to prompting.
		if facet, ok := facetValue(rec); ok {
			turn.State.SearchTerm = facet
			turn.State.AwaitingSearchInput = true
		}
		if err := turn.SendText(ctx, ScoreMessage(rec.Score)); err != nil {
			return dialog.Result{}, err
		}
		return dialog.Begin(SearchDialogName, nil), nil

	default:
		return m.reply(ctx, turn, ConfusedMessage)
	}
}

// classify calls the external classifier, treating a missing adapter as a
// failure so the caller degrades to the confused path.
func (m *mainDialog) classify(ctx context.Context, utterance string) (*domain.Recognition, error) {
	if m.classifier == nil {
		return nil, ports.ErrNotConfigured
	}
	return m.classifier.Classify(ctx, utterance)
}

// reply sends one message and ends the dialog.
func (m *mainDialog) reply(ctx context.Context, turn *dialog.TurnContext, text string) (dialog.Result, error) {
	if err := turn.SendText(ctx, text); err != nil {
		return dialog.Result{}, err
	}
	return dialog.End(nil), nil
}

// facetValue extracts the trimmed, unquoted facet entity, if usable.
func facetValue(rec *domain.Recognition) (string, bool) {
	for _, v := range rec.Entities["facet"] {
		v = strings.TrimSpace(strings.Trim(strings.TrimSpace(v), `"'`))
		if v != "" {
			return v, true
		}
	}
	return "", false
}
