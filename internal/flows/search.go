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

// searchDialog asks for a term (unless one was pre-filled by intent
// extraction), runs the search, and renders the ranked hits as a single
// reply.
type searchDialog struct {
	searcher ports.Searcher
	logger   *slog.Logger
}

// NewSearchDialog builds the two-step search dialog. The searcher may be
// nil; searching then degrades to the error message path.
func NewSearchDialog(searcher ports.Searcher, logger *slog.Logger) *dialog.Waterfall {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &searchDialog{searcher: searcher, logger: logger}
	return dialog.NewWaterfall(SearchDialogName, s.requestTerm, s.execute)
}

// requestTerm prompts for a search term exactly once. When the term was
// pre-filled (AwaitingSearchInput already set), it falls through to execute
// with no prompt.
func (s *searchDialog) requestTerm(ctx context.Context, turn *dialog.TurnContext) (dialog.Result, error) {
	if turn.State.AwaitingSearchInput {
		return dialog.Next(), nil
	}

	turn.State.AwaitingSearchInput = true
	return dialog.Prompt(dialog.PromptSpec{Text: SearchPrompt}), nil
}

func (s *searchDialog) execute(ctx context.Context, turn *dialog.TurnContext) (dialog.Result, error) {
	term := turn.State.SearchTerm
	if term == "" {
		// Adopt the captured prompt answer.
		term = strings.TrimSpace(turn.Input)
		turn.State.SearchTerm = term
	}

	if err := turn.SendText(ctx, SearchingMessage(term)); err != nil {
		return dialog.Result{}, err
	}

	results, err := s.search(ctx, term)
	switch {
	case err != nil:
		s.logger.Warn("picture search failed", "term", term, "err", err)
		if err := turn.SendText(ctx, SearchFailed); err != nil {
			return dialog.Result{}, err
		}
	case len(results) == 0:
		if err := turn.SendText(ctx, NoResultsMessage(term)); err != nil {
			return dialog.Result{}, err
		}
	default:
		reply := domain.Reply{
			Text:        ResultsMessage(term),
			Attachments: attachments(results),
		}
		if err := turn.Send(ctx, reply); err != nil {
			return dialog.Result{}, err
		}
	}

	turn.State.SearchTerm = ""
	turn.State.AwaitingSearchInput = false
	return dialog.End(nil), nil
}

func (s *searchDialog) search(ctx context.Context, term string) ([]domain.SearchResult, error) {
	if s.searcher == nil {
		return nil, ports.ErrNotConfigured
	}
	return s.searcher.Search(ctx, term)
}

func attachments(results []domain.SearchResult) []domain.Attachment {
	out := make([]domain.Attachment, len(results))
	for i, r := range results {
		out[i] = domain.Attachment{
			Title:    r.Title,
			ImageURL: r.ImageURL,
			Metadata: r.Metadata,
		}
	}
	return out
}
