package runtime

import (
	"context"
	"time"

	"log/slog"

	"github.com/aretw0/picbot/internal/logging"
	"github.com/aretw0/picbot/internal/metrics"
	"github.com/aretw0/picbot/pkg/dialog"
	"github.com/aretw0/picbot/pkg/domain"
	"github.com/aretw0/picbot/pkg/ports"
	"github.com/aretw0/picbot/pkg/session"
)

// Recognizer is the cheap pre-classifier the router attaches to every turn
// before any dialog runs. It returns nil when nothing matched.
type Recognizer func(utterance string) *domain.Recognition

// Router is the single entry point for inbound activities. It loads the
// conversation under the session lock, resumes the active dialog, and falls
// back to the default dialog when no dialog consumed the turn.
type Router struct {
	engine        *Engine
	sessions      *session.Manager
	channel       ports.OutputChannel
	recognize     Recognizer
	defaultDialog string
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

// RouterOption configures the Router.
type RouterOption func(*Router)

// WithRouterLogger sets a structured logger.
func WithRouterLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithRouterMetrics sets the metrics sink.
func WithRouterMetrics(m *metrics.Metrics) RouterOption {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithRecognizer sets the cheap pre-classifier.
func WithRecognizer(rec Recognizer) RouterOption {
	return func(r *Router) {
		r.recognize = rec
	}
}

// NewRouter wires the turn router.
func NewRouter(engine *Engine, sessions *session.Manager, channel ports.OutputChannel, defaultDialog string, opts ...RouterOption) *Router {
	r := &Router{
		engine:        engine,
		sessions:      sessions,
		channel:       channel,
		defaultDialog: defaultDialog,
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HandleActivity processes one inbound event. Only "message" activities
// drive dialog progress; every other kind is ignored without touching state.
func (r *Router) HandleActivity(ctx context.Context, act domain.Activity) error {
	start := time.Now()

	if act.Kind != domain.ActivityMessage {
		r.logger.Debug("ignoring non-message activity",
			"kind", act.Kind,
			"conversation_id", act.ConversationID,
		)
		r.metrics.ObserveTurn(metrics.ResultIgnored, time.Since(start), 0)
		return nil
	}

	var sent int
	err := r.sessions.Turn(ctx, act.ConversationID, func(ctx context.Context, conv *domain.Conversation) error {
		turn := dialog.NewTurnContext(act, &conv.State, r.channel)
		if r.recognize != nil {
			turn.Local = r.recognize(act.Utterance)
		}

		responded, err := r.engine.ContinueTurn(ctx, turn, act.ConversationID, conv)
		if err != nil {
			return err
		}

		// No dialog consumed the turn: start the default dialog fresh.
		// This greets first-time conversations and re-presents the menu.
		if !responded {
			if err := r.engine.Begin(ctx, turn, act.ConversationID, conv, r.defaultDialog, nil); err != nil {
				return err
			}
		}

		sent = turn.Sent()
		return nil
	})

	if err != nil {
		r.logger.Error("turn failed",
			"conversation_id", act.ConversationID,
			"err", err,
		)
		r.metrics.ObserveTurn(metrics.ResultError, time.Since(start), sent)
		return err
	}

	r.metrics.ObserveTurn(metrics.ResultOK, time.Since(start), sent)
	return nil
}
