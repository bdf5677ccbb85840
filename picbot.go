package picbot

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/picbot/internal/adapters/memory"
	"github.com/aretw0/picbot/internal/flows"
	"github.com/aretw0/picbot/internal/metrics"
	"github.com/aretw0/picbot/internal/runtime"
	"github.com/aretw0/picbot/pkg/dialog"
	"github.com/aretw0/picbot/pkg/domain"
	"github.com/aretw0/picbot/pkg/ports"
	"github.com/aretw0/picbot/pkg/session"
)

// Bot is the high-level entry point for the PicBot library.
// It wraps the internal runtime and provides a simplified API for hosts.
type Bot struct {
	router   *runtime.Router
	sessions *session.Manager
	registry *dialog.Registry

	store      ports.StateStore
	locker     ports.DistributedLocker
	channel    ports.OutputChannel
	classifier ports.Classifier
	searcher   ports.Searcher
	metrics    *metrics.Metrics
	logger     *slog.Logger
	extra      []*dialog.Waterfall
}

// Option defines a functional option for configuring the Bot.
type Option func(*Bot)

// WithStore injects a custom state store, bypassing the default in-memory
// store.
func WithStore(store ports.StateStore) Option {
	return func(b *Bot) {
		b.store = store
	}
}

// WithLocker enables distributed per-conversation locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(b *Bot) {
		b.locker = locker
	}
}

// WithChannel sets the outbound message channel. Required.
func WithChannel(channel ports.OutputChannel) Option {
	return func(b *Bot) {
		b.channel = channel
	}
}

// WithClassifier sets the external intent classifier. Without one,
// classification degrades to the confused-response path.
func WithClassifier(classifier ports.Classifier) Option {
	return func(b *Bot) {
		b.classifier = classifier
	}
}

// WithSearcher sets the picture-search adapter. Without one, searches
// degrade to the error message path.
func WithSearcher(searcher ports.Searcher) Option {
	return func(b *Bot) {
		b.searcher = searcher
	}
}

// WithMetrics sets the Prometheus metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Bot) {
		b.metrics = m
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// WithDialog registers an additional dialog alongside the built-in flows.
func WithDialog(w *dialog.Waterfall) Option {
	return func(b *Bot) {
		b.extra = append(b.extra, w)
	}
}

// New initializes a new Bot. The output channel is required; every other
// collaborator has a default or degrades gracefully.
func New(opts ...Option) (*Bot, error) {
	bot := &Bot{}

	for _, opt := range opts {
		opt(bot)
	}

	if bot.channel == nil {
		return nil, fmt.Errorf("picbot: an output channel is required")
	}
	if bot.store == nil {
		bot.store = memory.NewStore()
	}
	if bot.logger == nil {
		bot.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	bot.registry = dialog.NewRegistry()
	builtins := []*dialog.Waterfall{
		flows.NewMainDialog(bot.classifier, bot.logger),
		flows.NewSearchDialog(bot.searcher, bot.logger),
	}
	for _, w := range append(builtins, bot.extra...) {
		if err := bot.registry.Register(w); err != nil {
			return nil, err
		}
	}

	sessionOpts := []session.Option{session.WithLogger(bot.logger)}
	if bot.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(bot.locker))
	}
	bot.sessions = session.NewManager(bot.store, sessionOpts...)

	engine := runtime.NewEngine(bot.registry, bot.store,
		runtime.WithLogger(bot.logger),
		runtime.WithMetrics(bot.metrics),
	)

	bot.router = runtime.NewRouter(engine, bot.sessions, bot.channel, flows.MainDialogName,
		runtime.WithRouterLogger(bot.logger),
		runtime.WithRouterMetrics(bot.metrics),
		runtime.WithRecognizer(flows.Recognize),
	)

	return bot, nil
}

// HandleActivity processes one inbound activity through the turn router.
func (b *Bot) HandleActivity(ctx context.Context, act domain.Activity) error {
	return b.router.HandleActivity(ctx, act)
}

// Sessions returns the session manager for host-side administration.
func (b *Bot) Sessions() *session.Manager {
	return b.sessions
}

// Dialogs returns the names of all registered dialogs.
func (b *Bot) Dialogs() []string {
	return b.registry.Names()
}
