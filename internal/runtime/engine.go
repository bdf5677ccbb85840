// Package runtime implements the dialog orchestration core: the stack
// interpreter that advances waterfall dialogs and the turn router that
// drives it from inbound activities.
package runtime

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/aretw0/picbot/internal/logging"
	"github.com/aretw0/picbot/internal/metrics"
	"github.com/aretw0/picbot/pkg/dialog"
	"github.com/aretw0/picbot/pkg/domain"
	"github.com/aretw0/picbot/pkg/ports"
)

// Engine interprets the persisted dialog stack. A single inbound message may
// drive several step transitions synchronously (Next, Begin, End-resume)
// until a prompt suspends execution or the stack empties.
type Engine struct {
	registry *dialog.Registry
	store    ports.StateStore
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine creates the interpreter over a dialog registry and a store.
func NewEngine(registry *dialog.Registry, store ports.StateStore, opts ...EngineOption) *Engine {
	e := &Engine{
		registry: registry,
		store:    store,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ContinueTurn resumes the conversation's active dialog, if any.
// It reports whether any reply was sent while processing the stack.
func (e *Engine) ContinueTurn(ctx context.Context, turn *dialog.TurnContext, conversationID string, conv *domain.Conversation) (bool, error) {
	if len(conv.Stack) == 0 {
		return false, nil
	}
	if err := e.run(ctx, turn, conversationID, conv); err != nil {
		return turn.Responded(), err
	}
	return turn.Responded(), nil
}

// Begin pushes a fresh frame for the named dialog and runs the interpreter.
// Pushing is unconditional: re-entrant invocation of the same dialog name is
// legal and produces a new independent frame.
func (e *Engine) Begin(ctx context.Context, turn *dialog.TurnContext, conversationID string, conv *domain.Conversation, name string, args any) error {
	if _, ok := e.registry.Lookup(name); !ok {
		return fmt.Errorf("%w: %q", domain.ErrDialogNotRegistered, name)
	}

	conv.Push(domain.Frame{Dialog: name, Args: args})
	e.metrics.DialogStarted(name)
	if err := e.save(ctx, conversationID, conv); err != nil {
		return err
	}

	return e.run(ctx, turn, conversationID, conv)
}

// run is the interpreter loop. Every transition that changes the stack is
// persisted before the next step runs, so a mid-turn failure never loses
// progress already committed.
func (e *Engine) run(ctx context.Context, turn *dialog.TurnContext, conversationID string, conv *domain.Conversation) error {
	// Result handed back by a child dialog that just ended, consumed by the
	// parent's next step.
	var pending any

	for len(conv.Stack) > 0 {
		frame := conv.Top()

		w, ok := e.registry.Lookup(frame.Dialog)
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrDialogNotRegistered, frame.Dialog)
		}

		turn.Input = turn.Utterance()
		turn.Value = pending
		turn.Args = frame.Args
		pending = nil

		if frame.Awaiting {
			// The inbound message is the answer to the suspended prompt.
			frame.Awaiting = false
			frame.Result = turn.Input
			if err := e.save(ctx, conversationID, conv); err != nil {
				return err
			}
		}

		e.logger.Debug("advancing dialog",
			"conversation_id", conversationID,
			"dialog", frame.Dialog,
			"step", frame.Step,
		)

		result, err := w.Advance(ctx, turn, frame.Step)
		if err != nil {
			return fmt.Errorf("dialog %q step %d: %w", frame.Dialog, frame.Step, err)
		}

		switch result.Kind() {
		case dialog.KindNext:
			frame.Step++
			if err := e.save(ctx, conversationID, conv); err != nil {
				return err
			}

		case dialog.KindPrompt:
			if err := turn.SendText(ctx, result.Prompt().Text); err != nil {
				return err
			}
			// Persist the incremented index before returning, so a restart
			// resumes at the answer-consuming step.
			frame.Step++
			frame.Awaiting = true
			if err := e.save(ctx, conversationID, conv); err != nil {
				return err
			}
			return nil

		case dialog.KindBegin:
			if _, ok := e.registry.Lookup(result.Dialog()); !ok {
				return fmt.Errorf("%w: %q", domain.ErrDialogNotRegistered, result.Dialog())
			}
			conv.Push(domain.Frame{Dialog: result.Dialog(), Args: result.Args()})
			e.metrics.DialogStarted(result.Dialog())
			if err := e.save(ctx, conversationID, conv); err != nil {
				return err
			}

		case dialog.KindEnd:
			conv.Pop()
			if parent := conv.Top(); parent != nil {
				// Resume the caller at its next step, never the same one.
				parent.Step++
				pending = result.Value()
			}
			if err := e.save(ctx, conversationID, conv); err != nil {
				return err
			}

		default:
			return fmt.Errorf("dialog %q step %d: unknown result kind %d", frame.Dialog, frame.Step, result.Kind())
		}
	}

	return nil
}

// save persists the record. A failure here is fatal to the turn: the turn
// must not report success with stale state.
func (e *Engine) save(ctx context.Context, conversationID string, conv *domain.Conversation) error {
	if err := e.store.Save(ctx, conversationID, conv); err != nil {
		return fmt.Errorf("persist conversation %s: %w", conversationID, err)
	}
	return nil
}
