package dialog

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/picbot/pkg/domain"
	"github.com/aretw0/picbot/pkg/ports"
)

// ErrNoChannel is returned when a step tries to reply but the turn was built
// without an output channel.
var ErrNoChannel = errors.New("no output channel configured")

// TurnContext is the ephemeral, per-invocation context handed to each step.
// It is never persisted; everything that must survive the turn lives in the
// conversation record.
type TurnContext struct {
	// Activity is the inbound event driving this turn.
	Activity domain.Activity

	// State is the mutable per-conversation state. Mutations are persisted
	// by the runtime on the next stack transition.
	State *domain.ConversationState

	// Input is the text driving the current step: the raw utterance, or the
	// captured prompt answer when resuming from a suspended prompt.
	Input string

	// Value is the result handed back by a child dialog that just ended,
	// if the current step is a synchronous resumption.
	Value any

	// Args carries the arguments the active frame was begun with.
	Args any

	// Local is the cheap keyword recognizer's verdict for the utterance,
	// attached by the router before any dialog runs. Nil when nothing
	// matched.
	Local *domain.Recognition

	channel ports.OutputChannel
	sent    int
}

// NewTurnContext builds the context for one turn.
func NewTurnContext(act domain.Activity, state *domain.ConversationState, channel ports.OutputChannel) *TurnContext {
	return &TurnContext{
		Activity: act,
		State:    state,
		Input:    act.Utterance,
		channel:  channel,
	}
}

// Utterance returns the raw inbound message text.
func (t *TurnContext) Utterance() string {
	return t.Activity.Utterance
}

// Send delivers a reply on the turn's conversation and records that this
// turn has responded.
func (t *TurnContext) Send(ctx context.Context, reply domain.Reply) error {
	if t.channel == nil {
		return ErrNoChannel
	}
	reply.ConversationID = t.Activity.ConversationID
	if err := t.channel.Send(ctx, reply); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	t.sent++
	return nil
}

// SendText delivers a plain text reply.
func (t *TurnContext) SendText(ctx context.Context, text string) error {
	return t.Send(ctx, domain.Reply{Text: text})
}

// Responded reports whether any reply has been sent during this turn.
func (t *TurnContext) Responded() bool {
	return t.sent > 0
}

// Sent returns the number of replies sent during this turn.
func (t *TurnContext) Sent() int {
	return t.sent
}
