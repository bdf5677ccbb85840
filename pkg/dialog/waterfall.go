package dialog

import (
	"context"
	"fmt"
)

// Step is one unit of dialog logic, invoked once per advance.
type Step func(ctx context.Context, turn *TurnContext) (Result, error)

// Waterfall is a named, ordered sequence of steps that advances one step per
// invocation.
type Waterfall struct {
	name  string
	steps []Step
}

// NewWaterfall builds a waterfall dialog from its steps.
func NewWaterfall(name string, steps ...Step) *Waterfall {
	return &Waterfall{name: name, steps: steps}
}

// Name returns the dialog's stable registered name.
func (w *Waterfall) Name() string { return w.name }

// Len returns the number of steps.
func (w *Waterfall) Len() int { return len(w.steps) }

// Advance invokes the step at the given index. An index equal to the step
// count means the dialog ran off its end and behaves as End(nil).
func (w *Waterfall) Advance(ctx context.Context, turn *TurnContext, step int) (Result, error) {
	if step < 0 || step > len(w.steps) {
		return Result{}, fmt.Errorf("dialog %q: step index %d out of range [0..%d]", w.name, step, len(w.steps))
	}
	if step == len(w.steps) {
		return End(nil), nil
	}
	return w.steps[step](ctx, turn)
}
