package dialog

// Kind discriminates the control-flow directives a Step can return.
type Kind uint8

const (
	// KindNext advances to the following step within the same turn.
	KindNext Kind = iota

	// KindEnd pops the current frame. A parent frame, if any, resumes at
	// its next step synchronously within the same turn.
	KindEnd

	// KindBegin pushes a new frame for a named dialog at step zero. The
	// current frame's index stays unchanged, so the child's end resumes
	// the parent at the step after the one that began it.
	KindBegin

	// KindPrompt sends a question and suspends the dialog until the next
	// inbound message, which is fed back as the captured answer.
	KindPrompt
)

// PromptSpec describes a prompt to send before suspending.
type PromptSpec struct {
	Text string
}

// Result is the tagged directive driving the interpreter loop.
// Construct values with Next, End, Begin or Prompt.
type Result struct {
	kind   Kind
	value  any
	dialog string
	args   any
	prompt PromptSpec
}

// Next advances to the next step of the same dialog on this turn.
func Next() Result {
	return Result{kind: KindNext}
}

// End finishes the current dialog, handing value back to the caller frame.
func End(value any) Result {
	return Result{kind: KindEnd, value: value}
}

// Begin starts the named dialog as a nested invocation.
func Begin(name string, args any) Result {
	return Result{kind: KindBegin, dialog: name, args: args}
}

// Prompt sends the prompt message and suspends the turn.
func Prompt(spec PromptSpec) Result {
	return Result{kind: KindPrompt, prompt: spec}
}

// Kind reports which directive this result carries.
func (r Result) Kind() Kind { return r.kind }

// Value returns the value handed back by End.
func (r Result) Value() any { return r.value }

// Dialog returns the dialog name targeted by Begin.
func (r Result) Dialog() string { return r.dialog }

// Args returns the arguments passed by Begin.
func (r Result) Args() any { return r.args }

// Prompt returns the prompt specification carried by KindPrompt.
func (r Result) Prompt() PromptSpec { return r.prompt }
