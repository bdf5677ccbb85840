package domain

// ConversationState is the small persisted record the dialogs read and write.
// It is created lazily on the first turn of a conversation and never deleted.
type ConversationState struct {
	// Greeted is set once the welcome message has been delivered.
	Greeted bool `json:"greeted"`

	// SearchTerm is a pre-filled or prompted search query. Non-empty implies
	// a search dialog is in progress or about to start.
	SearchTerm string `json:"search_term"`

	// AwaitingSearchInput marks that the search dialog either already holds a
	// term or has asked the user for one.
	AwaitingSearchInput bool `json:"awaiting_search_input"`
}

// Frame identifies one active dialog invocation on the stack.
type Frame struct {
	// Dialog is the name of a registered waterfall dialog.
	Dialog string `json:"dialog"`

	// Step is the index of the step to run next. It is always a valid index
	// into the dialog's step sequence, or equal to the sequence length,
	// meaning "about to end".
	Step int `json:"step"`

	// Awaiting is true while the frame is suspended on a prompt. The next
	// inbound message is treated as the prompt's answer.
	Awaiting bool `json:"awaiting,omitempty"`

	// Result is an opaque slot holding the captured prompt answer.
	Result any `json:"result,omitempty"`

	// Args carries the arguments the dialog was begun with, if any.
	Args any `json:"args,omitempty"`
}

// DialogStack is the ordered set of active dialog invocations.
// The last element is the active frame. Pushing begins a nested dialog;
// popping ends the current one and resumes the caller at its next step.
type DialogStack []Frame

// Conversation is the full persisted record for one conversation. It is
// checked out for the duration of a single turn and written back on every
// transition that changes it.
type Conversation struct {
	State ConversationState `json:"state"`
	Stack DialogStack       `json:"stack"`
}

// NewConversation returns a fresh record with default state and an empty stack.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Top returns a pointer to the active frame, or nil if the stack is empty.
func (c *Conversation) Top() *Frame {
	if len(c.Stack) == 0 {
		return nil
	}
	return &c.Stack[len(c.Stack)-1]
}

// Push begins a new dialog invocation on top of the stack.
func (c *Conversation) Push(f Frame) {
	c.Stack = append(c.Stack, f)
}

// Pop removes the active frame. It is a no-op on an empty stack.
func (c *Conversation) Pop() {
	if len(c.Stack) == 0 {
		return
	}
	c.Stack = c.Stack[:len(c.Stack)-1]
}
