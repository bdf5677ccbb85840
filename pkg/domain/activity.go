package domain

// ActivityKind discriminates inbound events. Only messages drive dialogs.
type ActivityKind string

const (
	// ActivityMessage is a user utterance addressed to the bot.
	ActivityMessage ActivityKind = "message"

	// ActivityEvent covers every other inbound event kind (typing
	// indicators, membership updates, ...). The router ignores these.
	ActivityEvent ActivityKind = "event"
)

// Activity is one inbound event as consumed by the turn router.
type Activity struct {
	Kind           ActivityKind `json:"kind"`
	Utterance      string       `json:"utterance"`
	ConversationID string       `json:"conversation_id"`
}

// Attachment is one rich-content item carried by a Reply.
type Attachment struct {
	Title    string            `json:"title"`
	ImageURL string            `json:"image_url"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Reply is one outbound message. Sending is fire-and-forget from the
// engine's perspective; the channel adapter owns delivery.
type Reply struct {
	ConversationID string       `json:"conversation_id"`
	Text           string       `json:"text"`
	Attachments    []Attachment `json:"attachments,omitempty"`
}

// SearchResult is one ranked hit returned by the search adapter.
type SearchResult struct {
	Title    string            `json:"title"`
	ImageURL string            `json:"image_url"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
