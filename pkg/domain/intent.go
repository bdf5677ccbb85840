package domain

// Intent is the closed set of purposes the bot understands. The mapping from
// raw classifier intent names to this enum is isolated at the classifier
// adapter boundary; the dialogs never switch on raw strings.
type Intent string

const (
	// IntentNone is the classifier's explicit "nothing matched" intent.
	IntentNone Intent = "none"

	// IntentGreeting is a salutation with no actionable request.
	IntentGreeting Intent = "greeting"

	// IntentOrderPic asks for prints of pictures to be ordered.
	IntentOrderPic Intent = "order_pic"

	// IntentSharePic asks for pictures to be shared on social media.
	IntentSharePic Intent = "share_pic"

	// IntentSearchPics asks for a picture search.
	IntentSearchPics Intent = "search_pics"

	// IntentHelp asks what the bot can do. Only the keyword recognizer
	// produces it; the external classifier folds help requests into its
	// own intent set.
	IntentHelp Intent = "help"

	// IntentUnknown is any intent name outside the recognized set.
	IntentUnknown Intent = "unknown"
)

// Recognition is a classifier verdict for one utterance.
type Recognition struct {
	// Intent is the mapped top intent.
	Intent Intent

	// TopIntent is the provider's raw intent name. Empty means the
	// classifier returned no top intent at all.
	TopIntent string

	// Score is the confidence for the top intent, in [0, 1].
	Score float64

	// Entities maps an entity role name to the extracted string values.
	Entities map[string][]string
}
