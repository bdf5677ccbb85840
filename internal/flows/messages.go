// Package flows contains the built-in PicBot dialogs: the main
// intent-routing dialog and the two-step search dialog, plus the cheap
// keyword recognizer that runs before the external classifier.
package flows

import "fmt"

// Registered dialog names.
const (
	MainDialogName   = "mainDialog"
	SearchDialogName = "searchDialog"
)

// Canned bot messages.
const (
	WelcomeMessage  = "Hi there! I'm PicBot, your personal picture assistant."
	HelpMessage     = "I can search for pictures, share them on social media, or order prints. Just tell me what you'd like to do."
	OrderMessage    = "Great, your prints are on their way!"
	ShareMessage    = "Alright, I've posted your pictures to your feed."
	ConfusedMessage = "I'm sorry, I didn't understand that. Try asking me to search, share, or order pictures."
	SearchPrompt    = "What would you like to search for?"
	SearchFailed    = "Something went wrong while searching. Please try again in a bit."
)

// ScoreMessage reports the classifier's confidence for diagnostics.
func ScoreMessage(score float64) string {
	return fmt.Sprintf("Intent confidence: %.2f.", score)
}

// NoIntentMessage is the confused message for an explicit "None" verdict,
// carrying the raw score for diagnostics.
func NoIntentMessage(score float64) string {
	return fmt.Sprintf("%s (no intent matched, score %.2f)", ConfusedMessage, score)
}

// SearchingMessage confirms the search about to run.
func SearchingMessage(term string) string {
	return fmt.Sprintf("Ok, searching for pictures of %s...", term)
}

// NoResultsMessage reports an empty result list.
func NoResultsMessage(term string) string {
	return fmt.Sprintf("I couldn't find any pictures of %s.", term)
}

// ResultsMessage heads the ranked result list.
func ResultsMessage(term string) string {
	return fmt.Sprintf("Here's what I found for %s:", term)
}
