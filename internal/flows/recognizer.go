package flows

import (
	"regexp"

	"github.com/aretw0/picbot/pkg/domain"
)

// The keyword recognizer only fires on bare commands. Anything richer
// ("search for cats in hats") falls through to the external classifier,
// which can also extract the search facet.
var keywordPatterns = []struct {
	intent domain.Intent
	re     *regexp.Regexp
}{
	{domain.IntentSearchPics, regexp.MustCompile(`(?i)^\s*(search|find)( (pics|pictures|photos))?[.!?]*\s*$`)},
	{domain.IntentSharePic, regexp.MustCompile(`(?i)^\s*share( (pics|pictures|photos))?[.!?]*\s*$`)},
	{domain.IntentOrderPic, regexp.MustCompile(`(?i)^\s*order( (prints|pics|pictures))?[.!?]*\s*$`)},
	{domain.IntentHelp, regexp.MustCompile(`(?i)^\s*(help|\?)[.!?]*\s*$`)},
}

// Recognize runs the cheap keyword pre-classifier over an utterance.
// It returns nil when nothing matched confidently.
func Recognize(utterance string) *domain.Recognition {
	for _, p := range keywordPatterns {
		if p.re.MatchString(utterance) {
			return &domain.Recognition{
				Intent:    p.intent,
				TopIntent: string(p.intent),
				Score:     1.0,
			}
		}
	}
	return nil
}
