package flows

import (
	"testing"

	"github.com/aretw0/picbot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognize(t *testing.T) {
	cases := []struct {
		utterance string
		intent    domain.Intent
	}{
		{"search", domain.IntentSearchPics},
		{"Search", domain.IntentSearchPics},
		{"  find pictures ", domain.IntentSearchPics},
		{"search photos!", domain.IntentSearchPics},
		{"share", domain.IntentSharePic},
		{"share pics", domain.IntentSharePic},
		{"order", domain.IntentOrderPic},
		{"ORDER PRINTS", domain.IntentOrderPic},
		{"help", domain.IntentHelp},
		{"?", domain.IntentHelp},
	}
	for _, tc := range cases {
		t.Run(tc.utterance, func(t *testing.T) {
			rec := Recognize(tc.utterance)
			require.NotNil(t, rec)
			assert.Equal(t, tc.intent, rec.Intent)
			assert.Equal(t, 1.0, rec.Score)
		})
	}
}

// Utterances with any substance beyond the bare command must fall through to
// the external classifier, which can also extract the search facet.
func TestRecognize_RichUtterancesFallThrough(t *testing.T) {
	for _, utterance := range []string{
		"search for cats",
		"find me pictures of mountains",
		"please share my vacation photos",
		"can you help me order prints",
		"hello",
		"",
	} {
		assert.Nil(t, Recognize(utterance), "utterance %q", utterance)
	}
}
