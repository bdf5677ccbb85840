package ports

import (
	"context"

	"github.com/aretw0/picbot/pkg/domain"
)

// Classifier maps a raw utterance to a ranked intent, a confidence score and
// an entity bag. It is an external collaborator; the core consumes the result
// read-only and treats errors as "didn't understand", never as fatal.
type Classifier interface {
	Classify(ctx context.Context, utterance string) (*domain.Recognition, error)
}
