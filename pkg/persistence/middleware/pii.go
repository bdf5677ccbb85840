package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/picbot/pkg/domain"
	"github.com/aretw0/picbot/pkg/ports"
)

// Mask replaces every pattern match in persisted text.
const Mask = "***"

type piiMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks pattern matches in the
// user-authored text of a record before it is persisted: the search term and
// any captured prompt answers. The in-memory record the engine works with is
// left untouched.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.StateStore) ports.StateStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, conversationID string, conv *domain.Conversation) error {
	// Clone before masking so the engine's working copy keeps the real text.
	cloned := *conv
	cloned.Stack = make(domain.DialogStack, len(conv.Stack))
	copy(cloned.Stack, conv.Stack)

	cloned.State.SearchTerm = m.mask(cloned.State.SearchTerm)
	for i := range cloned.Stack {
		if answer, ok := cloned.Stack[i].Result.(string); ok {
			cloned.Stack[i].Result = m.mask(answer)
		}
	}

	return m.next.Save(ctx, conversationID, &cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	return m.next.Load(ctx, conversationID)
}

func (m *piiMiddleware) Delete(ctx context.Context, conversationID string) error {
	return m.next.Delete(ctx, conversationID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) mask(s string) string {
	for _, p := range m.patterns {
		s = p.ReplaceAllString(s, Mask)
	}
	return s
}
