package ports

import (
	"context"

	"github.com/aretw0/picbot/pkg/domain"
)

// Searcher maps a query string to an ordered result list.
// An empty slice is a valid, non-error result.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)
}
