package ports

import (
	"context"

	"github.com/aretw0/picbot/pkg/domain"
)

// OutputChannel delivers outbound replies. The core consumes nothing from the
// send beyond success/failure; it tracks only whether a reply has been sent
// during the current turn.
type OutputChannel interface {
	Send(ctx context.Context, reply domain.Reply) error
}
