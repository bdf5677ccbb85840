package memory

import (
	"context"
	"sync"

	"github.com/aretw0/picbot/pkg/domain"
)

// Channel implements ports.OutputChannel by capturing replies in memory.
type Channel struct {
	mu      sync.Mutex
	replies []domain.Reply
}

// NewChannel creates an empty capturing channel.
func NewChannel() *Channel {
	return &Channel{}
}

// Send records the reply.
func (c *Channel) Send(ctx context.Context, reply domain.Reply) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies = append(c.replies, reply)
	return nil
}

// Replies returns a copy of everything sent so far.
func (c *Channel) Replies() []domain.Reply {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Reply, len(c.replies))
	copy(out, c.replies)
	return out
}

// Texts returns just the text of everything sent so far.
func (c *Channel) Texts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.replies))
	for i, r := range c.replies {
		out[i] = r.Text
	}
	return out
}

// Reset discards the captured replies.
func (c *Channel) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies = nil
}
