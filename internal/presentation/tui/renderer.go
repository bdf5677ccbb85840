package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/picbot/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// When the renderer cannot be constructed the returned function passes text
// through unchanged.
func NewRenderer() func(string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) string { return markdown }
	}

	return func(markdown string) string {
		rendered, err := r.Render(markdown)
		if err != nil {
			return markdown
		}
		return strings.TrimRight(rendered, "\n")
	}
}

// FormatReply turns a bot reply into markdown: the text, then one link line
// per attachment.
func FormatReply(reply domain.Reply) string {
	var sb strings.Builder
	sb.WriteString(reply.Text)
	for _, att := range reply.Attachments {
		sb.WriteString(fmt.Sprintf("\n- [%s](%s)", att.Title, att.ImageURL))
	}
	return sb.String()
}
