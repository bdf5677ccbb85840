// Package tui renders the bot's terminal surface: the startup banner and
// reply formatting for the interactive chat.
package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the PicBot ASCII art banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Subtle gradient, cool to warm.
	lines := []struct {
		text  string
		color string
	}{
		{`  ____  _      ____        _   `, "#818cf8"},
		{` |  _ \(_) ___| __ )  ___ | |_ `, "#a78bfa"},
		{` | |_) | |/ __|  _ \ / _ \| __|`, "#c084fc"},
		{` |  __/| | (__| |_) | (_) | |_ `, "#e879f9"},
		{` |_|   |_|\___|____/ \___/ \__|`, "#f472b6"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}
