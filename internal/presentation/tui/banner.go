package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{"                    _         ", "#818cf8"},
		{"  _   _ _ __   __ _| |__  ___ ", "#a78bfa"},
		{" | | | | '_ \\ / _` | '_ \\/ __|", "#c084fc"},
		{" | |_| | | | | (_| | |_) \\__ \\", "#e879f9"},
		{"  \\__,_|_| |_|\\__,_|_.__/|___/", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
