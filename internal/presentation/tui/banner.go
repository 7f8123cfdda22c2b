package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Regula ASCII art banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct{ text, color string }{
		{"  ____                  _       ", "#818cf8"},
		{" |  _ \\ ___  __ _ _   _| | __ _ ", "#a78bfa"},
		{" | |_) / _ \\/ _` | | | | |/ _` |", "#c084fc"},
		{" |  _ <  __/ (_| | |_| | | (_| |", "#e879f9"},
		{" |_| \\_\\___|\\__, |\\__,_|_|\\__,_|", "#f472b6"},
		{"            |___/               ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status renders a one-line outcome, green on success and red otherwise.
func Status(ok bool, msg string) string {
	p := termenv.ColorProfile()
	if ok {
		return termenv.String("✔ " + msg).Foreground(p.Color("#22c55e")).Bold().String()
	}
	return termenv.String("✘ " + msg).Foreground(p.Color("#ef4444")).Bold().String()
}
