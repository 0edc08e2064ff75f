package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the crema ASCII banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Roast gradient, light crema to dark espresso.
	lines := []struct {
		text  string
		color string
	}{
		{"   ___ _ __ ___ _ __ ___   __ _ ", "#f5deb3"},
		{"  / __| '__/ _ \\ '_ ` _ \\ / _` |", "#deb887"},
		{" | (__| | |  __/ | | | | | (_| |", "#c08552"},
		{"  \\___|_|  \\___|_| |_| |_|\\__,_|", "#8b5a2b"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, termenv.String("  stages -> phases  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
