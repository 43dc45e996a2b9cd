package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"       _ _      ",
	"   ___| (_) ___ ",
	"  / __| | |/ __|",
	" | (__| | | (__ ",
	"  \\___|_|_|\\___|",
}

// Subtle gradient (Teal/Cyan), one color per line.
var bannerColors = []string{"#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa", "#818cf8"}

// PrintBanner writes the ASCII art banner and the version to w.
// Colors degrade to the profile of w, so a pipe gets plain text.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(bannerColors[i])))
	}
	fmt.Fprintln(w, out.String(fmt.Sprintf("  v%s  type 'help', 'list' or 'exit'", strings.TrimSpace(version))).Faint())
	fmt.Fprintln(w)
}
