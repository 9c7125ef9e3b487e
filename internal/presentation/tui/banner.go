package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the qflow banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	lines := []struct{ text, color string }{
		{`        __ _               `, "#34d399"},
		{`   __ _/ _| | _____      __`, "#2dd4bf"},
		{`  / _' | |_| |/ _ \ \ /\ / /`, "#22d3ee"},
		{` | (_| |  _| | (_) \ V  V / `, "#38bdf8"},
		{`  \__, |_| |_|\___/ \_/\_/  `, "#60a5fa"},
		{`     |_|                    `, "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  version %s\n\n", strings.TrimSpace(version))
}
