package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const defaultWidth = 30

// Bar reports progress of a sequence of API calls. On a terminal it redraws
// a colored bar in place; elsewhere it writes one line when the work starts
// and one when it ends. Safe for concurrent use.
type Bar struct {
	mu      sync.Mutex
	w       io.Writer
	tty     bool
	width   int
	profile termenv.Profile
	label   string
	total   int
	done    int
}

// New creates a bar writing to w.
func New(w io.Writer) *Bar {
	b := &Bar{w: w, width: defaultWidth, profile: termenv.Ascii}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b.tty = true
		b.profile = termenv.EnvColorProfile()
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			b.width = min(defaultWidth, max(10, cols/3))
		}
	}
	return b
}

// Nop returns a bar that writes nothing.
func Nop() *Bar {
	return &Bar{w: io.Discard, width: defaultWidth, profile: termenv.Ascii}
}

// Start resets the bar for total steps.
func (b *Bar) Start(total int, label string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.total, b.done, b.label = total, 0, label
	if b.tty {
		b.draw()
		return
	}
	fmt.Fprintf(b.w, "%s: %d steps\n", label, total)
}

// Advance moves the bar n steps forward.
func (b *Bar) Advance(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.done = min(b.total, b.done+n)
	if b.tty {
		b.draw()
	}
}

// Finish ends the bar's line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tty {
		b.draw()
		fmt.Fprintln(b.w)
		return
	}
	fmt.Fprintf(b.w, "%s: %d/%d done\n", b.label, b.done, b.total)
}

func (b *Bar) draw() {
	filled := 0
	if b.total > 0 {
		filled = b.width * b.done / b.total
	}
	bar := b.profile.String(strings.Repeat("█", filled)).Foreground(b.profile.Color("#34d399")).String() +
		b.profile.String(strings.Repeat("░", b.width-filled)).Faint().String()
	fmt.Fprintf(b.w, "\r%s %s %d/%d", b.label, bar, b.done, b.total)
}
