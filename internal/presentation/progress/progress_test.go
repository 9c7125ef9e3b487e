package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestBar_Plain(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf)

	b.Start(3, "Study")
	b.Advance(1)
	b.Advance(5)
	b.Finish()

	assert.Equal(t, "Study: 3 steps\nStudy: 3/3 done\n", buf.String())
}

func TestBar_Redraw(t *testing.T) {
	var buf bytes.Buffer
	b := &Bar{w: &buf, tty: true, width: 4, profile: termenv.Ascii}

	b.Start(2, "S")
	b.Advance(1)
	b.Finish()

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "\r"), "one redraw per call")
	assert.Contains(t, out, "\rS ██░░ 1/2")
	assert.True(t, strings.HasSuffix(out, "\rS ██░░ 1/2\n"))
}

func TestNop(t *testing.T) {
	b := Nop()
	b.Start(1, "x")
	b.Advance(1)
	b.Finish()
}
