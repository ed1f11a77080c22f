package widgets

import (
	"fmt"
	"io"
	"sync"
)

// Toaster prints notices to a side channel, usually stderr, so command
// output on stdout stays clean.
type Toaster struct {
	mu    sync.Mutex
	w     io.Writer
	theme Theme
}

func NewToaster(w io.Writer, t Theme) *Toaster {
	return &Toaster{w: w, theme: t}
}

func (t *Toaster) Info(msg string) {
	t.print(t.theme.paint(t.theme.palette().info, "✓"), msg)
}

func (t *Toaster) Error(msg string) {
	t.print(t.theme.paint(t.theme.palette().errorC, "✗"), msg)
}

func (t *Toaster) print(mark, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s %s\n", mark, msg)
}
