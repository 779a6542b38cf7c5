package cli

import (
	"fmt"
	"io"
	"sync"
)

// printNotifier writes store notifications to the terminal.
type printNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func newPrintNotifier(w io.Writer) *printNotifier {
	return &printNotifier{w: w}
}

func (p *printNotifier) Success(msg string) { p.print("ok", msg) }
func (p *printNotifier) Error(msg string)   { p.print("error", msg) }

func (p *printNotifier) print(level, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "[%s] %s\n", level, msg)
}
