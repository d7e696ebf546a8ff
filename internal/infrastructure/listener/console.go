package listener

import (
	"context"
	"io"
	"os"
	"sync"

	domain "github.com/Zhima-Mochi/customer-events/internal/domain/customer"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Console prints one line per event, prefixed with its label.
type Console struct {
	label string

	mu      sync.Mutex
	out     io.Writer
	saved   *color.Color
	deleted *color.Color
}

// NewConsole writes to out (stdout when nil). Colour is only used when out is a terminal.
func NewConsole(out io.Writer, label string) *Console {
	if out == nil {
		out = os.Stdout
	}
	saved := color.New(color.FgGreen)
	deleted := color.New(color.FgRed)
	if isTerminal(out) {
		saved.EnableColor()
		deleted.EnableColor()
	} else {
		saved.DisableColor()
		deleted.DisableColor()
	}
	return &Console{
		label:   label,
		out:     out,
		saved:   saved,
		deleted: deleted,
	}
}

func (c *Console) CustomerSaved(_ context.Context, cust domain.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.saved.Fprintf(c.out, "[%s] customer saved: %s (%s)\n", c.label, cust.Name, cust.ID)
}

func (c *Console) CustomerDeleted(_ context.Context, cust domain.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = c.deleted.Fprintf(c.out, "[%s] customer deleted: %s (%s)\n", c.label, cust.Name, cust.ID)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
