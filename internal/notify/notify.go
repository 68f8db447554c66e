// Package notify is the delivery boundary for user-facing alerts. The
// engine fires best-effort and never waits on or inspects delivery.
package notify

import (
	"fmt"
	"io"
)

// Notifier delivers a short alert. Implementations must not block the
// caller in any meaningful way and must swallow their own failures.
type Notifier interface {
	Send(title, body string)
}

// Noop discards everything.
type Noop struct{}

func (Noop) Send(string, string) {}

// Writer prints alerts to an io.Writer, one per line. Used by the CLI to
// surface unlocks and rank-ups inline.
type Writer struct {
	Out io.Writer
}

func (w Writer) Send(title, body string) {
	if w.Out == nil {
		return
	}
	if body == "" {
		fmt.Fprintln(w.Out, title)
		return
	}
	fmt.Fprintf(w.Out, "%s: %s\n", title, body)
}
