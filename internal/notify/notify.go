// Package notify plays the one-shot alert shown when the countdown starts.
package notify

import (
	"fmt"
	"io"
)

// Notifier emits an audible notification.
type Notifier interface {
	Notify() error
}

// Bell rings the terminal bell by writing BEL to Out.
type Bell struct {
	Out io.Writer
}

// Notify writes a single BEL character.
func (b Bell) Notify() error {
	if b.Out == nil {
		return nil
	}
	if _, err := io.WriteString(b.Out, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

// Func adapts a plain function to Notifier.
type Func func() error

// Notify calls f.
func (f Func) Notify() error {
	return f()
}
