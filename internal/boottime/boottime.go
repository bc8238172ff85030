// Package boottime reports when the operating system last booted.
package boottime

import (
	"errors"
	"time"
)

// ErrUnavailable is returned when the platform cannot report its boot time.
var ErrUnavailable = errors.New("boot time query unavailable")

// Provider reports the last system boot time.
type Provider interface {
	BootTime() (time.Time, error)
}

// System queries the running operating system.
type System struct{}

// BootTime returns the last boot time of the host.
func (System) BootTime() (time.Time, error) {
	return bootTime()
}

// Fixed is a Provider that always reports the same instant.
type Fixed time.Time

// BootTime returns the fixed instant.
func (f Fixed) BootTime() (time.Time, error) {
	return time.Time(f), nil
}
