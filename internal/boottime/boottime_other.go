//go:build !linux && !windows && !darwin

package boottime

import (
	"fmt"
	"runtime"
	"time"
)

func bootTime() (time.Time, error) {
	return time.Time{}, fmt.Errorf("%w on %s", ErrUnavailable, runtime.GOOS)
}
