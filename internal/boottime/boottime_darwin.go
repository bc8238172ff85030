//go:build darwin

package boottime

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

func bootTime() (time.Time, error) {
	tv, err := unix.SysctlTimeval("kern.boottime")
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: sysctl kern.boottime: %v", ErrUnavailable, err)
	}
	return time.Unix(int64(tv.Sec), int64(tv.Usec)*int64(time.Microsecond)), nil
}
