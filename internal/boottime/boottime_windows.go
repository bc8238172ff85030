//go:build windows

package boottime

import (
	"fmt"
	"time"

	"github.com/yusufpapurcu/wmi"
)

// operatingSystem mirrors the fields read from Win32_OperatingSystem.
type operatingSystem struct {
	LastBootUpTime time.Time
}

func bootTime() (time.Time, error) {
	var dst []operatingSystem
	query := `SELECT LastBootUpTime FROM Win32_OperatingSystem WHERE Status = "OK"`
	if err := wmi.Query(query, &dst); err != nil {
		return time.Time{}, fmt.Errorf("%w: WMI query failed: %v", ErrUnavailable, err)
	}
	if len(dst) == 0 {
		return time.Time{}, fmt.Errorf("%w: no operating system reported via WMI", ErrUnavailable)
	}
	return dst[len(dst)-1].LastBootUpTime, nil
}
