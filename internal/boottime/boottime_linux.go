//go:build linux

package boottime

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const procStatPath = "/proc/stat"

func bootTime() (time.Time, error) {
	f, err := os.Open(procStatPath)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: open %s: %v", ErrUnavailable, procStatPath, err)
	}
	defer f.Close()

	return parseProcStat(f)
}

// parseProcStat extracts the btime line (seconds since the epoch).
func parseProcStat(r io.Reader) (time.Time, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "btime ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		sec, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: parse btime %q: %v", ErrUnavailable, fields[1], err)
		}
		return time.Unix(sec, 0), nil
	}
	if err := scanner.Err(); err != nil {
		return time.Time{}, fmt.Errorf("%w: read %s: %v", ErrUnavailable, procStatPath, err)
	}
	return time.Time{}, fmt.Errorf("%w: no btime entry in %s", ErrUnavailable, procStatPath)
}
