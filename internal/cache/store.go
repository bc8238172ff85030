// Package cache persists the last chosen start time to a single file.
package cache

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultCachePath = "cache"

	// Layout is the on-disk timestamp format. RFC 3339 parsing accepts any
	// fractional precision, so Load also reads 7-digit round-trip strings.
	Layout = time.RFC3339Nano
)

var (
	// ErrNotFound is returned by Load when no cache file exists.
	ErrNotFound = errors.New("cache file not found")
	// ErrInvalid is returned by Load when the file holds no valid timestamp.
	ErrInvalid = errors.New("cache file holds no valid timestamp")
)

// Store reads and writes the cached start time. It is not safe for
// concurrent use across processes.
type Store struct {
	path string
}

// New returns a store backed by path. An empty path uses "cache" in the
// working directory.
func New(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: resolved}, nil
}

// Path returns the absolute path of the cache file.
func (s *Store) Path() string {
	return s.path
}

// Save overwrites the cache file with t in UTC.
func (s *Store) Save(t time.Time) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(t.UTC().Format(Layout)), 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Load returns the cached start time.
func (s *Store) Load() (time.Time, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return time.Time{}, fmt.Errorf("open cache: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return time.Time{}, fmt.Errorf("read cache: %w", err)
	}
	return Parse(string(bytes))
}

// Parse decodes a cached timestamp, ignoring surrounding whitespace and
// trailing NUL padding.
func Parse(raw string) (time.Time, error) {
	text := strings.TrimSpace(strings.TrimRight(raw, "\x00"))
	if text == "" {
		return time.Time{}, fmt.Errorf("%w: file is empty", ErrInvalid)
	}
	t, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return t, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultCachePath
	}
	return filepath.Abs(strings.TrimSpace(path))
}
