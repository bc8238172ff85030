// Package source resolves the start time the battery projection is anchored to.
package source

import (
	"fmt"
	"time"

	"github.com/CSaratakij/G435BatteryApproximate/internal/boottime"
)

// Option is a menu choice.
type Option int

const (
	OptionInvalid Option = iota
	OptionBootTime
	OptionCachedTime
	OptionCurrentTime
)

// ParseOption maps a pressed key to an Option. Anything other than 1, 2 or 3
// is OptionInvalid.
func ParseOption(key string) Option {
	switch key {
	case "1":
		return OptionBootTime
	case "2":
		return OptionCachedTime
	case "3":
		return OptionCurrentTime
	default:
		return OptionInvalid
	}
}

// Valid reports whether o names a start-time source.
func (o Option) Valid() bool {
	return o >= OptionBootTime && o <= OptionCurrentTime
}

func (o Option) String() string {
	switch o {
	case OptionBootTime:
		return "boot time"
	case OptionCachedTime:
		return "last saved time"
	case OptionCurrentTime:
		return "current time"
	default:
		return "invalid"
	}
}

// Cache is the persisted start time.
type Cache interface {
	Save(t time.Time) error
	Load() (time.Time, error)
}

// Resolution is the outcome of resolving an Option.
type Resolution struct {
	Option Option
	Start  time.Time
	// SaveErr records a failed cache write for OptionCurrentTime. It never
	// fails the resolution.
	SaveErr error
}

// Resolver produces start times from the boot clock, the cache or now.
type Resolver struct {
	boot  boottime.Provider
	cache Cache
	now   func() time.Time
}

// NewResolver builds a Resolver. A nil now uses time.Now.
func NewResolver(boot boottime.Provider, cache Cache, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{boot: boot, cache: cache, now: now}
}

// FromBootTime returns the last system boot time.
func (r *Resolver) FromBootTime() (time.Time, error) {
	if r.boot == nil {
		return time.Time{}, fmt.Errorf("query boot time: %w", boottime.ErrUnavailable)
	}
	t, err := r.boot.BootTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("query boot time: %w", err)
	}
	return t, nil
}

// FromCache returns the last saved start time.
func (r *Resolver) FromCache() (time.Time, error) {
	t, err := r.cache.Load()
	if err != nil {
		return time.Time{}, fmt.Errorf("load last saved time: %w", err)
	}
	return t, nil
}

// FromNow returns the current wall-clock time.
func (r *Resolver) FromNow() time.Time {
	return r.now()
}

// Resolve dispatches o to its source. OptionCurrentTime also overwrites the
// cache with the returned time.
func (r *Resolver) Resolve(o Option) (Resolution, error) {
	res := Resolution{Option: o}
	var err error

	switch o {
	case OptionBootTime:
		res.Start, err = r.FromBootTime()
	case OptionCachedTime:
		res.Start, err = r.FromCache()
	case OptionCurrentTime:
		res.Start = r.FromNow()
		res.SaveErr = r.cache.Save(res.Start)
	default:
		err = fmt.Errorf("option %d not supported", int(o))
	}
	if err != nil {
		return Resolution{Option: o}, err
	}
	return res, nil
}
