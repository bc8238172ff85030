// Package estimate projects when the headset battery runs out.
//
// All functions are pure. Settings are normalized at use time: hours take
// their absolute value, percentages take their absolute value and are capped
// at 100. The projected offset is whole hours, truncated toward zero, so
// small settings may add no time at all.
package estimate

import (
	"math"
	"time"

	"github.com/CSaratakij/G435BatteryApproximate/internal/config"
)

// LowHours is the remaining-hours threshold at which the countdown is shown
// as a warning.
const LowHours = 4

// maxHours is the largest hour count a time.Duration can hold.
const maxHours = math.MaxInt64 / int64(time.Hour)

// Countdown is a remaining duration split for display.
type Countdown struct {
	Hours   int
	Minutes int
	Seconds int
}

// ApproximateHours returns floor(|hours| * health% * correction%), where both
// percentages are clamped to [0,100].
func ApproximateHours(hours, correctionPercent, healthPercent int) int {
	h := absInt64(int64(hours))
	if h > maxHours {
		h = maxHours
	}
	c := int64(ClampPercent(correctionPercent))
	p := int64(ClampPercent(healthPercent))
	return int(h * p * c / 10000)
}

// Project returns the approximate time the battery is empty when fully
// charged at start.
func Project(start time.Time, s config.Settings) time.Time {
	hours := ApproximateHours(s.UsageHours, s.CorrectionPercent, s.HealthPercent)
	return start.Add(time.Duration(hours) * time.Hour)
}

// ClampPercent returns |v| capped at 100.
func ClampPercent(v int) int {
	a := absInt64(int64(v))
	if a > 100 {
		return 100
	}
	return int(a)
}

// Remaining returns the time left until the projection, never negative.
func Remaining(until, now time.Time) time.Duration {
	left := until.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Split breaks d into whole hours, minutes and seconds.
func Split(d time.Duration) Countdown {
	if d < 0 {
		d = 0
	}
	return Countdown{
		Hours:   int(d / time.Hour),
		Minutes: int(d % time.Hour / time.Minute),
		Seconds: int(d % time.Minute / time.Second),
	}
}

// IsLow reports whether the remaining whole hours are at or below LowHours.
func IsLow(d time.Duration) bool {
	return Split(d).Hours <= LowHours
}

// Fraction returns the share of the projected runtime still left at now, in
// [0,1]. A zero-length projection reports 0.
func Fraction(start, until, now time.Time) float64 {
	total := until.Sub(start)
	if total <= 0 {
		return 0
	}
	f := float64(Remaining(until, now)) / float64(total)
	if f > 1 {
		return 1
	}
	return f
}

func absInt64(v int64) int64 {
	if v < 0 {
		if v == math.MinInt64 {
			return math.MaxInt64
		}
		return -v
	}
	return v
}
