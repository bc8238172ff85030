package ui

import "time"

// Timing constants.
const (
	// DefaultRefreshInterval is the delay between countdown redraws.
	DefaultRefreshInterval = 5 * time.Second
)

// Rendering constants.
const (
	// TimestampLayout formats the projected empty-battery time.
	TimestampLayout = "2006-01-02 15:04:05"

	// GaugeWidth is the width of the charge gauge in cells.
	GaugeWidth = 40

	// GaugeMinWidth is the narrowest gauge drawn on small terminals.
	GaugeMinWidth = 10
)
