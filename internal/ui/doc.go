// Package ui implements the terminal interface: the start-time menu, the
// acknowledgment screens and the battery countdown.
//
// # Phases
//
//	PhaseMenu ──1/2/3──> PhaseResolving ──ok──> PhaseRunning (until ctrl+c)
//	    │                      └──error──> PhaseFailed ──enter──> quit (error)
//	    └──other key──> PhaseInvalid ──enter──> quit (clean)
//
// A startup error (for example a malformed settings file) opens directly on
// PhaseFailed.
//
// # Countdown
//
// The projection is computed once when the start time resolves. Each tick
// only re-reads the clock, so the countdown is the projected empty time minus
// now, clamped at zero. The remaining time is drawn in the danger color when
// four hours or fewer are left, next to a gauge of the share of projected
// runtime still available.
//
// Ticks arrive every DefaultRefreshInterval (5s) until the program exits. The
// program stops on ctrl+c or when the context passed to Run is cancelled.
//
// # Side Effects
//
// Start-time resolution runs inside a tea.Cmd because it touches the
// filesystem or the OS. The notifier rings once when the countdown starts;
// failures are logged and otherwise ignored.
package ui
