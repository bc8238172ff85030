package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CSaratakij/G435BatteryApproximate/internal/boottime"
	"github.com/CSaratakij/G435BatteryApproximate/internal/cache"
	"github.com/CSaratakij/G435BatteryApproximate/internal/config"
	"github.com/CSaratakij/G435BatteryApproximate/internal/notify"
	"github.com/CSaratakij/G435BatteryApproximate/internal/source"
)

type fakeResolver struct {
	calls []source.Option
	res   source.Resolution
	err   error
}

func (f *fakeResolver) Resolve(o source.Option) (source.Resolution, error) {
	f.calls = append(f.calls, o)
	if f.err != nil {
		return source.Resolution{Option: o}, f.err
	}
	res := f.res
	res.Option = o
	return res, nil
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want ui.Model", next)
	}
	return model, cmd
}

// resolve presses key and feeds the resolution command result back in.
func resolve(t *testing.T, m Model, r rune) (Model, tea.Cmd) {
	t.Helper()
	m, cmd := update(t, m, runeKey(r))
	if m.Phase() != PhaseResolving {
		t.Fatalf("Phase after %q = %v, want PhaseResolving", r, m.Phase())
	}
	if cmd == nil {
		t.Fatalf("no resolve command returned for %q", r)
	}
	got := cmd()
	msg, ok := got.(resolvedMsg)
	if !ok {
		t.Fatalf("resolve command returned %T, want resolvedMsg", got)
	}
	return update(t, m, msg)
}

func TestMenu_ShowsOptions(t *testing.T) {
	view := New(Options{}).View()
	for _, needle := range []string{
		"Approximate G435 battery life, assume battery full charge",
		"1) Calculate from system boot time",
		"2) Calculate from last saved time",
		"3) Calculate from current time (overwrite last saved time)",
		"Option :",
	} {
		if !strings.Contains(view, needle) {
			t.Fatalf("menu view missing %q:\n%s", needle, view)
		}
	}
}

func TestInvalidOption_AcknowledgeQuitsWithoutResolving(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache")
	store, err := cache.New(cachePath)
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	resolver := source.NewResolver(boottime.Fixed(time.Now()), store, nil)
	m := New(Options{Resolver: resolver, Settings: config.Defaults()})

	m, cmd := update(t, m, runeKey('q'))
	if cmd != nil {
		t.Fatalf("invalid key returned a command, want none")
	}
	if m.Phase() != PhaseInvalid {
		t.Fatalf("Phase = %v, want PhaseInvalid", m.Phase())
	}
	view := m.View()
	if !strings.Contains(view, "Error : option number q not found...") {
		t.Fatalf("view missing unsupported option message:\n%s", view)
	}
	if !strings.Contains(view, "Press 'Enter' to quit...") {
		t.Fatalf("view missing acknowledgment prompt:\n%s", view)
	}

	// Other keys do not acknowledge.
	m, cmd = update(t, m, runeKey('1'))
	if isQuit(t, cmd) || m.Phase() != PhaseInvalid {
		t.Fatalf("non-enter key left the invalid screen")
	}

	m, cmd = update(t, m, enterKey())
	if !isQuit(t, cmd) {
		t.Fatalf("enter did not quit")
	}
	if m.Err() != nil {
		t.Fatalf("Err = %v, want nil for unsupported option", m.Err())
	}
	if _, err := os.Stat(cachePath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("cache file stat error = %v, want not exist", err)
	}
}

func TestValidOption_StartsCountdown(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(time.Hour + 2*time.Minute + 3*time.Second)

	rings := 0
	resolver := &fakeResolver{res: source.Resolution{Start: start}}
	m := New(Options{
		Settings:     config.Defaults(),
		Resolver:     resolver,
		Notifier:     notify.Func(func() error { rings++; return nil }),
		Now:          func() time.Time { return now },
		RefreshEvery: time.Millisecond,
	})

	m, cmd := resolve(t, m, '2')
	if len(resolver.calls) != 1 || resolver.calls[0] != source.OptionCachedTime {
		t.Fatalf("resolver calls = %v, want [OptionCachedTime]", resolver.calls)
	}
	if m.Phase() != PhaseRunning {
		t.Fatalf("Phase = %v, want PhaseRunning", m.Phase())
	}
	if cmd == nil {
		t.Fatalf("running phase returned no commands")
	}

	gotStart, gotUntil := m.Projection()
	if !gotStart.Equal(start) {
		t.Fatalf("start = %v, want %v", gotStart, start)
	}
	wantUntil := time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)
	if !gotUntil.Equal(wantUntil) {
		t.Fatalf("until = %v, want %v", gotUntil, wantUntil)
	}

	view := m.View()
	wantHeader := "G435 will approximately work until : " + wantUntil.Local().Format(TimestampLayout)
	if !strings.Contains(view, wantHeader) {
		t.Fatalf("view missing %q:\n%s", wantHeader, view)
	}
	if !strings.Contains(view, "(15h 57m 57s left)") {
		t.Fatalf("view missing countdown:\n%s", view)
	}
	if !strings.Contains(view, "Press 'Ctrl+C' to quit...") {
		t.Fatalf("view missing quit hint:\n%s", view)
	}

	got := cmd()
	batch, ok := got.(tea.BatchMsg)
	if !ok {
		t.Fatalf("running command returned %T, want tea.BatchMsg", got)
	}
	ticks := 0
	for _, c := range batch {
		if c == nil {
			continue
		}
		if _, isTick := c().(tickMsg); isTick {
			ticks++
		}
	}
	if rings != 1 {
		t.Fatalf("notifier rings = %d, want 1", rings)
	}
	if ticks != 1 {
		t.Fatalf("scheduled ticks = %d, want 1", ticks)
	}
}

func TestTick_UpdatesCountdownAndReschedules(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	resolver := &fakeResolver{res: source.Resolution{Start: start}}
	m := New(Options{
		Settings: config.Defaults(),
		Resolver: resolver,
		Now:      func() time.Time { return start },
	})
	m, _ = resolve(t, m, '3')

	m, cmd := update(t, m, tickMsg(start.Add(13*time.Hour)))
	if cmd == nil {
		t.Fatalf("tick did not schedule the next tick")
	}
	view := m.View()
	if !strings.Contains(view, "(4h 0m 0s left)") {
		t.Fatalf("view missing countdown after tick:\n%s", view)
	}
	if !strings.Contains(view, "~24%") {
		t.Fatalf("view missing charge estimate:\n%s", view)
	}

	m, _ = update(t, m, tickMsg(start.Add(30*time.Hour)))
	if !strings.Contains(m.View(), "(0h 0m 0s left)") {
		t.Fatalf("countdown should clamp at zero:\n%s", m.View())
	}
}

func TestTick_IgnoredOutsideRunning(t *testing.T) {
	m := New(Options{})
	m, cmd := update(t, m, tickMsg(time.Now()))
	if cmd != nil {
		t.Fatalf("tick in menu returned a command")
	}
	if m.Phase() != PhaseMenu {
		t.Fatalf("Phase = %v, want PhaseMenu", m.Phase())
	}
}

func TestResolveFailure_ShowsErrorAndReturnsIt(t *testing.T) {
	resolver := &fakeResolver{err: cache.ErrNotFound}
	m := New(Options{Settings: config.Defaults(), Resolver: resolver})

	m, _ = resolve(t, m, '2')
	if m.Phase() != PhaseFailed {
		t.Fatalf("Phase = %v, want PhaseFailed", m.Phase())
	}
	if !strings.Contains(m.View(), cache.ErrNotFound.Error()) {
		t.Fatalf("view missing error:\n%s", m.View())
	}

	m, cmd := update(t, m, enterKey())
	if !isQuit(t, cmd) {
		t.Fatalf("enter did not quit")
	}
	if !errors.Is(m.Err(), cache.ErrNotFound) {
		t.Fatalf("Err = %v, want ErrNotFound", m.Err())
	}
}

func TestStartupError_SkipsMenu(t *testing.T) {
	startupErr := errors.New("parse config: bad")
	m := New(Options{StartupErr: startupErr})

	if m.Phase() != PhaseFailed {
		t.Fatalf("Phase = %v, want PhaseFailed", m.Phase())
	}
	view := m.View()
	if strings.Contains(view, "Choose options") {
		t.Fatalf("startup error view should not show the menu:\n%s", view)
	}
	if !strings.Contains(view, "parse config: bad") {
		t.Fatalf("view missing startup error:\n%s", view)
	}

	m, _ = update(t, m, runeKey('1'))
	if m.Phase() != PhaseFailed {
		t.Fatalf("menu key on error screen changed phase to %v", m.Phase())
	}
	if !errors.Is(m.Err(), startupErr) {
		t.Fatalf("Err = %v, want startup error", m.Err())
	}
}

func TestCtrlC_QuitsFromAnyPhase(t *testing.T) {
	ctrlC := tea.KeyMsg{Type: tea.KeyCtrlC}

	m := New(Options{})
	if _, cmd := update(t, m, ctrlC); !isQuit(t, cmd) {
		t.Fatalf("ctrl+c in menu did not quit")
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m = New(Options{
		Settings: config.Defaults(),
		Resolver: &fakeResolver{res: source.Resolution{Start: start}},
		Now:      func() time.Time { return start },
	})
	m, _ = resolve(t, m, '1')
	if _, cmd := update(t, m, ctrlC); !isQuit(t, cmd) {
		t.Fatalf("ctrl+c while running did not quit")
	}
}

func TestNotifyCmd_ReportsFailure(t *testing.T) {
	cmd := notifyCmd(notify.Func(func() error { return errors.New("no speaker") }))
	got := cmd()
	if _, ok := got.(notifyFailedMsg); !ok {
		t.Fatalf("notifyCmd returned %T, want notifyFailedMsg", got)
	}
	if notifyCmd(nil) != nil {
		t.Fatalf("notifyCmd(nil) returned a command")
	}
}

func TestCountdownStyle(t *testing.T) {
	styles := defaultTheme().Styles()
	if got, want := styles.CountdownStyle(true).GetForeground(), styles.DangerText.GetForeground(); got != want {
		t.Fatalf("CountdownStyle(true) foreground = %v, want %v", got, want)
	}
	if got, want := styles.CountdownStyle(false).GetForeground(), styles.SuccessText.GetForeground(); got != want {
		t.Fatalf("CountdownStyle(false) foreground = %v, want %v", got, want)
	}
}

func TestGaugeWidthFor(t *testing.T) {
	cases := map[int]int{200: GaugeWidth, 30: 22, 5: GaugeMinWidth}
	for in, want := range cases {
		if got := gaugeWidthFor(in); got != want {
			t.Fatalf("gaugeWidthFor(%d) = %d, want %d", in, got, want)
		}
	}
}
