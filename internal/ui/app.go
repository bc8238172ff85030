package ui

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CSaratakij/G435BatteryApproximate/internal/config"
	"github.com/CSaratakij/G435BatteryApproximate/internal/estimate"
	"github.com/CSaratakij/G435BatteryApproximate/internal/notify"
	"github.com/CSaratakij/G435BatteryApproximate/internal/source"
)

// Phase is the screen currently shown.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseResolving
	PhaseRunning
	PhaseInvalid
	PhaseFailed
)

// Resolver turns a menu option into a start time.
type Resolver interface {
	Resolve(o source.Option) (source.Resolution, error)
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Settings     config.Settings
	Resolver     Resolver
	Notifier     notify.Notifier
	RefreshEvery time.Duration
	Now          func() time.Time

	// StartupErr is shown on the acknowledgment screen instead of the menu.
	StartupErr error

	Input  io.Reader
	Output io.Writer
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	settings     config.Settings
	resolver     Resolver
	notifier     notify.Notifier
	refreshEvery time.Duration
	now          func() time.Time

	// UI state
	theme Theme
	keys  keyMap
	help  help.Model
	gauge progress.Model

	phase   Phase
	pressed string
	err     error

	// Projection state
	start   time.Time
	until   time.Time
	current time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	refreshEvery := opts.RefreshEvery
	if refreshEvery <= 0 {
		refreshEvery = DefaultRefreshInterval
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	theme := defaultTheme()
	m := Model{
		settings:     opts.Settings,
		resolver:     opts.Resolver,
		notifier:     opts.Notifier,
		refreshEvery: refreshEvery,
		now:          now,
		theme:        theme,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		gauge: progress.New(
			progress.WithSolidFill(theme.Success),
			progress.WithoutPercentage(),
			progress.WithWidth(GaugeWidth),
		),
		phase: PhaseMenu,
	}
	if opts.StartupErr != nil {
		m.phase = PhaseFailed
		m.err = opts.StartupErr
	}
	return m
}

// Phase returns the screen currently shown.
func (m Model) Phase() Phase {
	return m.phase
}

// Err returns the error that ended the run, if any. An unsupported menu
// option is not an error.
func (m Model) Err() error {
	if m.phase != PhaseFailed {
		return nil
	}
	return m.err
}

// Projection returns the resolved start time and projected empty time. Both
// are zero until a start time has been resolved.
func (m Model) Projection() (start, until time.Time) {
	return m.start, m.until
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.gauge.Width = gaugeWidthFor(msg.Width)
		return m, nil

	case resolvedMsg:
		return m.handleResolved(msg)

	case tickMsg:
		if m.phase != PhaseRunning {
			return m, nil
		}
		m.current = time.Time(msg)
		return m, tickCmd(m.refreshEvery)

	case notifyFailedMsg:
		log.Printf("notification failed: %v", msg.err)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.phase {
	case PhaseMenu:
		m.pressed = msg.String()
		opt := source.ParseOption(m.pressed)
		if !opt.Valid() {
			log.Printf("unsupported option %q", m.pressed)
			m.phase = PhaseInvalid
			return m, nil
		}
		m.phase = PhaseResolving
		return m, resolveCmd(m.resolver, opt)

	case PhaseInvalid, PhaseFailed:
		if key.Matches(msg, m.keys.Acknowledge) {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) handleResolved(msg resolvedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Printf("resolve %s: %v", msg.res.Option, msg.err)
		m.phase = PhaseFailed
		m.err = msg.err
		return m, nil
	}
	if msg.res.SaveErr != nil {
		log.Printf("save last time: %v", msg.res.SaveErr)
	}

	m.start = msg.res.Start
	m.until = estimate.Project(m.start, m.settings)
	m.current = m.now()
	m.phase = PhaseRunning
	log.Printf("start %s from %s, projected empty at %s", m.start.Format(time.RFC3339), msg.res.Option, m.until.Format(time.RFC3339))

	return m, tea.Batch(notifyCmd(m.notifier), tickCmd(m.refreshEvery))
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.phase {
	case PhaseResolving:
		return m.renderMenu() + m.pressed + "\n" + m.theme.Styles().MutedText.Render("Calculating...") + "\n"
	case PhaseRunning:
		return m.renderCountdown()
	case PhaseInvalid:
		return m.renderInvalid()
	case PhaseFailed:
		return m.renderFailed()
	default:
		return m.renderMenu() + "\n\n" + m.help.View(m.keys) + "\n"
	}
}

func (m Model) renderMenu() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Approximate G435 battery life, assume battery full charge"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("Choose options : "))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("1) Calculate from system boot time"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("2) Calculate from last saved time"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("3) Calculate from current time (overwrite last saved time)"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("Option : "))
	return b.String()
}

func (m Model) renderInvalid() string {
	styles := m.theme.Styles()

	var b strings.Builder
	if m.pressed != "" {
		b.WriteString(m.renderMenu())
		b.WriteString(m.pressed)
		b.WriteString("\n")
	}
	b.WriteString(styles.DangerText.Render(fmt.Sprintf("Error : option number %s not found...", m.pressed)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Press 'Enter' to quit..."))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderFailed() string {
	styles := m.theme.Styles()

	var b strings.Builder
	if m.pressed != "" {
		b.WriteString(m.renderMenu())
		b.WriteString(m.pressed)
		b.WriteString("\n")
	}
	b.WriteString(styles.DangerText.Render(fmt.Sprintf("Error : %v", m.err)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Press 'Enter' to quit..."))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderCountdown() string {
	styles := m.theme.Styles()

	left := estimate.Remaining(m.until, m.current)
	low := estimate.IsLow(left)
	cd := estimate.Split(left)

	var b strings.Builder
	b.WriteString(styles.Text.Render(fmt.Sprintf("G435 will approximately work until : %s, ", m.until.Local().Format(TimestampLayout))))
	b.WriteString(styles.CountdownStyle(low).Render(fmt.Sprintf("(%dh %dm %ds left)", cd.Hours, cd.Minutes, cd.Seconds)))
	b.WriteString("\n")

	fraction := estimate.Fraction(m.start, m.until, m.current)
	gauge := m.gauge
	if low {
		gauge.FullColor = m.theme.Danger
	}
	b.WriteString(gauge.ViewAs(fraction))
	b.WriteString(" ")
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("~%.0f%%", fraction*100)))
	b.WriteString("\n")

	b.WriteString(styles.MutedText.Render("Press 'Ctrl+C' to quit..."))
	b.WriteString("\n")
	return b.String()
}

func gaugeWidthFor(termWidth int) int {
	w := termWidth - 8
	if w > GaugeWidth {
		return GaugeWidth
	}
	if w < GaugeMinWidth {
		return GaugeMinWidth
	}
	return w
}

// Messages

type tickMsg time.Time

type resolvedMsg struct {
	res source.Resolution
	err error
}

type notifyFailedMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func resolveCmd(r Resolver, opt source.Option) tea.Cmd {
	return func() tea.Msg {
		if r == nil {
			return resolvedMsg{res: source.Resolution{Option: opt}, err: fmt.Errorf("no start time resolver configured")}
		}
		res, err := r.Resolve(opt)
		return resolvedMsg{res: res, err: err}
	}
}

func notifyCmd(n notify.Notifier) tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		if err := n.Notify(); err != nil {
			return notifyFailedMsg{err: err}
		}
		return nil
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled. It returns the error that ended the run, if any.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	p := tea.NewProgram(New(opts), progOpts...)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
