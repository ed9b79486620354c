// Package tui is the terminal dashboard: one bubbletea event loop that
// polls usage on the scheduler's cadence and redraws once a second.
package tui

import (
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glidetop/glidetop/internal/sched"
	"github.com/glidetop/glidetop/pkg/glidelib"
	"github.com/glidetop/glidetop/pkg/logger"
)

// Fetcher produces usage snapshots. usageapi.Client is the production
// implementation.
type Fetcher interface {
	Fetch(ctx context.Context) (*glidelib.Snapshot, error)
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// snapshotMsg reports one completed poll attempt, successful or not.
type snapshotMsg struct {
	snap *glidelib.Snapshot
	err  error
	at   time.Time
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	fetcher Fetcher
	sched   *sched.Scheduler
	log     logger.Logger
	now     func() time.Time

	snapshot *glidelib.Snapshot
	fetchErr error

	width  int
	height int

	// fetching guards the one-poll-in-flight rule: due checks are not
	// re-evaluated until the outstanding attempt reports back.
	fetching bool

	prompting bool
	promptBuf string
	promptErr string
}

// Opts tune a Model. The zero value selects production defaults.
type Opts struct {
	// Scheduler decides the poll cadence. A fresh default one when nil.
	Scheduler *sched.Scheduler
	// Logger receives poll diagnostics. Discarded when nil.
	Logger logger.Logger
	// Now is the clock used for pacing and captions. time.Now when nil.
	Now func() time.Time
}

// New creates the dashboard model around a fetcher.
func New(fetcher Fetcher, opts *Opts) Model {
	if opts == nil {
		opts = &Opts{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = sched.New(0, 0)
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNopLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return Model{
		fetcher: fetcher,
		sched:   opts.Scheduler,
		log:     opts.Logger,
		now:     opts.Now,
	}
}

// Run drives the dashboard until the user quits. Focus reporting keeps
// the scheduler informed when the terminal loses attention.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}

// Init kicks an immediate tick so the first poll starts right away.
func (m Model) Init() tea.Cmd {
	now := m.now
	return func() tea.Msg { return tickMsg(now()) }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.fetching && m.sched.IsDue(time.Time(msg)) {
			m.fetching = true
			return m, tea.Batch(m.fetchCmd(), tickCmd())
		}
		return m, tickCmd()

	case snapshotMsg:
		// Cadence first: a failed attempt consumes its interval slot too.
		m.sched.MarkPolled(msg.at)
		m.fetching = false
		if msg.err != nil {
			m.fetchErr = msg.err
			m.log.Warning("usage poll failed: %v", msg.err)
			return m, nil
		}
		m.snapshot = msg.snap
		m.fetchErr = nil
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.FocusMsg:
		m.sched.SetFocused(true)
		return m, nil

	case tea.BlurMsg:
		m.sched.SetFocused(false)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompting {
		return m.handlePromptKey(msg)
	}
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit
	case "r", "R":
		m.sched.ForceRefresh()
		if !m.fetching {
			m.fetching = true
			return m, m.fetchCmd()
		}
	case "t", "T":
		m.prompting = true
		m.promptBuf = ""
		m.promptErr = ""
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "enter":
		return m.applyPrompt()
	case "esc":
		m.prompting = false
		m.promptBuf = ""
		m.promptErr = ""
	case "backspace":
		if len(m.promptBuf) > 0 {
			m.promptBuf = m.promptBuf[:len(m.promptBuf)-1]
		}
		m.promptErr = ""
	case "ctrl+c":
		return m, tea.Quit
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			m.promptBuf += key
			m.promptErr = ""
		}
	}
	return m, nil
}

// applyPrompt commits the interval prompt. An empty buffer reverts to
// the focus-based intervals; anything else must be a positive number of
// seconds or the prior interval stays in force.
func (m Model) applyPrompt() (tea.Model, tea.Cmd) {
	if m.promptBuf == "" {
		if err := m.sched.SetUserInterval(0); err != nil {
			m.promptErr = err.Error()
			return m, nil
		}
		m.prompting = false
		return m, nil
	}

	secs, err := strconv.Atoi(m.promptBuf)
	if err != nil || secs <= 0 {
		m.promptErr = "interval must be a positive number of seconds"
		return m, nil
	}
	if err := m.sched.SetUserInterval(time.Duration(secs) * time.Second); err != nil {
		m.promptErr = err.Error()
		return m, nil
	}
	m.log.Info("refresh interval set to %ds", secs)
	m.prompting = false
	m.promptBuf = ""
	return m, nil
}

func (m Model) fetchCmd() tea.Cmd {
	fetcher, now := m.fetcher, m.now
	return func() tea.Msg {
		snap, err := fetcher.Fetch(context.Background())
		return snapshotMsg{snap: snap, err: err, at: now()}
	}
}
