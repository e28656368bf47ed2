// Package tui hosts a marquee session inside a Bubble Tea program: frame ticks
// sample the session and the view slices the text by terminal cells.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/edward-ap/marqueeview/internal/eventloop"
	"github.com/edward-ap/marqueeview/internal/marquee"
	"github.com/edward-ap/marqueeview/internal/textmeasure"
)

// DefaultFrameInterval samples the animation at roughly 30 Hz, plenty for
// whole-cell movement.
const DefaultFrameInterval = time.Second / 30

// frameMsg is one display refresh.
type frameMsg time.Time

// Options configures a Model.
type Options struct {
	Text          string
	Marquee       marquee.Config
	FrameInterval time.Duration
	// Clock drives the animation; nil means the wall clock.
	Clock eventloop.Clock
	// Logger receives trace output; nil means the standard logger.
	Logger marquee.Logger
}

// Model is the Bubble Tea model for the terminal marquee.
type Model struct {
	host    *termHost
	queue   *eventloop.Queue
	session *marquee.Session
	frame   time.Duration
	styles  styles
	err     error
}

// termHost is the session's view of the terminal row.
type termHost struct {
	text  string
	width int
}

func (h *termHost) Text() string { return h.text }

func (h *termHost) ViewportWidth() float64 { return float64(h.width) }

// RequestRepaint is a no-op: Bubble Tea redraws after every message.
func (h *termHost) RequestRepaint() {}

// NewModel builds a model; scrolling starts with Init.
func NewModel(opts Options) (*Model, error) {
	cfg := opts.Marquee
	if cfg.Speed == 0 {
		cfg.Speed = marquee.DefaultSpeed
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("marquee config: %w", err)
	}
	frame := opts.FrameInterval
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	host := &termHost{text: opts.Text}
	q := eventloop.NewQueue(opts.Clock)
	s := marquee.NewSession(host, textmeasure.CellMeasurer{}, q, opts.Logger)
	if err := s.Apply(cfg); err != nil {
		return nil, err
	}
	return &Model{
		host:    host,
		queue:   q,
		session: s,
		frame:   frame,
		styles:  defaultStyles(),
	}, nil
}

// Init starts the session and the frame ticker.
func (m *Model) Init() tea.Cmd {
	m.session.Start()
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update handles frames, resizes and key presses.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.queue.RunDue()
		m.session.ComputeScroll()
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.host.width = maxInt(msg.Width-m.styles.frame.GetHorizontalFrameSize(), 1)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.err = nil
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.session.Stop()
		return tea.Quit
	case " ", "p":
		if m.session.State() == marquee.StatePaused {
			m.session.Resume()
		} else {
			m.session.Pause()
		}
	case "s":
		m.session.Start()
	case "x":
		m.session.Stop()
	case "m":
		next := marquee.ModeOnce
		if m.session.Mode() == marquee.ModeOnce {
			next = marquee.ModeForever
		}
		m.err = m.session.SetMode(next)
	case "+", "=":
		m.err = m.session.SetSpeed(m.session.Speed() - 1)
	case "-", "_":
		m.err = m.session.SetSpeed(m.session.Speed() + 1)
	}
	return nil
}

// Session exposes the underlying session for inspection.
func (m *Model) Session() *marquee.Session { return m.session }

// View renders the visible window of the text plus a status line.
func (m *Model) View() string {
	width := m.host.width
	if width <= 0 {
		return ""
	}
	start := int(math.Floor(m.session.Offset()))
	row := textmeasure.SliceColumns(m.host.text, start, width)

	var b strings.Builder
	b.WriteString(m.styles.frame.Render(m.styles.text.Render(row)))
	b.WriteByte('\n')
	snap := m.session.Snapshot()
	status := fmt.Sprintf("%s · %s · %d ms/char · offset %.1f", snap.State, snap.Mode, snap.Speed, snap.Offset)
	b.WriteString(m.styles.status.Render(status))
	if m.err != nil {
		b.WriteString("  ")
		b.WriteString(m.styles.err.Render(m.err.Error()))
	}
	b.WriteByte('\n')
	b.WriteString(m.styles.help.Render("space pause/resume · s start · x stop · m mode · +/- speed · q quit"))
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
