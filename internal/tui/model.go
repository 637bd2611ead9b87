// Package tui provides the BubbleTea-based settings panel.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/pinenotectl/internal/model"
	"github.com/jmylchreest/pinenotectl/internal/pinenote"
)

// row identifies one line of the panel.
type row int

const (
	rowPerformanceMode row = iota
	rowTravelMode
	rowWaveform
	rowCount
)

func (r row) name() string {
	switch r {
	case rowPerformanceMode:
		return model.PropertyPerformanceMode
	case rowTravelMode:
		return model.PropertyTravelMode
	default:
		return model.PropertyWaveform
	}
}

// Model is the main TUI model.
type Model struct {
	ctx context.Context
	dev *pinenote.Device

	keys KeyMap
	help help.Model

	cursor row

	// Last values read from the device
	performance model.OnOffState
	travel      model.OnOffState
	waveform    model.Waveform
	loaded      bool
	updated     time.Time

	// Status message. statusSeq identifies the latest one so an older
	// clear tick does not erase a newer message.
	statusMsg string
	statusErr bool
	statusSeq int

	width int

	// now is replaced in tests.
	now func() time.Time
}

// New creates a Model. ctx bounds every remote call and signal wait the
// panel issues.
func New(ctx context.Context, dev *pinenote.Device) Model {
	return Model{
		ctx:  ctx,
		dev:  dev,
		keys: DefaultKeyMap(),
		help: help.New(),
		now:  time.Now,
	}
}

type readingsMsg struct {
	performance model.OnOffState
	travel      model.OnOffState
	waveform    model.Waveform
	err         error
}

type changedMsg struct {
	row row
	err error
}

type actionMsg struct {
	text string
	err  error
}

type clearStatusMsg struct {
	seq int
}

// footerTickMsg redraws the "updated ... ago" footer.
type footerTickMsg struct{}

// Init reads every property and arms one change watch per property.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.readAll,
		m.watch(rowPerformanceMode),
		m.watch(rowTravelMode),
		m.watch(rowWaveform),
		footerTick(),
	)
}

func footerTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return footerTickMsg{}
	})
}

// readAll fetches the three properties.
func (m Model) readAll() tea.Msg {
	var (
		msg readingsMsg
		err error
	)
	if msg.performance, err = m.dev.EBC.PerformanceMode(m.ctx); err != nil {
		return readingsMsg{err: err}
	}
	if msg.travel, err = m.dev.Misc.TravelMode(m.ctx); err != nil {
		return readingsMsg{err: err}
	}
	if msg.waveform, err = m.dev.EBC.Waveform(m.ctx); err != nil {
		return readingsMsg{err: err}
	}
	return msg
}

// watch waits for one change signal of r. It is re-armed after each signal.
func (m Model) watch(r row) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch r {
		case rowPerformanceMode:
			err = m.dev.EBC.AwaitPerformanceModeChange(m.ctx)
		case rowTravelMode:
			err = m.dev.Misc.AwaitTravelModeChange(m.ctx)
		case rowWaveform:
			err = m.dev.EBC.AwaitWaveformChange(m.ctx)
		}
		return changedMsg{row: r, err: err}
	}
}

// act runs a write against the device and reports the outcome.
func (m Model) act(text string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{text: text, err: fn(m.ctx)}
	}
}

func setStatus(m *Model, text string, isErr bool) tea.Cmd {
	m.statusMsg = text
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case readingsMsg:
		if msg.err != nil {
			return m, setStatus(&m, msg.err.Error(), true)
		}
		m.performance = msg.performance
		m.travel = msg.travel
		m.waveform = msg.waveform
		m.loaded = true
		m.updated = m.now()
		return m, nil

	case changedMsg:
		if msg.err != nil {
			if m.ctx.Err() != nil {
				return m, nil
			}
			return m, setStatus(&m, fmt.Sprintf("stopped watching %s: %v", msg.row.name(), msg.err), true)
		}
		return m, tea.Batch(m.readAll, m.watch(msg.row))

	case actionMsg:
		if msg.err != nil {
			return m, tea.Batch(setStatus(&m, msg.err.Error(), true), m.readAll)
		}
		return m, tea.Batch(setStatus(&m, msg.text, false), m.readAll)

	case clearStatusMsg:
		if msg.seq != m.statusSeq {
			return m, nil
		}
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case footerTickMsg:
		if m.ctx.Err() != nil {
			return m, nil
		}
		return m, footerTick()
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < rowCount-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.readAll

	case key.Matches(msg, m.keys.FullRefresh):
		return m, m.act("full refresh triggered", m.dev.EBC.FullRefresh)

	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggleSelected(true)

	case key.Matches(msg, m.keys.Next):
		if m.cursor == rowWaveform {
			return m, m.toggleSelected(true)
		}

	case key.Matches(msg, m.keys.Prev):
		if m.cursor == rowWaveform {
			return m, m.toggleSelected(false)
		}
	}

	return m, nil
}

// toggleSelected flips the selected on/off setting, or steps the waveform
// forward or back. On/off settings are toggled through the remote value,
// not the displayed one.
func (m Model) toggleSelected(forward bool) tea.Cmd {
	switch m.cursor {
	case rowPerformanceMode:
		return m.act("performance mode toggled", func(ctx context.Context) error {
			return m.dev.EBC.ChangePerformanceMode(ctx, model.RequestToggle)
		})
	case rowTravelMode:
		return m.act("travel mode toggled", func(ctx context.Context) error {
			return m.dev.Misc.ChangeTravelMode(ctx, model.RequestToggle)
		})
	case rowWaveform:
		if !m.loaded {
			return nil
		}
		next := m.waveform.Next()
		if !forward {
			next = m.waveform.Prev()
		}
		return m.act("waveform set to "+next.String(), func(ctx context.Context) error {
			return m.dev.EBC.SetWaveform(ctx, next)
		})
	}
	return nil
}

func (m Model) value(r row) string {
	if !m.loaded {
		return "…"
	}
	switch r {
	case rowPerformanceMode:
		return m.performance.String()
	case rowTravelMode:
		return m.travel.String()
	default:
		return m.waveform.String()
	}
}

// View renders the TUI.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	nameStyle := lipgloss.NewStyle().Width(20)
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("PineNote"))
	b.WriteString("\n\n")

	for r := row(0); r < rowCount; r++ {
		line := nameStyle.Render(r.name()) + m.value(r)
		if r == m.cursor {
			b.WriteString(selectedStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.statusMsg != "":
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		b.WriteString(statusStyle.Render(m.statusMsg))
	case m.loaded:
		b.WriteString(dimStyle.Render("updated " + humanize.RelTime(m.updated, m.now(), "ago", "from now")))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// Run starts the panel and blocks until the user quits. Pending signal
// waits are cancelled on exit.
func Run(ctx context.Context, dev *pinenote.Device) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(ctx, dev), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
