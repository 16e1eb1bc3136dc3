package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"rackpy/internal/pipeline"
)

// maxVisible rows are drawn; older ones collapse into "… N more".
const maxVisible = 20

const labelWidth = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	statusStyles = map[pipeline.Status]lipgloss.Style{
		pipeline.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		pipeline.StatusCached:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		pipeline.StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		pipeline.StatusWorking: workingStyle,
	}
)

type progressModel struct {
	title   string
	events  <-chan pipeline.Event
	board   board
	spinner spinner.Model
	bar     progress.Model
	width   int
	done    bool
}

type (
	eventMsg pipeline.Event
	doneMsg  struct{}
)

// NewProgressModel renders transpile progress for units (files or batch
// lines) and quits once events is closed.
func NewProgressModel(title string, units []string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(workingStyle))
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(76))
	return &progressModel{
		title:   title,
		events:  events,
		board:   newBoard(units),
		spinner: sp,
		bar:     bar,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next waits for one pipeline event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		m.board.apply(pipeline.Event(msg))
		cmd = tea.Batch(m.bar.SetPercent(m.board.fraction()), m.next())
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			cmd = tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(10, msg.Width-4)
		}
	case spinner.TickMsg:
		if !m.done {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

func (m *progressModel) header() string {
	h := fmt.Sprintf("%s [%s]", m.title, m.board.summary())
	if m.board.runLabel != "" {
		h += " (" + m.board.runLabel + ")"
	}
	if m.done {
		return "done: " + h
	}
	return m.spinner.View() + " " + h
}

func (m *progressModel) View() string {
	if len(m.board.rows) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.header()))
	sb.WriteString("\n\n")

	rows, hidden := m.board.tail(maxVisible)
	if hidden > 0 {
		fmt.Fprintf(&sb, "  %s\n", faintStyle.Render(fmt.Sprintf("… %d more", hidden)))
	}
	nameWidth := max(20, m.width-labelWidth-4)
	for _, r := range rows {
		label := rowStyle(r).Render(fmt.Sprintf("%*s", labelWidth, r.label))
		fmt.Fprintf(&sb, "  %s %s\n", label, truncate(r.name, nameWidth))
	}

	sb.WriteString("\n")
	if m.done {
		sb.WriteString(m.bar.ViewAs(1))
	} else {
		sb.WriteString(m.bar.View())
	}
	sb.WriteString("\n")
	return sb.String()
}

func rowStyle(r row) lipgloss.Style {
	if st, ok := statusStyles[r.status]; ok {
		return st
	}
	return idleStyle
}

// truncate shortens value that does not fit width cells; past 3 cells the
// kept prefix is width-3 cells wide and followed by "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
