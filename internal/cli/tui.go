package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// annealProgressMsg updates the progress view with the latest iteration
// and best area.
type annealProgressMsg struct {
	group     string
	iteration int
	total     int
	bestArea  int
}

// annealDoneMsg ends the progress view.
type annealDoneMsg struct{}

var (
	progressBarStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	progressVoidStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// annealModel is a minimal bubbletea model showing annealing progress: a
// bar over the iteration budget plus the best area found so far.
type annealModel struct {
	group     string
	iteration int
	total     int
	bestArea  int
	done      bool
}

func (m annealModel) Init() tea.Cmd { return nil }

func (m annealModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case annealProgressMsg:
		m.group = msg.group
		m.iteration = msg.iteration
		m.total = msg.total
		m.bestArea = msg.bestArea
		return m, nil
	case annealDoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m annealModel) View() string {
	if m.done || m.total == 0 {
		return ""
	}

	const width = 30
	filled := m.iteration * width / m.total
	bar := progressBarStyle.Render(strings.Repeat("█", filled)) +
		progressVoidStyle.Render(strings.Repeat("░", width-filled))

	return fmt.Sprintf("  %s %s %s\n",
		StyleDim.Render("annealing "+m.group),
		bar,
		StyleNumber.Render(fmt.Sprintf("area %d", m.bestArea)))
}

// newAnnealProgram creates the progress program writing to stderr so
// artifact output on stdout stays clean.
func newAnnealProgram() *tea.Program {
	return tea.NewProgram(annealModel{}, tea.WithoutSignalHandler(), tea.WithOutput(os.Stderr))
}
