package display

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KirkDiggler/queuebot/internal/common/clock"
	"github.com/KirkDiggler/queuebot/internal/models"
)

// refreshInterval redraws wait times while no snapshot arrives
const refreshInterval = 30 * time.Second

// SnapshotMsg delivers a snapshot from the sync transport to the program
type SnapshotMsg struct {
	Snapshot *models.Snapshot
}

type tickMsg time.Time

// Model is the bubbletea model for the overlay
type Model struct {
	mirror *Mirror
	clock  clock.Clock
}

// NewModel creates a model that renders from mirror
func NewModel(mirror *Mirror, clk clock.Clock) Model {
	return Model{
		mirror: mirror,
		clock:  clk,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.mirror.Apply(msg.Snapshot)
		return m, nil
	case tickMsg:
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	snapshot, ok := m.mirror.Last()
	return Render(BuildView(snapshot, ok, m.clock.Now())) + "\n"
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
