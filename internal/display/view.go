package display

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// Row is one rendered queue entry
type Row struct {
	Position int
	Username string
	Message  string
	Wait     string
	Playing  bool
}

// View is what the overlay shows for one snapshot
type View struct {
	// Initialized is false until the first snapshot arrives
	Initialized bool

	// Total is the full queue length, not just the rows shown
	Total int

	Rows     []Row
	Settings models.DisplaySettings
}

// BuildView turns the mirror's state into rows, keeping only the first
// displayCount entries. Wait times are measured against now.
func BuildView(snapshot *models.Snapshot, ok bool, now time.Time) View {
	if !ok || snapshot == nil {
		return View{}
	}

	settings := snapshot.Settings.DisplaySettings
	shown := snapshot.Queue
	limit := max(settings.DisplayCount, 0)
	if len(shown) > limit {
		shown = shown[:limit]
	}

	rows := make([]Row, 0, len(shown))
	for i, entry := range shown {
		rows = append(rows, Row{
			Position: i + 1,
			Username: entry.Username,
			Message:  entry.Message,
			Wait:     FormatWait(now.Sub(entry.JoinedAt)),
			Playing:  entry.IsPlaying,
		})
	}

	return View{
		Initialized: true,
		Total:       len(snapshot.Queue),
		Rows:        rows,
		Settings:    settings,
	}
}

// FormatWait renders a wait as "12m" under an hour and "1h 5m" above
func FormatWait(elapsed time.Duration) string {
	minutes := int(elapsed / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
