package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NotInitializedText is shown until the owner has sent a snapshot
const NotInitializedText = "Waiting for queue data..."

// EmptyQueueText is shown for a synced but empty queue
const EmptyQueueText = "Queue is empty"

// HiddenEntriesText is shown when entries exist but displayCount hides them all
const HiddenEntriesText = "Display initialized"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213"))

	positionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Width(4)

	usernameStyle = lipgloss.NewStyle().
			Bold(true)

	playingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Italic(true)

	waitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	faintStyle = lipgloss.NewStyle().
			Faint(true)
)

// Render draws the overlay for v, honoring the display toggles
func Render(v View) string {
	if !v.Initialized {
		return panelStyle(0).Render(faintStyle.Render(NotInitializedText))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Queue (%d)", v.Total)))

	if len(v.Rows) == 0 {
		text := EmptyQueueText
		if v.Total > 0 {
			text = HiddenEntriesText
		}
		b.WriteString("\n")
		b.WriteString(faintStyle.Render(text))
		return panelStyle(v.Settings.BackgroundOpacity).Render(b.String())
	}

	for _, row := range v.Rows {
		b.WriteString("\n")
		b.WriteString(renderRow(row, v))
	}

	return panelStyle(v.Settings.BackgroundOpacity).Render(b.String())
}

func renderRow(row Row, v View) string {
	var parts []string

	if v.Settings.ShowPosition {
		parts = append(parts, positionStyle.Render(fmt.Sprintf("#%d", row.Position)))
	}

	if row.Playing {
		parts = append(parts, playingStyle.Render("▶ "+row.Username))
	} else {
		parts = append(parts, usernameStyle.Render(row.Username))
	}

	if v.Settings.ShowMessage && row.Message != "" {
		parts = append(parts, messageStyle.Render(row.Message))
	}

	if v.Settings.ShowWaitTime {
		parts = append(parts, waitStyle.Render(row.Wait))
	}

	return strings.Join(parts, " ")
}

// panelStyle maps backgroundOpacity onto the grayscale ramp; 0 leaves the
// terminal background alone
func panelStyle(opacity float64) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1)
	if opacity <= 0 {
		return style
	}

	// 232 is the darkest gray, 243 a mid gray
	shade := 243 - int(min(opacity, 1)*11)
	return style.Background(lipgloss.Color(fmt.Sprintf("%d", shade)))
}
