package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// Button IDs
const (
	ButtonJoinQueue     = "queue_join"
	ButtonLeaveQueue    = "queue_leave"
	ButtonQueuePosition = "queue_position"
)

// maxListedEntries keeps the listing inside Discord's embed limits
const maxListedEntries = 20

// renderQueueEmbed lists the first limit entries of the snapshot
func renderQueueEmbed(snapshot *models.Snapshot, limit int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Queue (%d)", len(snapshot.Queue)),
		Color: colorQueue,
	}

	if !snapshot.Settings.IsOpen {
		embed.Color = colorError
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "The queue is closed"}
	}

	if len(snapshot.Queue) == 0 {
		embed.Description = "The queue is empty."
		return embed
	}

	var b strings.Builder
	for i, entry := range snapshot.Queue {
		if i == limit {
			fmt.Fprintf(&b, "…and %d more", len(snapshot.Queue)-limit)
			break
		}

		fmt.Fprintf(&b, "**%d.** %s", i+1, entry.Username)
		if entry.IsPlaying {
			b.WriteString(" 🎮")
		}
		if entry.Message != "" {
			fmt.Fprintf(&b, " - %s", entry.Message)
		}
		b.WriteString("\n")
	}
	embed.Description = strings.TrimRight(b.String(), "\n")

	return embed
}

// queueButtons are shown under the queue listing
func queueButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Join",
			Style:    discordgo.PrimaryButton,
			CustomID: ButtonJoinQueue,
		},
		discordgo.Button{
			Label:    "Leave",
			Style:    discordgo.SecondaryButton,
			CustomID: ButtonLeaveQueue,
		},
		discordgo.Button{
			Label:    "Position",
			Style:    discordgo.SecondaryButton,
			CustomID: ButtonQueuePosition,
		},
	}
}
