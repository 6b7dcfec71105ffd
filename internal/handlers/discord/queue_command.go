package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/queuebot/internal/services/queue"
)

// QueueCommand handles the /queue command
type QueueCommand struct {
	BaseCommand
	queueService queue.Service
}

// NewQueueCommand creates a new queue command handler
func NewQueueCommand(queueService queue.Service) *QueueCommand {
	return &QueueCommand{
		BaseCommand: BaseCommand{
			Name:        "queue",
			Description: "Viewer queue commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Join the queue",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "message",
							Description: "Text shown with your entry, e.g. your game username",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leave",
					Description: "Leave the queue",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "position",
					Description: "Show your position and wait time",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show the queue",
				},
			},
		},
		queueService: queueService,
	}
}

// Handle processes a Discord interaction for the queue command
func (c *QueueCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()
	sub := data.Options[0]

	if sub.Name == "list" {
		return c.handleList(ctx, s, i)
	}

	text, ok := subcommandText(sub)
	if !ok {
		return RespondWithError(s, i, fmt.Sprintf("Unknown subcommand %q", sub.Name))
	}

	response, err := ChatReply(ctx, c.queueService, interactionUsername(i), text)
	if err != nil {
		return RespondWithError(s, i, "Something went wrong with the queue.")
	}

	return RespondWithQueueReply(s, i, response)
}

// subcommandText maps a subcommand onto the chat line it stands for, so
// slash commands and typed commands share one code path
func subcommandText(sub *discordgo.ApplicationCommandInteractionDataOption) (string, bool) {
	switch sub.Name {
	case "join":
		for _, opt := range sub.Options {
			if opt.Name == "message" {
				return "!join " + opt.StringValue(), true
			}
		}
		return "!join", true
	case "leave":
		return "!leave", true
	case "position":
		return "!pos", true
	default:
		return "", false
	}
}

func (c *QueueCommand) handleList(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	snapshot, err := c.queueService.GetSnapshot(ctx)
	if err != nil {
		return RespondWithError(s, i, "Could not load the queue.")
	}

	return RespondWithListing(s, i, renderQueueEmbed(snapshot, maxListedEntries), queueButtons())
}
