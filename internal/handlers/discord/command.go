package discord

import (
	"github.com/bwmarrin/discordgo"
)

const (
	colorQueue = 0x5865f2
	colorError = 0xed4245
)

// CommandHandler is a slash command the bot registers and dispatches to
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// BaseCommand carries the definition shared by every slash command
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

func (c *BaseCommand) GetName() string {
	return c.Name
}

func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// reply describes an interaction response. Queue replies to a single
// viewer are ephemeral so the channel only sees the listing.
type reply struct {
	content   string
	embed     *discordgo.MessageEmbed
	buttons   []discordgo.MessageComponent
	ephemeral bool
}

func (r reply) data() *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content: r.content,
	}
	if r.embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{r.embed}
	}
	if len(r.buttons) > 0 {
		data.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: r.buttons},
		}
	}
	if r.ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, r reply) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: r.data(),
	})
}

// RespondWithQueueReply posts a queue response visible only to the viewer
func RespondWithQueueReply(s *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return respond(s, i, reply{content: message, ephemeral: true})
}

// RespondWithListing posts the queue listing with its action buttons
func RespondWithListing(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, buttons []discordgo.MessageComponent) error {
	return respond(s, i, reply{embed: embed, buttons: buttons})
}

// RespondWithError reports a failure to the viewer who triggered it
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return respond(s, i, reply{
		embed: &discordgo.MessageEmbed{
			Title:       "Queue error",
			Description: message,
			Color:       colorError,
		},
		ephemeral: true,
	})
}
