package discord

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/queuebot/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/queuebot/internal/common/uuid/mocks"
	"github.com/KirkDiggler/queuebot/internal/models"
	queueRepo "github.com/KirkDiggler/queuebot/internal/repositories/queue"
	settingsMocks "github.com/KirkDiggler/queuebot/internal/repositories/settings/mocks"
	"github.com/KirkDiggler/queuebot/internal/services/queue"
)

type BotTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	queueService queue.Service
	ctx          context.Context
}

func (s *BotTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	mockClock := mocks.NewMockClock(s.mockCtrl)
	mockUUID := uuidMocks.NewMockUUID(s.mockCtrl)
	mockClock.EXPECT().Now().Return(time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)).AnyTimes()
	mockUUID.EXPECT().NewUUID().Return("test-entry-id").AnyTimes()

	svc, err := queue.New(&queue.Config{
		Store:         queueRepo.NewMemory(),
		SettingsRepo:  settingsMocks.NewMockRepository(s.mockCtrl),
		Clock:         mockClock,
		UUIDGenerator: mockUUID,
	})
	s.Require().NoError(err)
	s.queueService = svc
	s.ctx = context.Background()
}

func (s *BotTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBotTestSuite(t *testing.T) {
	suite.Run(t, new(BotTestSuite))
}

func (s *BotTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{QueueService: s.queueService})
	s.Error(err)

	_, err = New(&Config{Token: "token"})
	s.Error(err)
}

func (s *BotTestSuite) TestChatReply() {
	reply, err := ChatReply(s.ctx, s.queueService, "Alice", "!join")
	s.Require().NoError(err)
	s.Equal("Alice has joined the queue! Position: 1", reply)

	reply, err = ChatReply(s.ctx, s.queueService, "Bob", "!Join hello")
	s.Require().NoError(err)
	s.Equal("Bob has joined the queue! Position: 2", reply)

	reply, err = ChatReply(s.ctx, s.queueService, "Alice", "!position")
	s.Require().NoError(err)
	s.Equal("Alice, you are position 1 in the queue. Wait time: 0 minutes.", reply)

	reply, err = ChatReply(s.ctx, s.queueService, "Alice", "!leave")
	s.Require().NoError(err)
	s.Equal("Alice has left the queue.", reply)

	reply, err = ChatReply(s.ctx, s.queueService, "Alice", "!pos")
	s.Require().NoError(err)
	s.Equal("Alice, you are not in the queue.", reply)
}

func (s *BotTestSuite) TestChatReplyIgnoresOtherText() {
	reply, err := ChatReply(s.ctx, s.queueService, "Alice", "gg")
	s.Require().NoError(err)
	s.Empty(reply)
}

func (s *BotTestSuite) TestSubcommandText() {
	text, ok := subcommandText(&discordgo.ApplicationCommandInteractionDataOption{
		Name: "join",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "message", Type: discordgo.ApplicationCommandOptionString, Value: "tag"},
		},
	})
	s.True(ok)
	s.Equal("!join tag", text)

	text, ok = subcommandText(&discordgo.ApplicationCommandInteractionDataOption{Name: "position"})
	s.True(ok)
	s.Equal("!pos", text)

	_, ok = subcommandText(&discordgo.ApplicationCommandInteractionDataOption{Name: "dance"})
	s.False(ok)
}

func (s *BotTestSuite) TestRenderQueueEmbed() {
	snapshot := &models.Snapshot{
		Queue: []models.QueueEntry{
			{Username: "Alice", Message: "tag", IsPlaying: true},
			{Username: "Bob"},
			{Username: "Carl"},
		},
		Settings: models.DefaultSettings(),
	}

	embed := renderQueueEmbed(snapshot, 2)
	s.Equal("Queue (3)", embed.Title)
	s.Contains(embed.Description, "**1.** Alice 🎮 - tag")
	s.Contains(embed.Description, "**2.** Bob")
	s.NotContains(embed.Description, "Carl")
	s.Contains(embed.Description, "and 1 more")
	s.Nil(embed.Footer)

	empty := renderQueueEmbed(&models.Snapshot{Settings: models.QueueSettings{}}, 2)
	s.Equal("The queue is empty.", empty.Description)
	s.Require().NotNil(empty.Footer)
}

func (s *BotTestSuite) TestInteractionUsername() {
	s.Equal("Nick", interactionUsername(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{Nick: "Nick", User: &discordgo.User{Username: "user"}},
	}}))
	s.Equal("user", interactionUsername(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{Username: "user"}},
	}}))
	s.Equal("dm-user", interactionUsername(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{Username: "dm-user"},
	}}))
}
