package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/queuebot/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/queuebot/internal/common/uuid/mocks"
	"github.com/KirkDiggler/queuebot/internal/models"
	queueRepo "github.com/KirkDiggler/queuebot/internal/repositories/queue"
	settingsRepo "github.com/KirkDiggler/queuebot/internal/repositories/settings"
	settingsMocks "github.com/KirkDiggler/queuebot/internal/repositories/settings/mocks"
	queueMocks "github.com/KirkDiggler/queuebot/internal/services/queue/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type QueueServiceTestSuite struct {
	suite.Suite
	mockCtrl         *gomock.Controller
	mockClock        *mocks.MockClock
	mockUUID         *uuidMocks.MockUUID
	mockSettingsRepo *settingsMocks.MockRepository
	mockPublisher    *queueMocks.MockPublisher
	store            queueRepo.Repository
	queueService     *service
	ctx              context.Context

	testTime time.Time

	// published collects every snapshot the publisher received
	published []*models.Snapshot
}

func (s *QueueServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.mockSettingsRepo = settingsMocks.NewMockRepository(s.mockCtrl)
	s.mockPublisher = queueMocks.NewMockPublisher(s.mockCtrl)
	s.store = queueRepo.NewMemory()
	s.ctx = context.Background()
	s.published = nil

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return("test-entry-id").AnyTimes()

	s.queueService = s.newService(nil)
}

func (s *QueueServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestQueueServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QueueServiceTestSuite))
}

func (s *QueueServiceTestSuite) newService(settings *models.QueueSettings) *service {
	svc, err := New(&Config{
		Settings:      settings,
		Store:         s.store,
		SettingsRepo:  s.mockSettingsRepo,
		Publisher:     s.mockPublisher,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	return svc
}

func (s *QueueServiceTestSuite) enableDisplay() {
	settings := models.DefaultSettings()
	settings.DisplaySettings.Enabled = true
	s.queueService = s.newService(&settings)
}

// expectPublishes records each published snapshot
func (s *QueueServiceTestSuite) expectPublishes(times int) {
	s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, snapshot *models.Snapshot) int {
			s.published = append(s.published, snapshot)
			return 1
		}).Times(times)
}

func (s *QueueServiceTestSuite) join(username, message string) *ProcessCommandOutput {
	out, err := s.queueService.ProcessCommand(s.ctx, &ProcessCommandInput{
		Command: &models.Command{Type: models.CommandTypeJoin, Username: username, Message: message},
	})
	s.Require().NoError(err)
	return out
}

func (s *QueueServiceTestSuite) usernames() []string {
	snapshot, err := s.queueService.GetSnapshot(s.ctx)
	s.Require().NoError(err)
	var names []string
	for _, entry := range snapshot.Queue {
		names = append(names, entry.Username)
	}
	return names
}

func (s *QueueServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilStore)

	_, err = New(&Config{Store: s.store})
	s.ErrorIs(err, ErrNilSettingsRepo)

	_, err = New(&Config{Store: s.store, SettingsRepo: s.mockSettingsRepo})
	s.ErrorIs(err, ErrNilClock)

	_, err = New(&Config{Store: s.store, SettingsRepo: s.mockSettingsRepo, Clock: s.mockClock})
	s.ErrorIs(err, ErrNilUUIDGenerator)

	// Publisher is optional
	_, err = New(&Config{Store: s.store, SettingsRepo: s.mockSettingsRepo, Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.NoError(err)
}

func (s *QueueServiceTestSuite) TestNilInputs() {
	_, err := s.queueService.ProcessCommand(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
	s.ErrorIs(s.queueService.MoveEntry(s.ctx, nil), ErrNilInput)
	s.ErrorIs(s.queueService.SetPlaying(s.ctx, nil), ErrNilInput)
	s.ErrorIs(s.queueService.RemoveEntry(s.ctx, nil), ErrNilInput)
	_, err = s.queueService.UpdateSettings(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
}

func (s *QueueServiceTestSuite) TestNoPushWhileDisplayDisabled() {
	// The mock fails the test on any unexpected Publish call
	out := s.join("Alice", "")
	s.True(out.Changed)
	s.Equal("Alice has joined the queue! Position: 1", out.Response)
}

func (s *QueueServiceTestSuite) TestPushAfterEveryChange() {
	s.enableDisplay()
	s.expectPublishes(3)

	s.join("Alice", "")
	s.join("Bob", "hi")
	// Rejected join does not push
	s.join("alice", "")

	_, err := s.queueService.ProcessCommand(s.ctx, &ProcessCommandInput{
		Command: &models.Command{Type: models.CommandTypeLeave, Username: "Alice"},
	})
	s.Require().NoError(err)

	// Position queries never push
	_, err = s.queueService.ProcessCommand(s.ctx, &ProcessCommandInput{
		Command: &models.Command{Type: models.CommandTypePosition, Username: "Bob"},
	})
	s.Require().NoError(err)

	s.Require().Len(s.published, 3)
	s.Len(s.published[0].Queue, 1)
	s.Len(s.published[1].Queue, 2)
	s.Require().Len(s.published[2].Queue, 1)
	s.Equal("Bob", s.published[2].Queue[0].Username)
	s.Equal("hi", s.published[2].Queue[0].Message)
}

func (s *QueueServiceTestSuite) TestPublishedSnapshotIsACopy() {
	s.enableDisplay()
	s.expectPublishes(2)

	s.join("Alice", "")
	s.published[0].Queue[0].Username = "Mallory"
	s.published[0].Settings.JoinMessage = "changed"

	out := s.join("Bob", "")
	s.Equal("Bob has joined the queue! Position: 2", out.Response)
	s.Equal([]string{"Alice", "Bob"}, s.usernames())
}

func (s *QueueServiceTestSuite) TestMoveEntry() {
	s.join("A", "")
	s.join("B", "")
	s.join("C", "")

	s.NoError(s.queueService.MoveEntry(s.ctx, &MoveEntryInput{FromIndex: 2, ToIndex: 0}))
	s.Equal([]string{"C", "A", "B"}, s.usernames())

	s.ErrorIs(s.queueService.MoveEntry(s.ctx, &MoveEntryInput{FromIndex: 3, ToIndex: 0}), ErrInvalidIndex)
	s.ErrorIs(s.queueService.MoveEntry(s.ctx, &MoveEntryInput{FromIndex: 0, ToIndex: -1}), ErrInvalidIndex)
	s.Equal([]string{"C", "A", "B"}, s.usernames())
}

func (s *QueueServiceTestSuite) TestMoveEntryPushes() {
	s.join("A", "")
	s.join("B", "")

	s.queueService.settings.DisplaySettings.Enabled = true
	s.expectPublishes(1)

	// Same index is a no-op and does not push
	s.NoError(s.queueService.MoveEntry(s.ctx, &MoveEntryInput{FromIndex: 1, ToIndex: 1}))
	s.NoError(s.queueService.MoveEntry(s.ctx, &MoveEntryInput{FromIndex: 1, ToIndex: 0}))
	s.Require().Len(s.published, 1)
	s.Equal("B", s.published[0].Queue[0].Username)
}

func (s *QueueServiceTestSuite) TestSetPlaying() {
	s.join("Alice", "hello")
	s.join("Bob", "")

	s.NoError(s.queueService.SetPlaying(s.ctx, &SetPlayingInput{Username: "bob", Playing: true}))
	snapshot, err := s.queueService.GetSnapshot(s.ctx)
	s.Require().NoError(err)
	s.True(snapshot.Queue[1].IsPlaying)
	s.Require().NotNil(snapshot.Queue[1].PlayingStartedAt)
	s.Equal(s.testTime, *snapshot.Queue[1].PlayingStartedAt)

	s.NoError(s.queueService.SetPlaying(s.ctx, &SetPlayingInput{Username: "Bob", Playing: false}))
	snapshot, err = s.queueService.GetSnapshot(s.ctx)
	s.Require().NoError(err)
	s.False(snapshot.Queue[1].IsPlaying)
	s.Nil(snapshot.Queue[1].PlayingStartedAt)

	s.ErrorIs(s.queueService.SetPlaying(s.ctx, &SetPlayingInput{Username: "Carl", Playing: true}), ErrEntryNotFound)
}

func (s *QueueServiceTestSuite) TestRemoveAndClear() {
	s.join("Alice", "")
	s.join("Bob", "")

	s.NoError(s.queueService.RemoveEntry(s.ctx, &RemoveEntryInput{Username: "ALICE"}))
	s.Equal([]string{"Bob"}, s.usernames())
	s.ErrorIs(s.queueService.RemoveEntry(s.ctx, &RemoveEntryInput{Username: "Alice"}), ErrEntryNotFound)

	s.NoError(s.queueService.ClearQueue(s.ctx))
	s.Empty(s.usernames())

	// Clearing an empty queue is fine
	s.NoError(s.queueService.ClearQueue(s.ctx))
}

func (s *QueueServiceTestSuite) TestUpdateSettingsPushesAndSaves() {
	s.expectPublishes(1)
	s.mockSettingsRepo.EXPECT().SaveSettings(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *settingsRepo.SaveSettingsInput) error {
			s.True(input.Settings.DisplaySettings.Enabled)
			s.Equal(3, input.Settings.DisplaySettings.DisplayCount)
			s.True(input.Settings.DisplaySettings.ShowPosition)
			return nil
		})

	enabled := true
	count := 3
	out, err := s.queueService.UpdateSettings(s.ctx, &UpdateSettingsInput{
		Update: &models.SettingsUpdate{
			DisplaySettings: &models.DisplaySettingsUpdate{
				Enabled:      &enabled,
				DisplayCount: &count,
			},
		},
	})
	s.Require().NoError(err)
	s.True(out.Persisted)
	s.True(out.Settings.DisplaySettings.Enabled)

	s.Require().Len(s.published, 1)
	s.True(s.published[0].Settings.DisplaySettings.Enabled)
	s.Equal(3, s.published[0].Settings.DisplaySettings.DisplayCount)
}

func (s *QueueServiceTestSuite) TestDisablingDisplayDoesNotPush() {
	s.enableDisplay()
	s.mockSettingsRepo.EXPECT().SaveSettings(gomock.Any(), gomock.Any()).Return(nil)

	disabled := false
	_, err := s.queueService.UpdateSettings(s.ctx, &UpdateSettingsInput{
		Update: &models.SettingsUpdate{
			DisplaySettings: &models.DisplaySettingsUpdate{Enabled: &disabled},
		},
	})
	s.Require().NoError(err)
}

func (s *QueueServiceTestSuite) TestUpdateSettingsSaveFailureKeepsSettings() {
	s.mockSettingsRepo.EXPECT().SaveSettings(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	closed := false
	out, err := s.queueService.UpdateSettings(s.ctx, &UpdateSettingsInput{
		Update: &models.SettingsUpdate{IsOpen: &closed},
	})
	s.Require().NoError(err)
	s.False(out.Persisted)

	s.Equal("The queue is currently closed.", s.join("Alice", "").Response)
}

func (s *QueueServiceTestSuite) TestRequestSnapshotIgnoresEnabled() {
	s.join("Alice", "")
	s.expectPublishes(1)

	s.NoError(s.queueService.RequestSnapshot(s.ctx))
	s.Require().Len(s.published, 1)
	s.Require().Len(s.published[0].Queue, 1)
	s.Equal("Alice", s.published[0].Queue[0].Username)
}

func (s *QueueServiceTestSuite) TestConcurrentJoinsKeepUsernamesUnique() {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.queueService.ProcessCommand(s.ctx, &ProcessCommandInput{
				Command: &models.Command{Type: models.CommandTypeJoin, Username: "Alice"},
			})
		}()
	}
	wg.Wait()

	s.Equal([]string{"Alice"}, s.usernames())
}

func (s *QueueServiceTestSuite) TestConcurrentSettingsUpdatesSaveLatestState() {
	var mu sync.Mutex
	var saved []bool
	firstSaveStarted := make(chan struct{})
	releaseFirstSave := make(chan struct{})

	s.mockSettingsRepo.EXPECT().SaveSettings(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, input *settingsRepo.SaveSettingsInput) error {
			mu.Lock()
			saved = append(saved, input.Settings.IsOpen)
			first := len(saved) == 1
			mu.Unlock()

			if first {
				close(firstSaveStarted)
				<-releaseFirstSave
			}
			return nil
		}).Times(2)

	closed := false
	opened := true

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = s.queueService.UpdateSettings(s.ctx, &UpdateSettingsInput{
			Update: &models.SettingsUpdate{IsOpen: &closed},
		})
	}()

	<-firstSaveStarted
	go func() {
		defer wg.Done()
		_, _ = s.queueService.UpdateSettings(s.ctx, &UpdateSettingsInput{
			Update: &models.SettingsUpdate{IsOpen: &opened},
		})
	}()

	// Give the second update time to contend with the slow save
	time.Sleep(50 * time.Millisecond)
	close(releaseFirstSave)
	wg.Wait()

	snapshot, err := s.queueService.GetSnapshot(s.ctx)
	s.Require().NoError(err)

	s.Require().Equal([]bool{false, true}, saved)
	s.Equal(snapshot.Settings.IsOpen, saved[len(saved)-1])
}

func (s *QueueServiceTestSuite) TestLoadInitialSettings() {
	stored := models.DefaultSettings()
	stored.IsOpen = false
	s.mockSettingsRepo.EXPECT().LoadSettings(gomock.Any(), gomock.Any()).Return(&stored, nil)

	loaded := LoadInitialSettings(s.ctx, s.mockSettingsRepo)
	s.False(loaded.IsOpen)
}

func (s *QueueServiceTestSuite) TestLoadInitialSettingsFallsBackToDefaults() {
	s.mockSettingsRepo.EXPECT().LoadSettings(gomock.Any(), gomock.Any()).Return(nil, settingsRepo.ErrSettingsNotFound)
	s.Equal(models.DefaultSettings(), *LoadInitialSettings(s.ctx, s.mockSettingsRepo))

	s.mockSettingsRepo.EXPECT().LoadSettings(gomock.Any(), gomock.Any()).Return(nil, errors.New("permission denied"))
	s.Equal(models.DefaultSettings(), *LoadInitialSettings(s.ctx, s.mockSettingsRepo))
}
