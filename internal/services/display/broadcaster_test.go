package display

import (
	"context"
	"errors"
	"testing"

	"github.com/KirkDiggler/queuebot/internal/models"
	"github.com/KirkDiggler/queuebot/internal/services/display/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BroadcasterTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	sinkA       *mocks.MockSink
	sinkB       *mocks.MockSink
	broadcaster *Broadcaster
	snapshot    *models.Snapshot
	ctx         context.Context
}

func (s *BroadcasterTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.sinkA = mocks.NewMockSink(s.mockCtrl)
	s.sinkB = mocks.NewMockSink(s.mockCtrl)
	s.sinkA.EXPECT().ID().Return("a").AnyTimes()
	s.sinkB.EXPECT().ID().Return("b").AnyTimes()

	s.broadcaster = NewBroadcaster()
	s.snapshot = &models.Snapshot{
		Queue:    []models.QueueEntry{{ID: "1", Username: "Alice"}},
		Settings: models.DefaultSettings(),
	}
	s.ctx = context.Background()
}

func (s *BroadcasterTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBroadcasterTestSuite(t *testing.T) {
	suite.Run(t, new(BroadcasterTestSuite))
}

func (s *BroadcasterTestSuite) TestPublishWithNoSinks() {
	s.Equal(0, s.broadcaster.Publish(s.ctx, s.snapshot))
}

func (s *BroadcasterTestSuite) TestPublishToEverySinkInOrder() {
	s.broadcaster.Register(s.sinkB)
	s.broadcaster.Register(s.sinkA)

	gomock.InOrder(
		s.sinkA.EXPECT().Send(gomock.Any(), s.snapshot).Return(nil),
		s.sinkB.EXPECT().Send(gomock.Any(), s.snapshot).Return(nil),
	)

	s.Equal(2, s.broadcaster.Publish(s.ctx, s.snapshot))
}

func (s *BroadcasterTestSuite) TestFailedSinkStaysRegistered() {
	s.broadcaster.Register(s.sinkA)
	s.broadcaster.Register(s.sinkB)

	s.sinkA.EXPECT().Send(gomock.Any(), s.snapshot).Return(errors.New("connection reset")).Times(2)
	s.sinkB.EXPECT().Send(gomock.Any(), s.snapshot).Return(nil).Times(2)

	s.Equal(1, s.broadcaster.Publish(s.ctx, s.snapshot))
	s.Equal(2, s.broadcaster.Count())

	// The next publish attempts delivery again
	s.Equal(1, s.broadcaster.Publish(s.ctx, s.snapshot))
}

func (s *BroadcasterTestSuite) TestUnregister() {
	s.broadcaster.Register(s.sinkA)
	s.broadcaster.Register(s.sinkB)

	s.broadcaster.Unregister("a")
	s.broadcaster.Unregister("missing")
	s.Equal(1, s.broadcaster.Count())

	s.sinkB.EXPECT().Send(gomock.Any(), s.snapshot).Return(nil)
	s.Equal(1, s.broadcaster.Publish(s.ctx, s.snapshot))
}
