package ws

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// Source connects a display process to the owner's hub. It requests a
// snapshot every time it connects and hands each received snapshot to
// the caller.
type Source struct {
	url          string
	dialer       *websocket.Dialer
	retryBackoff time.Duration
}

// SourceConfig holds configuration for a display-side source
type SourceConfig struct {
	// URL is the owner's display endpoint, e.g. ws://localhost:8080/ws/display
	URL string

	// RetryBackoff is the wait between reconnect attempts; defaults to 2s
	RetryBackoff time.Duration
}

// NewSource creates a source for cfg.URL
func NewSource(cfg *SourceConfig) (*Source, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.URL == "" {
		return nil, errors.New("owner URL cannot be empty")
	}

	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 2 * time.Second
	}

	return &Source{
		url:          cfg.URL,
		dialer:       websocket.DefaultDialer,
		retryBackoff: backoff,
	}, nil
}

// Run delivers snapshots to onSnapshot until ctx is cancelled, reconnecting
// whenever the owner goes away
func (s *Source) Run(ctx context.Context, onSnapshot func(*models.Snapshot)) error {
	for {
		err := s.session(ctx, onSnapshot)
		if ctx.Err() != nil {
			return nil
		}
		log.Printf("Display connection to %s lost: %v", s.url, err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.retryBackoff):
		}
	}
}

func (s *Source) session(ctx context.Context, onSnapshot func(*models.Snapshot)) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	if err := conn.WriteJSON(models.SyncMessage{Type: models.SyncMessageRequestSnapshot}); err != nil {
		return err
	}
	log.Printf("Connected to owner at %s, snapshot requested", s.url)

	for {
		var msg models.SyncMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		if msg.Type != models.SyncMessageQueueSnapshot || msg.Snapshot == nil {
			continue
		}
		onSnapshot(msg.Snapshot)
	}
}
