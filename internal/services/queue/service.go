package queue

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/KirkDiggler/queuebot/internal/common/clock"
	"github.com/KirkDiggler/queuebot/internal/models"
	queueRepo "github.com/KirkDiggler/queuebot/internal/repositories/queue"
	settingsRepo "github.com/KirkDiggler/queuebot/internal/repositories/settings"
)

// service implements the Service interface
type service struct {
	// mu serializes every read and write of store and settings, and the
	// publish that follows a write, so displays see changes in order
	mu       sync.Mutex
	store    queueRepo.Repository
	settings models.QueueSettings

	// saveMu is held from the settings merge through the save, so the
	// stored document always ends at the last merged state. It is taken
	// before mu.
	saveMu sync.Mutex

	settingsRepo settingsRepo.Repository
	publisher    Publisher
	clock        clock.Clock
	processor    *Processor
}

// New creates a new queue service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Store == nil {
		return nil, ErrNilStore
	}

	if cfg.SettingsRepo == nil {
		return nil, ErrNilSettingsRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	settings := models.DefaultSettings()
	if cfg.Settings != nil {
		settings = cfg.Settings.Clone()
	}

	return &service{
		store:        cfg.Store,
		settings:     settings,
		settingsRepo: cfg.SettingsRepo,
		publisher:    cfg.Publisher,
		clock:        cfg.Clock,
		processor:    NewProcessor(cfg.Clock, cfg.UUIDGenerator),
	}, nil
}

// LoadInitialSettings reads the persisted settings, falling back to the
// defaults when none are stored or the store cannot be read
func LoadInitialSettings(ctx context.Context, repo settingsRepo.Repository) *models.QueueSettings {
	loaded, err := repo.LoadSettings(ctx, &settingsRepo.LoadSettingsInput{})
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			log.Printf("Failed to load settings, using defaults: %v", err)
		}
		defaults := models.DefaultSettings()
		return &defaults
	}

	return loaded
}

// ProcessCommand runs a chat command against the live queue
func (s *service) ProcessCommand(ctx context.Context, input *ProcessCommandInput) (*ProcessCommandOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	response, changed := s.processor.Process(input.Command, s.store, &s.settings)
	if changed {
		s.publishLocked(ctx, false)
	}

	return &ProcessCommandOutput{
		Response: response,
		Changed:  changed,
	}, nil
}

// MoveEntry reorders the queue
func (s *service) MoveEntry(ctx context.Context, input *MoveEntryInput) error {
	if input == nil {
		return ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.store.Len()
	if input.FromIndex < 0 || input.FromIndex >= size || input.ToIndex < 0 || input.ToIndex >= size {
		return ErrInvalidIndex
	}

	if input.FromIndex == input.ToIndex {
		return nil
	}

	s.store.Move(input.FromIndex, input.ToIndex)
	s.publishLocked(ctx, false)
	return nil
}

// SetPlaying marks or unmarks a user as playing
func (s *service) SetPlaying(ctx context.Context, input *SetPlayingInput) error {
	if input == nil {
		return ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.store.Find(input.Username)
	if !ok {
		return ErrEntryNotFound
	}

	if entry.IsPlaying == input.Playing {
		return nil
	}

	s.store.SetPlaying(input.Username, input.Playing, s.clock.Now())
	s.publishLocked(ctx, false)
	return nil
}

// RemoveEntry removes a user on the operator's behalf
func (s *service) RemoveEntry(ctx context.Context, input *RemoveEntryInput) error {
	if input == nil {
		return ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Find(input.Username); !ok {
		return ErrEntryNotFound
	}

	s.store.Remove(input.Username)
	s.publishLocked(ctx, false)
	return nil
}

// ClearQueue removes every entry
func (s *service) ClearQueue(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Len() == 0 {
		return nil
	}

	s.store.Clear()
	s.publishLocked(ctx, false)
	return nil
}

// UpdateSettings merges a partial update into the settings, pushes the
// result to displays and persists it. A failed save keeps the new
// settings live. Ranges are not checked here; the operator API does that.
func (s *service) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	merged := s.settings.Merge(input.Update)
	s.settings = merged
	s.publishLocked(ctx, false)
	s.mu.Unlock()

	toSave := merged.Clone()
	persisted := true
	if err := s.settingsRepo.SaveSettings(ctx, &settingsRepo.SaveSettingsInput{
		Settings: &toSave,
	}); err != nil {
		log.Printf("Failed to save settings: %v", err)
		persisted = false
	}

	return &UpdateSettingsOutput{
		Settings:  merged.Clone(),
		Persisted: persisted,
	}, nil
}

// GetSnapshot returns a copy of the current queue and settings
func (s *service) GetSnapshot(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked(), nil
}

// RequestSnapshot pushes the current state to every display. Unlike the
// push after a change it ignores displaySettings.enabled, since the caller
// is a display asking to be initialized.
func (s *service) RequestSnapshot(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.publishLocked(ctx, true)
	return nil
}

func (s *service) snapshotLocked() *models.Snapshot {
	return &models.Snapshot{
		Queue:    s.store.List(),
		Settings: s.settings.Clone(),
	}
}

// publishLocked must be called with mu held
func (s *service) publishLocked(ctx context.Context, force bool) {
	if s.publisher == nil {
		return
	}

	if !force && !s.settings.DisplaySettings.Enabled {
		return
	}

	s.publisher.Publish(ctx, s.snapshotLocked())
}
