package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/queuebot/internal/models"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileConfig holds configuration for the file-backed settings repository
type FileConfig struct {
	// Path of the settings document. A .yaml or .yml extension selects
	// YAML; anything else is JSON, which may carry // and /* */ comments.
	Path string
}

// fileRepository implements the Repository interface on a single local file
type fileRepository struct {
	path string
	yaml bool
}

// NewFile creates a file-backed settings repository
func NewFile(cfg *FileConfig) (*fileRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Path == "" {
		return nil, errors.New("settings path cannot be empty")
	}

	ext := strings.ToLower(filepath.Ext(cfg.Path))
	return &fileRepository{
		path: cfg.Path,
		yaml: ext == ".yaml" || ext == ".yml",
	}, nil
}

// LoadSettings reads the settings document from disk
func (r *fileRepository) LoadSettings(ctx context.Context, input *LoadSettingsInput) (*models.QueueSettings, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	// Fields missing from the document keep their default values
	settings := models.DefaultSettings()
	if r.yaml {
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
		}
	} else {
		if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings JSON: %w", err)
		}
	}

	return &settings, nil
}

// SaveSettings writes the settings document to disk, replacing it atomically
func (r *fileRepository) SaveSettings(ctx context.Context, input *SaveSettingsInput) error {
	if input == nil || input.Settings == nil {
		return errors.New("input and settings cannot be nil")
	}

	var data []byte
	var err error
	if r.yaml {
		data, err = yaml.Marshal(input.Settings)
	} else {
		data, err = json.MarshalIndent(input.Settings, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	return nil
}
