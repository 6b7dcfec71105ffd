// Package config reads process configuration from the environment, an
// optional .env file and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Settings backends
const (
	SettingsBackendFile  = "file"
	SettingsBackendRedis = "redis"
)

// Sync buses between owner and display
const (
	BusWebSocket = "websocket"
	BusRedis     = "redis"
	BusBoth      = "both"
)

// Redis holds the Redis connection settings
type Redis struct {
	Addr     string
	Password string
}

// BotConfig configures the owner process
type BotConfig struct {
	DiscordToken  string
	ApplicationID string
	GuildID       string
	ChannelID     string

	HTTPAddr string

	SettingsBackend string
	SettingsPath    string

	Bus   string
	Redis Redis
}

// UsesRedis reports whether any component needs a Redis connection
func (c *BotConfig) UsesRedis() bool {
	return c.SettingsBackend == SettingsBackendRedis || c.Bus == BusRedis || c.Bus == BusBoth
}

// DisplayConfig configures a display process
type DisplayConfig struct {
	OwnerURL string
	Bus      string
	Redis    Redis
}

// LoadBot reads the owner configuration. args excludes the program name.
func LoadBot(args []string) (*BotConfig, error) {
	loadDotEnv()

	cfg := &BotConfig{
		DiscordToken:    getEnv("DISCORD_TOKEN", ""),
		ApplicationID:   getEnv("APPLICATION_ID", ""),
		GuildID:         getEnv("GUILD_ID", ""),
		ChannelID:       getEnv("DISCORD_CHANNEL_ID", ""),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		SettingsBackend: getEnv("SETTINGS_BACKEND", SettingsBackendFile),
		SettingsPath:    getEnv("SETTINGS_PATH", "queue-settings.json"),
		Bus:             getEnv("SYNC_BUS", BusWebSocket),
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
	}

	flags := pflag.NewFlagSet("queuebot", pflag.ContinueOnError)
	flags.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "address for the operator API and display endpoint")
	flags.StringVar(&cfg.SettingsBackend, "settings-backend", cfg.SettingsBackend, "where settings are stored: file or redis")
	flags.StringVar(&cfg.SettingsPath, "settings", cfg.SettingsPath, "settings file (.json, .jsonc, .yaml)")
	flags.StringVar(&cfg.Bus, "bus", cfg.Bus, "display sync bus: websocket, redis or both")
	flags.StringVar(&cfg.Redis.Addr, "redis-addr", cfg.Redis.Addr, "Redis address")
	flags.StringVar(&cfg.ChannelID, "channel", cfg.ChannelID, "only handle chat commands in this channel")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *BotConfig) validate() error {
	if c.DiscordToken == "" {
		return errors.New("DISCORD_TOKEN environment variable is required")
	}

	if c.SettingsBackend != SettingsBackendFile && c.SettingsBackend != SettingsBackendRedis {
		return fmt.Errorf("unknown settings backend %q", c.SettingsBackend)
	}

	if err := validateBus(c.Bus); err != nil {
		return err
	}

	if c.UsesRedis() && c.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required when Redis is used")
	}

	return nil
}

// LoadDisplay reads the display configuration. args excludes the program name.
func LoadDisplay(args []string) (*DisplayConfig, error) {
	loadDotEnv()

	cfg := &DisplayConfig{
		OwnerURL: getEnv("OWNER_URL", "ws://localhost:8080/ws/display"),
		Bus:      getEnv("SYNC_BUS", BusWebSocket),
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
	}

	flags := pflag.NewFlagSet("queuebot-display", pflag.ContinueOnError)
	flags.StringVar(&cfg.OwnerURL, "owner-url", cfg.OwnerURL, "owner's display WebSocket URL")
	flags.StringVar(&cfg.Bus, "bus", cfg.Bus, "sync bus: websocket or redis")
	flags.StringVar(&cfg.Redis.Addr, "redis-addr", cfg.Redis.Addr, "Redis address")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	// A display listens on one bus only
	if cfg.Bus == BusBoth {
		cfg.Bus = BusWebSocket
	}

	if err := validateBus(cfg.Bus); err != nil {
		return nil, err
	}

	if cfg.Bus == BusRedis && cfg.Redis.Addr == "" {
		return nil, errors.New("REDIS_ADDR is required for the redis bus")
	}

	if cfg.Bus == BusWebSocket && cfg.OwnerURL == "" {
		return nil, errors.New("OWNER_URL is required for the websocket bus")
	}

	return cfg, nil
}

func validateBus(bus string) error {
	switch bus {
	case BusWebSocket, BusRedis, BusBoth:
		return nil
	default:
		return fmt.Errorf("unknown sync bus %q", bus)
	}
}

// loadDotEnv loads .env into the environment without overriding variables
// that are already set
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
