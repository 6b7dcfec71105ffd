package main

import (
	"context"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/queuebot/internal/common/clock"
	"github.com/KirkDiggler/queuebot/internal/config"
	"github.com/KirkDiggler/queuebot/internal/display"
	"github.com/KirkDiggler/queuebot/internal/models"
	"github.com/KirkDiggler/queuebot/internal/redisbus"
	"github.com/KirkDiggler/queuebot/internal/ws"
)

// source is the inbound side of whichever sync bus is configured
type source interface {
	Run(ctx context.Context, onSnapshot func(*models.Snapshot)) error
}

func main() {
	cfg, err := config.LoadDisplay(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The terminal belongs to the overlay; logs go to a file
	logFile, err := tea.LogToFile("queuebot-display.log", "display")
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	var src source
	switch cfg.Bus {
	case config.BusRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			// Lets the sync bus bound each publish with a context deadline
			ContextTimeoutEnabled: true,
		})
		defer redisClient.Close()

		src, err = redisbus.New(&redisbus.Config{RedisClient: redisClient})
	default:
		src, err = ws.NewSource(&ws.SourceConfig{URL: cfg.OwnerURL})
	}
	if err != nil {
		log.Fatalf("Failed to create sync source: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	program := tea.NewProgram(display.NewModel(display.NewMirror(), clock.New()), tea.WithAltScreen())

	go func() {
		err := src.Run(ctx, func(snapshot *models.Snapshot) {
			program.Send(display.SnapshotMsg{Snapshot: snapshot})
		})
		if err != nil {
			log.Printf("Sync stopped: %v", err)
		}
	}()

	if _, err := program.Run(); err != nil {
		log.Fatalf("Display failed: %v", err)
	}
}
