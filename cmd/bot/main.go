package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/queuebot/internal/common/clock"
	"github.com/KirkDiggler/queuebot/internal/common/uuid"
	"github.com/KirkDiggler/queuebot/internal/config"
	"github.com/KirkDiggler/queuebot/internal/handlers/api"
	"github.com/KirkDiggler/queuebot/internal/handlers/discord"
	"github.com/KirkDiggler/queuebot/internal/redisbus"
	queueRepo "github.com/KirkDiggler/queuebot/internal/repositories/queue"
	settingsRepo "github.com/KirkDiggler/queuebot/internal/repositories/settings"
	"github.com/KirkDiggler/queuebot/internal/services/display"
	queueService "github.com/KirkDiggler/queuebot/internal/services/queue"
	"github.com/KirkDiggler/queuebot/internal/ws"
)

func main() {
	cfg, err := config.LoadBot(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Redis client when settings or sync need it
	var redisClient *redis.Client
	if cfg.UsesRedis() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       0,
			// Lets the sync bus bound each publish with a context deadline
			ContextTimeoutEnabled: true,
		})
		defer redisClient.Close()
	}

	// Initialize settings repository
	var settings settingsRepo.Repository
	switch cfg.SettingsBackend {
	case config.SettingsBackendRedis:
		settings, err = settingsRepo.NewRedis(&settingsRepo.RedisConfig{
			RedisClient: redisClient,
		})
	default:
		settings, err = settingsRepo.NewFile(&settingsRepo.FileConfig{
			Path: cfg.SettingsPath,
		})
	}
	if err != nil {
		log.Fatalf("Failed to create settings repository: %v", err)
	}

	// Display sinks register here as they connect
	broadcaster := display.NewBroadcaster()

	// Initialize queue service
	queueSvc, err := queueService.New(&queueService.Config{
		Settings:      queueService.LoadInitialSettings(ctx, settings),
		Store:         queueRepo.NewMemory(),
		SettingsRepo:  settings,
		Publisher:     broadcaster,
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create queue service: %v", err)
	}

	if cfg.Bus == config.BusRedis || cfg.Bus == config.BusBoth {
		bus, err := redisbus.New(&redisbus.Config{
			RedisClient: redisClient,
		})
		if err != nil {
			log.Fatalf("Failed to create Redis sync bus: %v", err)
		}
		broadcaster.Register(bus)

		go func() {
			if err := bus.ServeRequests(ctx, queueSvc); err != nil {
				log.Printf("Redis snapshot requests stopped: %v", err)
			}
		}()
	}

	// Initialize operator API
	apiCfg := &api.Config{
		QueueService: queueSvc,
	}
	if cfg.Bus == config.BusWebSocket || cfg.Bus == config.BusBoth {
		hub, err := ws.NewHub(&ws.HubConfig{
			Registry:  broadcaster,
			Requester: queueSvc,
		})
		if err != nil {
			log.Fatalf("Failed to create display hub: %v", err)
		}
		apiCfg.DisplayHandler = hub.HandleDisplay
	}

	handler, err := api.New(apiCfg)
	if err != nil {
		log.Fatalf("Failed to create API handler: %v", err)
	}

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Router(),
	}
	go func() {
		log.Printf("Operator API listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Operator API failed: %v", err)
		}
	}()

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		ChannelID:     cfg.ChannelID,
		QueueService:  queueSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error stopping operator API: %v", err)
	}

	log.Println("Bot has been shut down")
}
