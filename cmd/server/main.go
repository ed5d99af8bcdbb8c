package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/LegendaryTyan/VKR/internal/api"
	"github.com/LegendaryTyan/VKR/internal/auth"
	"github.com/LegendaryTyan/VKR/internal/config"
	"github.com/LegendaryTyan/VKR/internal/content"
	"github.com/LegendaryTyan/VKR/internal/progression"
	"github.com/LegendaryTyan/VKR/internal/sim"
	"github.com/LegendaryTyan/VKR/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "Override server port")
	demoMode := flag.Bool("demo", false, "Drive the stores with a simulated player")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Optional .env for VKR_PORT / VKR_STATE_DIR overrides.
	_ = godotenv.Load()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	ct, err := content.Load(cfg.Content.Levels, cfg.Content.Achievements, cfg.Content.Games)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load content")
	}

	repo, closeRepo, err := openRepository(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open progression storage")
	}
	defer closeRepo()

	progress, err := progression.NewStore(repo, ct.Levels, ct.Achievements, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load progression record")
	}

	sessionRepo := auth.NewFileSessionRepository(cfg.Storage.Dir)
	sessions := auth.NewStore(credentials(cfg), sessionRepo, progress, cfg.Auth.LoginLatency, log)

	hub := ws.NewHub(func() ws.SnapshotPayload {
		return ws.SnapshotPayload{
			Profile: progress.Record(),
			Session: sessions.State(),
		}
	}, cfg.Stream.SnapshotInterval, log)
	progress.OnEvents(hub.BroadcastEvents)
	sessions.OnState(hub.BroadcastSession)

	sessions.Restore()

	server := api.NewServer(sessions, progress, ct, hub, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *demoMode {
		log.Info().Msg("starting in demo mode")
		cred := auth.DefaultCredentials()[0]
		player := sim.NewPlayer(sessions, progress, ct.Games, cred.Username, cred.Password, 10*time.Second, log)
		go player.Run(ctx)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: server.Router()}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("shutting down")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}

// openRepository builds the progression repository selected in config.
func openRepository(cfg *config.Config, log zerolog.Logger) (progression.Repository, func(), error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		dir := cfg.Storage.Dir
		if dir == "" {
			dir = progression.DefaultStateDir()
		}
		repo, err := progression.OpenSQLite(filepath.Join(dir, "progress.db"))
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close sqlite db")
			}
		}, nil
	default:
		return progression.NewFileRepository(cfg.Storage.Dir), func() {}, nil
	}
}

// credentials maps the config user list onto the auth credential set,
// falling back to the built-in users when none are configured.
func credentials(cfg *config.Config) []auth.Credential {
	if len(cfg.Auth.Users) == 0 {
		return auth.DefaultCredentials()
	}
	creds := make([]auth.Credential, len(cfg.Auth.Users))
	for i, u := range cfg.Auth.Users {
		creds[i] = auth.Credential{
			ID:          u.ID,
			Username:    u.Username,
			Password:    u.Password,
			DisplayName: u.DisplayName,
		}
	}
	return creds
}
