// Command boardview is a terminal preview of a board session: the arrow keys
// turn the viewer's head and space is the trigger.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"

	"github.com/rocketscienceinc/tictactoe-xr/internal/config"
	"github.com/rocketscienceinc/tictactoe-xr/internal/repository"
	"github.com/rocketscienceinc/tictactoe-xr/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-xr/internal/scene"
	"github.com/rocketscienceinc/tictactoe-xr/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-xr/internal/vmath"
)

const (
	frameInterval = 16 * time.Millisecond
	turnStep      = 2 * math.Pi / 180
	maxPitch      = 80 * math.Pi / 180
	sessionID     = "boardview"
)

var eye = vmath.V3(0, 1.6, 0)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "boardview: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	optionsPath := flag.String("options", "", "read the option record from this JSON file instead of redis")
	logPath := flag.String("log", "", "write JSON logs to this file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	conf := config.MustLoadEnv()

	logger, closeLog, err := initLogger(*logPath, conf)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager, closeStore, err := newManager(ctx, logger, conf, *optionsPath)
	if err != nil {
		return err
	}
	defer closeStore()

	session, effects, err := manager.Start(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer func() { _, _ = manager.End(sessionID) }()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err = screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()

	sound, err := newChime()
	if err != nil {
		// non-fatal, the preview runs without sound
		logger.Warn("audio init failed", "error", err)
	}

	v := newView(screen, session.Objects(), session.Topic())
	v.apply(effects)

	loop(screen, session, v, sound)

	return nil
}

// newManager reads options from path when given, otherwise from redis.
func newManager(ctx context.Context, logger *slog.Logger, conf *config.Config, path string) (*usecase.SessionManager, func(), error) {
	if path != "" {
		manager := usecase.NewSessionManager(logger, &fileOptions{path: path}, conf.Options.Key, scene.DefaultLayout())
		return manager, func() {}, nil
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	optionRepo := repository.NewOptionRepository(redisStorage)
	manager := usecase.NewSessionManager(logger, optionRepo, conf.Options.Key, scene.DefaultLayout())

	return manager, func() { _ = redisStorage.Close() }, nil
}

// initLogger keeps logs off the terminal tcell draws on.
func initLogger(path string, conf *config.Config) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: config.ParseLevel(conf.LogLevel)}))

	return logger, func() { _ = file.Close() }, nil
}
