// Package main provides the entry point for the blindtimer TUI.
//
// blindtimer is a terminal countdown clock for poker tournaments. It walks a
// blind structure level by level, rings the terminal bell on level changes
// and can generate structures with the Gemini API.
//
// Usage:
//
//	blindtimer [command] [arguments]
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/riordanpawley/blindtimer/internal/app"
	"github.com/riordanpawley/blindtimer/internal/cli"
	"github.com/riordanpawley/blindtimer/internal/config"
	"github.com/riordanpawley/blindtimer/internal/core/timer"
	"github.com/riordanpawley/blindtimer/internal/services/clock"
	"github.com/riordanpawley/blindtimer/internal/services/generator"
	"github.com/riordanpawley/blindtimer/internal/services/network"
	"github.com/riordanpawley/blindtimer/internal/services/sound"
	"github.com/riordanpawley/blindtimer/internal/services/wakelock"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}

	cwd, _ := os.Getwd()
	if err := config.LoadEnv(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		return 1
	}

	logger, closeLog := newLogger(cfg)
	defer closeLog()
	slog.SetDefault(logger)

	gen := generator.NewService(
		&http.Client{Timeout: cfg.GeneratorTimeout()},
		generator.Config{
			APIKey:  config.APIKey(),
			Model:   cfg.Generator.Model,
			BaseURL: cfg.Generator.BaseURL,
		},
		logger,
	)

	command := ""
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	deps := cli.NewDependencies(cfg, gen, logger)
	switch command {
	case "", "run":
		err = runClock(cfg, gen, logger)
	case "levels":
		err = cli.LevelsCommand(deps, args)
	case "generate":
		err = cli.GenerateCommand(context.Background(), deps, args)
	case "help", "-h", "--help":
		cli.PrintUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		cli.PrintUsage(os.Stderr)
		return 2
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runClock(cfg *config.Config, gen *generator.Service, logger *slog.Logger) error {
	table, err := cli.LoadTable(cfg)
	if err != nil {
		return err
	}

	var notifier timer.Notifier = sound.Muted{}
	if cfg.Sound.Enabled {
		bell := sound.NewBell(os.Stderr, logger)
		defer bell.Close()
		notifier = bell
	}

	var wakeLock timer.WakeLock
	if cfg.WakeLock.Enabled {
		inhibitor := wakelock.New(wakelock.ExecStarter{}, logger)
		defer inhibitor.Release()
		wakeLock = inhibitor
	}

	driver := clock.NewDriver(clockwork.NewRealClock(), cfg.TickPeriod(), logger)
	defer driver.Stop()

	ctrl, err := timer.NewController(table, timer.Deps{
		Notifier:       notifier,
		Clock:          driver,
		WakeLock:       wakeLock,
		Logger:         logger,
		WarningSeconds: cfg.Timer.WarningSeconds,
	})
	if err != nil {
		return err
	}

	model := app.New(app.Options{
		Controller: ctrl,
		Ticks:      driver,
		Generator:  gen,
		Network:    network.NewStatusChecker(nil, cfg.Generator.BaseURL, logger),
		Config:     cfg,
		Logger:     logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// newLogger writes to the configured log file; the terminal belongs to the UI
func newLogger(cfg *config.Config) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	if err := os.MkdirAll(filepath.Dir(cfg.LogPath()), 0755); err == nil {
		f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }
		}
	}
	return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}
}
