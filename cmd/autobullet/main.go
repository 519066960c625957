// Package main is the entry point for the autobullet tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/dshills/autobullet/internal/app"
	"github.com/dshills/autobullet/internal/config"
	"github.com/dshills/autobullet/internal/logging"
	"github.com/dshills/autobullet/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "autobullet",
		Usage:   "Continue markdown bullet lists as you type",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML or YAML config file",
				Sources: cli.EnvVars("AUTOBULLET_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			replayCommand(),
			checkCommand(),
			editCommand(),
		},
	}
}

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "Replay Lua editing scenarios",
		ArgsUsage: "<script.lua>...",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Usage:   "Maximum scripts run at once (0 = GOMAXPROCS)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-script execution timeout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return errors.New("replay: at least one script is required")
			}
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			_, err = app.Replay(ctx, paths, app.ReplayOptions{
				Config:   cfg,
				Logger:   logger,
				Out:      os.Stdout,
				Parallel: int(cmd.Int("parallel")),
				Timeout:  cmd.Duration("timeout"),
			})
			return err
		},
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Print the bullet classification of each line of a file",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("check: exactly one file is required")
			}
			_, err := app.Check(cmd.Args().First(), os.Stdout)
			return err
		},
	}
}

func editCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a file in the terminal with bullet continuation",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("edit: exactly one file is required")
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			// The terminal is in use; keep log output off it.
			if cfg.Log.Output == "stderr" || cfg.Log.Output == "stdout" {
				cfg.Log.Output = filepath.Join(os.TempDir(), "autobullet.log")
			}
			logger, err := logging.New(cfg.Logging())
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return edit(ctx, cmd.String("config"), cmd.Args().First(), cfg, logger)
		},
	}
}

func edit(ctx context.Context, configPath, path string, cfg *config.Config, logger *logging.Logger) error {
	session, err := app.NewSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer session.Close(context.WithoutCancel(ctx))

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer term.Shutdown()

	ed, err := app.NewEditor(ctx, session, term, path)
	if err != nil {
		return err
	}

	if configPath != "" {
		w, err := config.NewWatcher(configPath, config.WithWatchLogger(logger))
		if err != nil {
			logger.Warn("config reload disabled: %v", err)
		} else {
			defer w.Close()
			watchCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go func() { _ = w.Run(watchCtx, ed.Reload) }()
		}
	}

	return ed.Run(ctx)
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if level := cmd.String("log-level"); level != "" {
		if _, ok := logging.ParseLevel(level); !ok {
			return nil, fmt.Errorf("invalid log level %q", level)
		}
		cfg.Log.Level = level
	}
	return cfg, nil
}

func setup(cmd *cli.Command) (*config.Config, *logging.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}
