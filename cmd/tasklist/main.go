package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/tasklist/internal/app"
	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/logging"
	"github.com/sandeepkv93/tasklist/internal/persist"
	"github.com/sandeepkv93/tasklist/internal/scheduler"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tasklist failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPathFlag := flag.String("config", "", "config file path")
	storeFlag := flag.String("store", "", "store kind: memory, file, sqlite or redis")
	storePathFlag := flag.String("store-path", "", "file or sqlite store path")
	logLevelFlag := flag.String("log-level", "", "log level: debug, info, warn or error")
	flag.Parse()

	cfgPath, err := resolveConfigPath(*configPathFlag)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg = config.FromEnv(cfg)
	if *storeFlag != "" {
		cfg.Store = *storeFlag
	}
	if *storePathFlag != "" {
		cfg.StorePath = *storePathFlag
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}
	cfg = cfg.ResolvePaths(filepath.Dir(cfgPath))
	if err := cfg.Validate(); err != nil {
		return err
	}

	logOpts := logging.DefaultOptions()
	logOpts.Level = cfg.LogLevel
	logOpts.Format = cfg.LogFormat
	logOpts.Path = cfg.LogFile
	logger, logCloser, err := logging.Open(logOpts)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Error closing store", "err", err)
		}
	}()
	logger.Info("Opened store", "kind", cfg.Store, "path", cfg.StorePath)

	codec := persist.NewCodec(store, persist.WithKeys(cfg.Keys()), persist.WithLogger(logger.WithPrefix("persist")))
	ctrl := app.New(ctx, codec,
		app.WithLogger(logger.WithPrefix("app")),
		app.WithNotifier(notifierFor(cfg, logger.WithPrefix("notice"))),
		app.WithFilter(cfg.Filter()),
		app.WithSort(cfg.Sort()),
	)

	watcher := scheduler.NewEngine(64)
	watcher.Start()
	defer watcher.Stop()

	program := tea.NewProgram(update.NewModelWithWatcher(ctrl, watcher), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}
	logger.Info("Exiting", "tasks", ctrl.Len(), "watching", watcher.Pending(), "dropped_due_events", watcher.Dropped())
	return nil
}

func resolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.DefaultPath()
}

func notifierFor(cfg config.Config, logger *log.Logger) app.Notifier {
	sink := app.LogNotifier{Logger: logger}
	if !cfg.DesktopNotifications {
		return sink
	}
	return app.MultiNotifier{sink, app.DesktopNotifier{MinLevel: app.LevelSuccess}}
}
