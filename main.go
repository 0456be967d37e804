package main

import (
	"log/slog"
	"os"

	"github.com/willclo1/SpyPointAnalysis/cmd"
	"github.com/willclo1/SpyPointAnalysis/internal/conf"
	"github.com/willclo1/SpyPointAnalysis/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		logging.Init(slog.LevelInfo)
		logging.Fatal("error loading configuration", "error", err)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	// run owns the file logger; it must be closed before the process exits
	if err := run(settings, level); err != nil {
		os.Exit(1)
	}
}

func run(settings *conf.Settings, level slog.Level) error {
	if settings.Main.Log.Enabled {
		fileLogger, closeLogger, err := logging.NewFileLogger(&settings.Main.Log, settings.Main.Name, level)
		if err != nil {
			logging.Error("error opening log file", "error", err)
			return err
		}
		defer func() { _ = closeLogger() }()
		slog.SetDefault(fileLogger)
	}

	if err := cmd.RootCommand(settings).Execute(); err != nil {
		logging.Error("command failed", "error", err)
		return err
	}
	return nil
}
