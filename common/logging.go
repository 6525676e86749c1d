package common

import (
	"log/slog"
	"os"
)

// InitServiceLogging installs a JSON slog handler at the level named by
// LOG_LEVEL (debug/info/warn/error, default info), matching how the
// pipeline's long-running services ship logs. name is attached to every
// record so multiple services can share one log sink.
func InitServiceLogging(name string) {
	level, _ := GetEnv("LOG_LEVEL", "info")
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})).With("service", name))
}

// InitCLILogging installs a plain text slog handler, for a human running a
// command directly rather than an orchestrator scraping structured logs.
func InitCLILogging() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
