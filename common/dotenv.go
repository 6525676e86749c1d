package common

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads a local .env file into the process environment if one is
// present, for local/dev runs. It is a no-op in production images that
// don't ship a .env file — a missing file is not logged as an error, only
// a genuine read/parse failure is.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}
}
