// Package config loads bookworker's engine-shaped tunables: object pool
// sizing, snapshot cadence, and the Redis address the snapshot cache
// writes to. Per-process secrets (broker addresses, topic names, group
// IDs, ports) stay on common.GetEnv, the way the teacher's own services
// read them; this file only exists for settings that shape the matching
// engine itself and are more naturally versioned as a file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// BookEngine is the subset of Config that shapes internal/engine.
type BookEngine struct {
	OrdersPerSymbol   int `toml:"orders_per_symbol"`
	SnapshotThreshold int `toml:"snapshot_threshold"`
}

type snapshotInterval struct {
	time.Duration
}

func (d *snapshotInterval) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config is bookworker's TOML-file configuration.
type Config struct {
	Book             BookEngine       `toml:"book"`
	SnapshotInterval snapshotInterval `toml:"snapshot_interval"`
	RedisAddr        string           `toml:"redis_addr"`
}

// Defaults returns the configuration used when no TOML file is supplied.
func Defaults() Config {
	return Config{
		Book: BookEngine{
			OrdersPerSymbol:   1 << 16,
			SnapshotThreshold: 5_000,
		},
		SnapshotInterval: snapshotInterval{5 * time.Second},
		RedisAddr:        "localhost:6379",
	}
}

// Load reads a TOML file at path on top of Defaults(). A missing path
// (empty string) returns the defaults unchanged, matching bookworker's
// "BOOKWORKER_CONFIG unset means use built-in tuning" behavior.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyEnvOverrides lets a small number of well-known environment
// variables win over the TOML file, the way the teacher layers per-deploy
// secrets on top of defaults elsewhere in common.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BOOK_ORDERS_PER_SYMBOL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Book.OrdersPerSymbol = n
		}
	}
	if v := os.Getenv("BOOK_SNAPSHOT_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Book.SnapshotThreshold = n
		}
	}
	if v := os.Getenv("BOOK_SNAPSHOT_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SnapshotInterval.Duration = d
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
}
