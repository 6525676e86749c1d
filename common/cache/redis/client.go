package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectWithRetries dials addr and retries with a fixed backoff, mirroring
// common/database.ConnectWithRetries — every external dependency this
// pipeline talks to gets the same "don't crash-loop the pod on a slow
// dependency at startup" treatment.
func ConnectWithRetries(addr string) (*redis.Client, error) {
	const maxRetries = 10
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	var err error
	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = rdb.Ping(ctx).Err()
		cancel()
		if err == nil {
			slog.Info("connected to redis", "addr", addr)
			return rdb, nil
		}
		slog.Warn("waiting for redis...", "attempt", i+1, "error", err)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("could not connect to redis at %s after %d attempts: %w", addr, maxRetries, err)
}
