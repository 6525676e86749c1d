// Package redis caches the latest per-symbol order book snapshot so a
// dashboard can read current depth without replaying Kafka. It is a read
// optimization only: bookworker is the source of truth, and a cache miss
// or write failure here never blocks the match loop.
//
// Key schema, one instrument per group of keys (grounded on
// alanyoungcy-polymarketbot/internal/cache/redis/orderbook_cache.go, adapted
// from float64 price/size pairs to the fixed-point uint64 ticks and shares
// internal/book already uses):
//
//	book:{symbol}:bids — sorted set, member = price (as decimal string), score = price
//	book:{symbol}:asks — sorted set, member = price (as decimal string), score = price
//	book:{symbol}:bidqty — hash, price string -> quantity string
//	book:{symbol}:askqty — hash, price string -> quantity string
//	book:{symbol}:meta — hash with "ts" (RFC3339Nano) and "reason"
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marketpulse-systems/itchbook/model"
)

// SnapshotCache writes and reads model.BookSnapshot values against Redis.
type SnapshotCache struct {
	rdb *redis.Client
}

// NewSnapshotCache wraps an already-constructed client. Connection setup
// (address, retries) is the caller's concern, the way the teacher keeps
// connection bootstrapping in a factory separate from the thing that uses
// the connection.
func NewSnapshotCache(rdb *redis.Client) *SnapshotCache {
	return &SnapshotCache{rdb: rdb}
}

func bidsKey(symbol string) string   { return "book:" + symbol + ":bids" }
func asksKey(symbol string) string   { return "book:" + symbol + ":asks" }
func bidQtyKey(symbol string) string { return "book:" + symbol + ":bidqty" }
func askQtyKey(symbol string) string { return "book:" + symbol + ":askqty" }
func metaKey(symbol string) string   { return "book:" + symbol + ":meta" }

// SetSnapshot atomically replaces the cached snapshot for one symbol.
func (c *SnapshotCache) SetSnapshot(ctx context.Context, snap model.BookSnapshot) error {
	bk, ak := bidsKey(snap.Symbol), asksKey(snap.Symbol)
	bq, aq := bidQtyKey(snap.Symbol), askQtyKey(snap.Symbol)
	mk := metaKey(snap.Symbol)

	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, bk, ak, bq, aq, mk)

	for _, lvl := range snap.Bids {
		priceStr := strconv.FormatUint(lvl.Price, 10)
		pipe.ZAdd(ctx, bk, redis.Z{Score: float64(lvl.Price), Member: priceStr})
		pipe.HSet(ctx, bq, priceStr, strconv.FormatUint(lvl.Quantity, 10))
	}
	for _, lvl := range snap.Asks {
		priceStr := strconv.FormatUint(lvl.Price, 10)
		pipe.ZAdd(ctx, ak, redis.Z{Score: float64(lvl.Price), Member: priceStr})
		pipe.HSet(ctx, aq, priceStr, strconv.FormatUint(lvl.Quantity, 10))
	}
	pipe.HSet(ctx, mk, "ts", snap.CreatedAt.Format(time.RFC3339Nano), "reason", snap.Reason)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: set snapshot %s: %w", snap.Symbol, err)
	}
	return nil
}

// GetSnapshot reconstructs the cached snapshot for symbol. It returns
// redis.Nil-wrapped as an error if nothing has been cached for it yet.
func (c *SnapshotCache) GetSnapshot(ctx context.Context, symbol string) (model.BookSnapshot, error) {
	bk, ak := bidsKey(symbol), asksKey(symbol)
	bq, aq := bidQtyKey(symbol), askQtyKey(symbol)
	mk := metaKey(symbol)

	pipe := c.rdb.Pipeline()
	bidsCmd := pipe.ZRevRangeWithScores(ctx, bk, 0, -1)
	asksCmd := pipe.ZRangeWithScores(ctx, ak, 0, -1)
	bidQtyCmd := pipe.HGetAll(ctx, bq)
	askQtyCmd := pipe.HGetAll(ctx, aq)
	metaCmd := pipe.HGetAll(ctx, mk)

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return model.BookSnapshot{}, fmt.Errorf("redis: get snapshot %s: %w", symbol, err)
	}

	metaVals, _ := metaCmd.Result()
	if len(metaVals) == 0 {
		return model.BookSnapshot{}, fmt.Errorf("redis: no cached snapshot for %s: %w", symbol, redis.Nil)
	}

	snap := model.BookSnapshot{Symbol: symbol, Reason: metaVals["reason"]}
	if ts, ok := metaVals["ts"]; ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			snap.CreatedAt = parsed
		}
	}

	bidQty, _ := bidQtyCmd.Result()
	snap.Bids = levelsFromZ(bidsCmd, bidQty)
	askQty, _ := askQtyCmd.Result()
	snap.Asks = levelsFromZ(asksCmd, askQty)

	return snap, nil
}

func levelsFromZ(cmd *redis.ZSliceCmd, qty map[string]string) []model.DepthLevel {
	zs, _ := cmd.Result()
	out := make([]model.DepthLevel, 0, len(zs))
	for _, z := range zs {
		priceStr, ok := z.Member.(string)
		if !ok {
			continue
		}
		price, err := strconv.ParseUint(priceStr, 10, 64)
		if err != nil {
			continue
		}
		var quantity uint64
		if qtyStr, ok := qty[priceStr]; ok {
			quantity, _ = strconv.ParseUint(qtyStr, 10, 64)
		}
		out = append(out, model.DepthLevel{Price: price, Quantity: quantity})
	}
	return out
}
