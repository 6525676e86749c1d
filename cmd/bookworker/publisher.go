package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/marketpulse-systems/itchbook/internal/book"
	"github.com/marketpulse-systems/itchbook/internal/engine"
	"github.com/marketpulse-systems/itchbook/internal/streaming"
	"github.com/marketpulse-systems/itchbook/model"
)

type jsonSender interface {
	Send(topic, key string, v any) error
}

type snapshotCache interface {
	SetSnapshot(ctx context.Context, snap model.BookSnapshot) error
}

// publisher fans one engine.Fill or a periodic depth snapshot out to every
// downstream sink: Kafka for durable event history, Redis for the latest
// snapshot a dashboard reads on load, and the websocket hub for anything
// already connected.
type publisher struct {
	executedTopic string
	snapshotTopic string

	executed  jsonSender
	snapshots jsonSender

	cache snapshotCache
	hub   *streaming.Hub
}

// PublishFill converts one engine.Fill into a model.ExecutedTrade, tagging
// it with a fresh execution ID (ITCH match numbers are not guaranteed
// globally unique across sessions the way this pipeline's own audit trail
// needs to be), and republishes it to Kafka and the websocket hub.
func (p *publisher) PublishFill(f engine.Fill) {
	trade := model.ExecutedTrade{
		ExecutionID: uuid.NewString(),
		Symbol:      f.Symbol,
		Price:       f.Price,
		Quantity:    f.Quantity,
		MakerID:     f.MakerID,
		TakerID:     f.TakerID,
		MakerSide:   f.MakerSide.String(),
		ExecutedAt:  time.Now().UTC(),
	}

	if err := p.executed.Send(p.executedTopic, trade.Symbol, trade); err != nil {
		slog.Error("failed to publish executed trade", "error", err, "symbol", trade.Symbol)
	}

	if payload, err := json.Marshal(trade); err == nil {
		p.hub.Broadcast(payload)
	}
}

// PublishSnapshot converts a book.Depth into a model.BookSnapshot and
// republishes it to Kafka, Redis, and the websocket hub. reason documents
// why the snapshot fired ("timer" or "threshold" from the snapshotter), the same
// field the teacher's own snapshotter tags each flush with.
func (p *publisher) PublishSnapshot(symbol string, depth book.Depth, reason string) {
	snap := model.BookSnapshot{
		Symbol:    symbol,
		Bids:      convertLevels(depth.Bids),
		Asks:      convertLevels(depth.Asks),
		CreatedAt: time.Now().UTC(),
		Reason:    reason,
	}

	if err := p.snapshots.Send(p.snapshotTopic, symbol, snap); err != nil {
		slog.Error("failed to publish book snapshot", "error", err, "symbol", symbol)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.cache.SetSnapshot(ctx, snap); err != nil {
		slog.Error("failed to cache book snapshot", "error", err, "symbol", symbol)
	}

	if payload, err := json.Marshal(snap); err == nil {
		p.hub.Broadcast(payload)
	}
}

func convertLevels(levels []book.DepthLevel) []model.DepthLevel {
	out := make([]model.DepthLevel, len(levels))
	for i, l := range levels {
		out[i] = model.DepthLevel{Price: l.Price, Quantity: l.Quantity}
	}
	return out
}
