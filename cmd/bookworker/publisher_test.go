package main

import (
	"context"
	"testing"

	"github.com/marketpulse-systems/itchbook/internal/book"
	"github.com/marketpulse-systems/itchbook/internal/engine"
	"github.com/marketpulse-systems/itchbook/internal/streaming"
	"github.com/marketpulse-systems/itchbook/model"
)

type noopCache struct{}

func (noopCache) SetSnapshot(_ context.Context, _ model.BookSnapshot) error { return nil }

type recordingSender struct {
	sent []struct {
		topic, key string
		value      any
	}
}

func (s *recordingSender) Send(topic, key string, v any) error {
	s.sent = append(s.sent, struct {
		topic, key string
		value      any
	}{topic, key, v})
	return nil
}

func newTestPublisher(executed, snapshots *recordingSender) *publisher {
	return &publisher{
		executedTopic: "executed-trades",
		snapshotTopic: "book-snapshots",
		executed:      executed,
		snapshots:     snapshots,
		cache:         noopCache{},
		hub:           streaming.NewHub(),
	}
}

func TestPublishFillSendsToExecutedTopicKeyedBySymbol(t *testing.T) {
	executed := &recordingSender{}
	pub := newTestPublisher(executed, &recordingSender{})

	pub.PublishFill(engine.Fill{
		Symbol: "AAPL",
		Execution: book.Execution{
			MakerID:   1,
			TakerID:   2,
			Price:     1_000_000,
			Quantity:  50,
			MakerSide: book.Buy,
		},
	})

	if len(executed.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(executed.sent))
	}
	if executed.sent[0].topic != "executed-trades" || executed.sent[0].key != "AAPL" {
		t.Fatalf("unexpected topic/key: %+v", executed.sent[0])
	}
}
