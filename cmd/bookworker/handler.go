package main

import (
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/marketpulse-systems/itchbook/internal/engine"
	"github.com/marketpulse-systems/itchbook/internal/itch"
)

// consumerHandler implements sarama.ConsumerGroupHandler over the raw ITCH
// byte topic feedgateway republishes to. Each message on the topic is one
// whole ITCH frame (feedgateway already split the stream), so ConsumeClaim
// hands each one straight to itch.ParseOne rather than running the
// streaming parser over a byte buffer, the way worker/main.go's ConsumeClaim
// unmarshalled one protobuf TradeEvent per message.
type consumerHandler struct {
	eng     *engine.Engine
	snapper *snapshotter
}

func newConsumerHandler(eng *engine.Engine, snapper *snapshotter) *consumerHandler {
	return &consumerHandler{eng: eng, snapper: snapper}
}

func (h *consumerHandler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerHandler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

func (h *consumerHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	partition := claim.Partition()

	for msg := range claim.Messages() {
		if msg == nil {
			continue
		}

		result := itch.ParseOne(msg.Value, h.eng)
		if result != itch.Ok {
			slog.Warn("bookworker: failed to decode itch frame",
				"result", result,
				"partition", partition,
				"offset", msg.Offset,
				"length", len(msg.Value),
			)
			session.MarkMessage(msg, "")
			continue
		}

		h.snapper.ObserveProcessed()
		session.MarkMessage(msg, "")
	}
	return nil
}
