package main

import (
	"encoding/json"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/marketpulse-systems/itchbook/model"
)

type watchHandler struct{}

func (h *watchHandler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *watchHandler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

func (h *watchHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var trade model.ExecutedTrade
		if err := json.Unmarshal(msg.Value, &trade); err != nil {
			slog.Error("invalid executed trade json",
				"error", err,
				"partition", msg.Partition,
				"offset", msg.Offset,
			)
			session.MarkMessage(msg, "")
			continue
		}

		slog.Info("executed",
			"execution_id", trade.ExecutionID,
			"symbol", trade.Symbol,
			"price", trade.Price,
			"quantity", trade.Quantity,
			"maker_side", trade.MakerSide,
			"executed_at", trade.ExecutedAt,
		)
		session.MarkMessage(msg, "")
	}
	return nil
}
