package main

import (
	"encoding/json"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/marketpulse-systems/itchbook/model"
)

type tradeInserter interface {
	InsertExecutedTrade(t model.ExecutedTrade) error
}

type tradeHandler struct {
	store tradeInserter
}

func (h *tradeHandler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *tradeHandler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

func (h *tradeHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var trade model.ExecutedTrade
		if err := json.Unmarshal(msg.Value, &trade); err != nil {
			slog.Error("failed to unmarshal executed trade",
				"error", err,
				"partition", msg.Partition,
				"offset", msg.Offset,
			)
			session.MarkMessage(msg, "")
			continue
		}

		if err := h.store.InsertExecutedTrade(trade); err != nil {
			slog.Error("failed to persist executed trade", "error", err, "execution_id", trade.ExecutionID)
			continue
		}

		slog.Info("persisted executed trade",
			"execution_id", trade.ExecutionID,
			"symbol", trade.Symbol,
			"price", trade.Price,
			"quantity", trade.Quantity,
		)
		session.MarkMessage(msg, "")
	}
	return nil
}
