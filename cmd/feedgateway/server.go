package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/marketpulse-systems/itchbook/internal/itch"
)

type rawProducer interface {
	Send(topic, key string, payload []byte) error
}

type gateway struct {
	rawTopic string
	producer rawProducer
}

func newGateway(rawTopic string, producer rawProducer) *gateway {
	return &gateway{rawTopic: rawTopic, producer: producer}
}

type batchResponse struct {
	MessagesAccepted int    `json:"messagesAccepted"`
	BytesAccepted    int    `json:"bytesAccepted"`
	RemainderBytes   int    `json:"remainderBytes"`
	Error            string `json:"error,omitempty"`
}

// handleBatch splits the request body into whole ITCH messages and
// republishes each one to Kafka, keyed by stock locate so bookworker's
// partitions stay symbol-local. A trailing partial message (the sender's
// TCP write landed mid-message) is reported back, never treated as an
// error: the sender is expected to resend it prefixed to its next batch.
func (g *gateway) handleBatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<20))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, batchResponse{Error: "failed to read body"})
		return
	}

	frames, consumed := itch.SplitFrames(body)
	for _, frame := range frames {
		key := strconv.Itoa(int(itch.HeaderOf(frame).StockLocate()))
		if err := g.producer.Send(g.rawTopic, key, frame); err != nil {
			slog.Error("failed to publish itch frame", "error", err)
			respondJSON(w, http.StatusInternalServerError, batchResponse{Error: "kafka publish failed"})
			return
		}
	}

	respondJSON(w, http.StatusOK, batchResponse{
		MessagesAccepted: len(frames),
		BytesAccepted:    consumed,
		RemainderBytes:   len(body) - consumed,
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
