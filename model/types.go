// Package model holds the JSON wire types shared by every cmd/ service:
// bookworker produces them, tradepersister and tradewatcher consume them.
package model

import "time"

// ExecutedTrade is one fill produced by internal/engine, in the shape
// published to the executed-trades Kafka topic and broadcast over the
// websocket stream.
type ExecutedTrade struct {
	ExecutionID string    `json:"executionId"`
	Symbol      string    `json:"symbol"`
	Price       uint64    `json:"price"`
	Quantity    uint32    `json:"quantity"`
	MakerID     uint64    `json:"makerOrderId"`
	TakerID     uint64    `json:"takerOrderId"`
	MakerSide   string    `json:"makerSide"`
	ExecutedAt  time.Time `json:"executedAt"`
}

// DepthLevel is one price/quantity row of a BookSnapshot.
type DepthLevel struct {
	Price    uint64 `json:"price"`
	Quantity uint64 `json:"quantity"`
}

// BookSnapshot is a point-in-time view of one symbol's resting depth, in
// the shape published to the book-snapshots Kafka topic and cached in
// Redis.
type BookSnapshot struct {
	Symbol    string       `json:"symbol"`
	Bids      []DepthLevel `json:"bids"`
	Asks      []DepthLevel `json:"asks"`
	CreatedAt time.Time    `json:"createdAt"`
	Reason    string       `json:"reason"`
}
