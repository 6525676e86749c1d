package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
)

// JSONProducer wraps sarama.SyncProducer to simplify sending JSON-encoded
// domain events (executed trades, book snapshots). The pipeline uses
// encoding/json rather than protobuf for its own messages — see DESIGN.md
// for why — mirroring the teacher's own executed-consumer, which already
// decodes ExecutedTrade off the wire with encoding/json.
type JSONProducer struct {
	internal sarama.SyncProducer
}

// NewJSONProducerWithLexicographicalPartitioner creates a JSONProducer
// keyed for symbol-locality: every message for a given symbol lands on the
// same partition, which keeps a consumer group's per-partition ordering
// meaningful per instrument.
func NewJSONProducerWithLexicographicalPartitioner() (*JSONProducer, error) {
	saramaProd, err := NewProducerWithPartitioner(NewLexicographicalPartitioner)
	if err != nil {
		return nil, err
	}
	return &JSONProducer{internal: saramaProd}, nil
}

// NewJSONProducer creates a JSONProducer using the default hash
// partitioner.
func NewJSONProducer() (*JSONProducer, error) {
	saramaProd, err := NewProducer()
	if err != nil {
		return nil, err
	}
	return &JSONProducer{internal: saramaProd}, nil
}

func (p *JSONProducer) Close() error {
	return p.internal.Close()
}

// Send marshals v as JSON and sends it to topic. key is used for
// partitioning (e.g. symbol); an empty key falls back to the partitioner's
// default (round-robin for sarama.NewHashPartitioner on an empty key).
func (p *JSONProducer) Send(topic string, key string, v any) error {
	bytes, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message for %s: %w", topic, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(bytes),
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}

	if _, _, err := p.internal.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to produce message to %s (key=%s): %w", topic, key, err)
	}
	return nil
}

// RawProducer wraps sarama.SyncProducer for topics whose payload is
// already a wire-ready byte slice — feedgateway republishes raw ITCH
// message bytes verbatim, with no JSON envelope, so downstream decoders
// see exactly the bytes a real feed would emit.
type RawProducer struct {
	internal sarama.SyncProducer
}

// NewRawProducerWithLexicographicalPartitioner creates a RawProducer keyed
// for symbol-locality (by stock locate, formatted as a decimal string).
func NewRawProducerWithLexicographicalPartitioner() (*RawProducer, error) {
	saramaProd, err := NewProducerWithPartitioner(NewLexicographicalPartitioner)
	if err != nil {
		return nil, err
	}
	return &RawProducer{internal: saramaProd}, nil
}

func (p *RawProducer) Close() error {
	return p.internal.Close()
}

// Send publishes payload verbatim to topic under key.
func (p *RawProducer) Send(topic string, key string, payload []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(payload),
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}
	if _, _, err := p.internal.SendMessage(msg); err != nil {
		return fmt.Errorf("failed to produce message to %s (key=%s): %w", topic, key, err)
	}
	return nil
}
