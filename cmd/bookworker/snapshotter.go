package main

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/marketpulse-systems/itchbook/internal/engine"
)

// snapshotter triggers a full depth publication for every symbol the engine
// has seen, either on a fixed timer or once the number of messages reported
// through ObserveProcessed since the last flush reaches a threshold.
// Grounded on worker/snapshotter.go's timer-plus-triggerCh loop shape,
// simplified to one counter across every symbol, so there is no
// per-partition offset bookkeeping to carry.
type snapshotter struct {
	eng       *engine.Engine
	pub       *publisher
	interval  time.Duration
	threshold int64

	sinceFlush atomic.Int64
	triggerCh  chan struct{}
	stopCh     chan struct{}
	stoppedCh  chan struct{}
}

func newSnapshotter(eng *engine.Engine, pub *publisher, interval time.Duration, threshold int) *snapshotter {
	return &snapshotter{
		eng:       eng,
		pub:       pub,
		interval:  interval,
		threshold: int64(threshold),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (s *snapshotter) Start() { go s.loop() }

func (s *snapshotter) Stop() {
	close(s.stopCh)
	<-s.stoppedCh
}

// ObserveProcessed should be called after each message the engine handles.
// It fires a threshold-triggered flush once enough messages have been
// processed since the last one.
func (s *snapshotter) ObserveProcessed() {
	if s.threshold <= 0 {
		return
	}
	if s.sinceFlush.Add(1) >= s.threshold {
		select {
		case s.triggerCh <- struct{}{}:
		default:
		}
	}
}

func (s *snapshotter) loop() {
	defer close(s.stoppedCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.flush("timer")
		case <-s.triggerCh:
			s.flush("threshold")
		case <-s.stopCh:
			return
		}
	}
}

func (s *snapshotter) flush(reason string) {
	s.sinceFlush.Store(0)

	symbols := s.eng.Symbols()
	for _, symbol := range symbols {
		depth, ok := s.eng.Snapshot(symbol, 0)
		if !ok {
			continue
		}
		s.pub.PublishSnapshot(symbol, depth, reason)
	}
	if len(symbols) > 0 {
		slog.Info("bookworker: snapshot batch published", "count", len(symbols), "reason", reason)
	}
}
