package book

import "testing"

func newTestBook(capacity int) *OrderBook {
	return NewOrderBook(NewPool[Order](capacity))
}

func mustBid(t *testing.T, b *OrderBook, want uint64) {
	t.Helper()
	got, ok := b.BestBid()
	if !ok || got != want {
		t.Fatalf("BestBid = (%d, %v), want (%d, true)", got, ok, want)
	}
}

func mustAsk(t *testing.T, b *OrderBook, want uint64) {
	t.Helper()
	got, ok := b.BestAsk()
	if !ok || got != want {
		t.Fatalf("BestAsk = (%d, %v), want (%d, true)", got, ok, want)
	}
}

// Scenario 1: resting, no cross.
func TestScenarioRestingNoCross(t *testing.T) {
	b := newTestBook(16)
	if ok := b.AddOrder(1, 1_000_000, 100, Buy, nil); !ok {
		t.Fatal("AddOrder(1) failed")
	}
	var execs []Execution
	if ok := b.AddOrder(2, 1_010_000, 50, Sell, func(e Execution) { execs = append(execs, e) }); !ok {
		t.Fatal("AddOrder(2) failed")
	}

	mustBid(t, b, 1_000_000)
	mustAsk(t, b, 1_010_000)
	spread, ok := b.Spread()
	if !ok || spread != 10_000 {
		t.Fatalf("Spread = (%d, %v), want (10000, true)", spread, ok)
	}
	if b.BestBidVolume() != 100 {
		t.Fatalf("BestBidVolume = %d, want 100", b.BestBidVolume())
	}
	if b.BestAskVolume() != 50 {
		t.Fatalf("BestAskVolume = %d, want 50", b.BestAskVolume())
	}
	if len(execs) != 0 {
		t.Fatalf("expected no executions, got %d", len(execs))
	}
}

// Scenario 2: exact cross, both filled.
func TestScenarioExactCrossBothFilled(t *testing.T) {
	b := newTestBook(16)
	b.AddOrder(1, 1_000_000, 100, Buy, nil)

	var execs []Execution
	ok := b.AddOrder(2, 990_000, 100, Sell, func(e Execution) { execs = append(execs, e) })
	if !ok {
		t.Fatal("AddOrder(2) failed")
	}

	if len(execs) != 1 {
		t.Fatalf("expected 1 execution, got %d", len(execs))
	}
	want := Execution{MakerID: 1, TakerID: 2, Price: 1_000_000, Quantity: 100, MakerSide: Buy}
	if execs[0] != want {
		t.Fatalf("execution = %+v, want %+v", execs[0], want)
	}
	if !b.Empty() {
		t.Fatal("book should be empty after an exact cross")
	}
}

// Scenario 3: partial maker fill.
func TestScenarioPartialMakerFill(t *testing.T) {
	b := newTestBook(16)
	b.AddOrder(1, 1_000_000, 100, Buy, nil)

	var execs []Execution
	b.AddOrder(2, 990_000, 30, Sell, func(e Execution) { execs = append(execs, e) })

	if len(execs) != 1 || execs[0].Quantity != 30 || execs[0].Price != 1_000_000 {
		t.Fatalf("unexpected executions: %+v", execs)
	}
	if b.OrderCount() != 1 {
		t.Fatalf("OrderCount = %d, want 1 (maker still resting)", b.OrderCount())
	}
	if b.BestBidVolume() != 70 {
		t.Fatalf("BestBidVolume = %d, want 70", b.BestBidVolume())
	}
}

// Scenario 4: sweep multiple levels.
func TestScenarioSweepMultipleLevels(t *testing.T) {
	b := newTestBook(16)
	b.AddOrder(1, 1_000_000, 50, Buy, nil)
	b.AddOrder(2, 990_000, 100, Buy, nil)
	b.AddOrder(3, 980_000, 200, Buy, nil)

	var execs []Execution
	b.AddOrder(4, 980_000, 120, Sell, func(e Execution) { execs = append(execs, e) })

	if len(execs) != 2 {
		t.Fatalf("expected 2 executions, got %d: %+v", len(execs), execs)
	}
	if execs[0] != (Execution{MakerID: 1, TakerID: 4, Price: 1_000_000, Quantity: 50, MakerSide: Buy}) {
		t.Fatalf("execution[0] = %+v", execs[0])
	}
	if execs[1] != (Execution{MakerID: 2, TakerID: 4, Price: 990_000, Quantity: 70, MakerSide: Buy}) {
		t.Fatalf("execution[1] = %+v", execs[1])
	}

	mustBid(t, b, 990_000)
	if b.BestBidVolume() != 30 {
		t.Fatalf("BestBidVolume = %d, want 30", b.BestBidVolume())
	}
	if b.BidLevelCount() != 2 {
		t.Fatalf("BidLevelCount = %d, want 2", b.BidLevelCount())
	}
}

// Scenario 5: FIFO within a level.
func TestScenarioFIFOWithinLevel(t *testing.T) {
	b := newTestBook(16)
	b.AddOrder(1, 1_000_000, 100, Buy, nil)
	b.AddOrder(2, 1_000_000, 100, Buy, nil)
	b.AddOrder(3, 1_000_000, 100, Buy, nil)

	var execs []Execution
	b.AddOrder(4, 990_000, 150, Sell, func(e Execution) { execs = append(execs, e) })

	if len(execs) != 2 {
		t.Fatalf("expected 2 executions, got %d", len(execs))
	}
	if execs[0].MakerID != 1 || execs[0].Quantity != 100 {
		t.Fatalf("execution[0] = %+v, want maker=1 qty=100", execs[0])
	}
	if execs[1].MakerID != 2 || execs[1].Quantity != 50 {
		t.Fatalf("execution[1] = %+v, want maker=2 qty=50", execs[1])
	}
	if b.BestBidVolume() != 150 {
		t.Fatalf("BestBidVolume = %d, want 150", b.BestBidVolume())
	}

	if !b.CancelOrder(2) {
		t.Fatal("cancel(2) should succeed")
	}
	if !b.CancelOrder(3) {
		t.Fatal("cancel(3) should succeed")
	}
	if b.CancelOrder(1) {
		t.Fatal("cancel(1) should fail: order 1 was fully filled as maker")
	}
}

func TestAddOrderDuplicateIDRejected(t *testing.T) {
	b := newTestBook(16)
	b.AddOrder(1, 100, 10, Buy, nil)
	if b.AddOrder(1, 200, 20, Sell, nil) {
		t.Fatal("duplicate order id should be rejected")
	}
	if b.OrderCount() != 1 {
		t.Fatalf("OrderCount = %d, want 1", b.OrderCount())
	}
}

func TestCancelUnknownOrderReturnsFalse(t *testing.T) {
	b := newTestBook(16)
	if b.CancelOrder(999) {
		t.Fatal("cancel of unknown id should return false")
	}
}

func TestPoolExhaustionDropsResidualAfterReportingFills(t *testing.T) {
	b := newTestBook(1) // capacity for exactly one resting order
	b.AddOrder(1, 1_000_000, 50, Buy, nil) // consumes the only pool slot

	var execs []Execution
	ok := b.AddOrder(2, 990_000, 100, Sell, func(e Execution) { execs = append(execs, e) })
	if ok {
		t.Fatal("AddOrder should fail: pool exhausted for the residual")
	}
	if len(execs) != 1 || execs[0].Quantity != 50 {
		t.Fatalf("the crossed portion must still be reported: %+v", execs)
	}
	if !b.Empty() {
		t.Fatal("the fully-drained bid side should leave the book empty")
	}
	// Order 2's un-rested residual (50 shares) is simply gone: it was
	// never registered, so there's nothing further to observe about it.
}

func TestCancelOrderRemovesEmptyLevelFromLadder(t *testing.T) {
	b := newTestBook(16)
	b.AddOrder(1, 1_000_000, 10, Buy, nil)
	if b.BidLevelCount() != 1 {
		t.Fatalf("BidLevelCount = %d, want 1", b.BidLevelCount())
	}
	b.CancelOrder(1)
	if b.BidLevelCount() != 0 {
		t.Fatalf("BidLevelCount = %d, want 0 after cancelling the only order", b.BidLevelCount())
	}
	if _, ok := b.BestBid(); ok {
		t.Fatal("BestBid should be absent on an empty ladder")
	}
}

func TestQueriesAbsentOnEmptyBook(t *testing.T) {
	b := newTestBook(4)
	if _, ok := b.BestBid(); ok {
		t.Fatal("BestBid should be absent")
	}
	if _, ok := b.BestAsk(); ok {
		t.Fatal("BestAsk should be absent")
	}
	if _, ok := b.Spread(); ok {
		t.Fatal("Spread should be absent when either side is empty")
	}
	if !b.Empty() {
		t.Fatal("fresh book should be empty")
	}
}

// TestLadderMonotonicityAndSpreadInvariant exercises property 2/4 from the
// spec: at every quiescent point, bids strictly descend, asks strictly
// ascend, and a non-empty spread is always strictly positive.
func TestLadderMonotonicityAndSpreadInvariant(t *testing.T) {
	b := newTestBook(64)
	prices := []uint64{1_000_000, 990_000, 1_010_000, 980_000, 1_020_000}
	for i, px := range prices {
		side := Buy
		if px > 1_000_000 {
			side = Sell
		}
		if !b.AddOrder(uint64(i+1), px, 10, side, nil) {
			t.Fatalf("AddOrder(%d) failed", i+1)
		}
	}

	last := uint64(1<<64 - 1)
	for _, lvl := range b.bids.levels {
		if lvl.Price >= last {
			t.Fatal("bid ladder must strictly descend")
		}
		last = lvl.Price
		if lvl.Empty() {
			t.Fatal("no ladder entry may be empty")
		}
	}

	last = 0
	for _, lvl := range b.asks.levels {
		if lvl.Price <= last {
			t.Fatal("ask ladder must strictly ascend")
		}
		last = lvl.Price
		if lvl.Empty() {
			t.Fatal("no ladder entry may be empty")
		}
	}

	if spread, ok := b.Spread(); ok && spread == 0 {
		t.Fatal("a resting spread must never be zero")
	}
}

// TestCachedAggregateMatchesQueueSum exercises property 3: cached
// aggregate equals the sum of remaining quantities of queued orders.
func TestCachedAggregateMatchesQueueSum(t *testing.T) {
	b := newTestBook(64)
	b.AddOrder(1, 1_000_000, 40, Buy, nil)
	b.AddOrder(2, 1_000_000, 60, Buy, nil)
	b.AddOrder(3, 1_000_000, 25, Buy, nil)
	b.AddOrder(4, 990_000, 70, Sell, func(Execution) {})

	lvl := b.bids.find(1_000_000)
	if lvl == nil {
		t.Fatal("expected a bid level at 1_000_000")
	}
	sum := uint64(0)
	for o := lvl.orders.front(); o != nil; o = o.next {
		sum += uint64(o.Remaining)
	}
	if sum != lvl.TotalQuantity {
		t.Fatalf("cached aggregate %d != queue sum %d", lvl.TotalQuantity, sum)
	}
}

func TestPoolConservationAcrossMatching(t *testing.T) {
	pool := NewPool[Order](8)
	b := NewOrderBook(pool)

	b.AddOrder(1, 1_000_000, 10, Buy, nil)
	b.AddOrder(2, 1_000_000, 10, Buy, nil)
	b.AddOrder(3, 990_000, 20, Sell, nil) // fully consumes both makers

	if pool.Allocated() != 0 {
		t.Fatalf("Allocated = %d, want 0 (both makers filled, taker didn't rest)", pool.Allocated())
	}
	if pool.Allocated()+pool.Available() != pool.Capacity() {
		t.Fatal("allocated + available must equal capacity at all times")
	}
}

func TestZeroPriceIsValid(t *testing.T) {
	b := newTestBook(4)
	if !b.AddOrder(1, 0, 10, Buy, nil) {
		t.Fatal("price zero should be accepted, per documented open question")
	}
	mustBid(t, b, 0)
}
