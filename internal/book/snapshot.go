package book

// DepthLevel is one row of a market-by-price snapshot.
type DepthLevel struct {
	Price    uint64
	Quantity uint64
}

// Depth is a read-only snapshot of resting depth, used by the surrounding
// pipeline (periodic Kafka/Redis publication, HTTP queries) — it is not
// part of the matching contract itself, just a convenience view over the
// ladders' existing O(1) per-level data.
type Depth struct {
	Bids []DepthLevel
	Asks []DepthLevel
}

// DepthSnapshot returns up to maxLevels price levels per side, best price
// first. maxLevels <= 0 means "all levels". It is O(maxLevels), never
// O(order count): the cached TotalQuantity on each PriceLevel means no
// order is ever visited.
func (b *OrderBook) DepthSnapshot(maxLevels int) Depth {
	return Depth{
		Bids: snapshotLadder(b.bids, maxLevels),
		Asks: snapshotLadder(b.asks, maxLevels),
	}
}

func snapshotLadder(l *ladder, maxLevels int) []DepthLevel {
	n := len(l.levels)
	if maxLevels > 0 && maxLevels < n {
		n = maxLevels
	}
	out := make([]DepthLevel, n)
	for i := 0; i < n; i++ {
		out[i] = DepthLevel{Price: l.levels[i].Price, Quantity: l.levels[i].TotalQuantity}
	}
	return out
}
