package book

// OrderBook is a single-instrument, price-time-priority limit order book
// with an integrated matching engine. It is not internally synchronized:
// callers sharing one instance across goroutines must serialize access
// themselves, and callers processing multiple instruments in parallel
// should shard by instrument across independent instances instead.
type OrderBook struct {
	bids *ladder
	asks *ladder

	index map[uint64]*Order
	pool  *Pool[Order]
}

// NewOrderBook constructs an order book backed by pool. pool is not owned
// exclusively at the type level, but the documented contract is that one
// pool serves exactly one book instance.
func NewOrderBook(pool *Pool[Order]) *OrderBook {
	return &OrderBook{
		bids:  newBidLadder(),
		asks:  newAskLadder(),
		index: make(map[uint64]*Order),
		pool:  pool,
	}
}

func (b *OrderBook) ladderFor(side Side) *ladder {
	if side == Buy {
		return b.bids
	}
	return b.asks
}

// crosses reports whether a taker limit of price on side crosses the
// resting level at levelPrice.
func crosses(side Side, price, levelPrice uint64) bool {
	if side == Buy {
		return price >= levelPrice
	}
	return price <= levelPrice
}

// AddOrder submits a new limit order. It first matches against the
// opposite ladder using strict price-time priority, emitting one
// Execution per fill to onExecution (which may be nil). Any quantity left
// after matching rests in the book. It returns false if id already exists
// in this book, or if the object pool is exhausted while resting the
// residual quantity — in the latter case any fills already produced by
// this call are final and have already been reported; the unrested
// residual is silently dropped, exactly as spec.md documents.
func (b *OrderBook) AddOrder(id uint64, price uint64, qty uint32, side Side, onExecution ExecutionFunc) bool {
	if _, exists := b.index[id]; exists {
		return false
	}

	opposite := b.ladderFor(side.Opposite())
	remaining := qty

	for remaining > 0 {
		best := opposite.best()
		if best == nil || !crosses(side, price, best.Price) {
			break
		}

		for remaining > 0 && !best.Empty() {
			maker := best.orders.front()
			fill := minUint32(remaining, maker.Remaining)

			if onExecution != nil {
				onExecution(Execution{
					MakerID:   maker.ID,
					TakerID:   id,
					Price:     best.Price,
					Quantity:  fill,
					MakerSide: maker.Side,
				})
			}

			remaining -= fill
			maker.Remaining -= fill
			best.reduce(uint64(fill))

			if maker.Remaining == 0 {
				best.remove(maker)
				delete(b.index, maker.ID)
				b.pool.Release(maker)
			}
		}

		if best.Empty() {
			opposite.removeLevel(best.Price)
		}
	}

	if remaining == 0 {
		return true
	}

	order := b.pool.Acquire()
	if order == nil {
		return false
	}
	*order = Order{ID: id, Price: price, Remaining: remaining, Side: side}

	level := b.ladderFor(side).getOrCreate(price)
	level.insert(order)
	b.index[id] = order

	return true
}

// CancelOrder removes a resting order by identifier. It returns false if
// id is not currently resting in this book.
func (b *OrderBook) CancelOrder(id uint64) bool {
	order, ok := b.index[id]
	if !ok {
		return false
	}
	delete(b.index, id)

	level := order.level
	level.remove(order)
	if level.Empty() {
		b.ladderFor(order.Side).removeLevel(level.Price)
	}

	b.pool.Release(order)
	return true
}

// BestBid returns the highest resting bid price, and whether one exists.
func (b *OrderBook) BestBid() (uint64, bool) { return levelPrice(b.bids.best()) }

// BestAsk returns the lowest resting ask price, and whether one exists.
func (b *OrderBook) BestAsk() (uint64, bool) { return levelPrice(b.asks.best()) }

// Spread is BestAsk - BestBid; it is absent if either side is empty.
func (b *OrderBook) Spread() (uint64, bool) {
	bid, okBid := b.BestBid()
	ask, okAsk := b.BestAsk()
	if !okBid || !okAsk {
		return 0, false
	}
	return ask - bid, true
}

// BestBidVolume is the cached aggregate quantity at the best bid level, or
// 0 if there are no bids.
func (b *OrderBook) BestBidVolume() uint64 { return levelVolume(b.bids.best()) }

// BestAskVolume is the cached aggregate quantity at the best ask level, or
// 0 if there are no asks.
func (b *OrderBook) BestAskVolume() uint64 { return levelVolume(b.asks.best()) }

// BidLevelCount is the number of distinct bid price levels.
func (b *OrderBook) BidLevelCount() int { return b.bids.count() }

// AskLevelCount is the number of distinct ask price levels.
func (b *OrderBook) AskLevelCount() int { return b.asks.count() }

// OrderCount is the number of live resting orders across both sides.
func (b *OrderBook) OrderCount() int { return len(b.index) }

// Contains reports whether id currently identifies a resting order.
func (b *OrderBook) Contains(id uint64) bool {
	_, ok := b.index[id]
	return ok
}

// Empty reports whether the book has no resting orders on either side.
func (b *OrderBook) Empty() bool { return len(b.index) == 0 }

func levelPrice(l *PriceLevel) (uint64, bool) {
	if l == nil {
		return 0, false
	}
	return l.Price, true
}

func levelVolume(l *PriceLevel) uint64 {
	if l == nil {
		return 0
	}
	return l.TotalQuantity
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
