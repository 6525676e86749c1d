package book

// PriceLevel aggregates every resting order at one price. Orders queue in
// time-of-arrival order (oldest at head); TotalQuantity is a cache kept in
// sync with the queue so callers never have to sum it. A level is created
// when an order first rests at a new price and destroyed by its owning
// ladder as soon as it empties.
type PriceLevel struct {
	Price         uint64
	TotalQuantity uint64

	orders orderQueue
}

func newPriceLevel(price uint64) *PriceLevel {
	return &PriceLevel{Price: price}
}

// Empty reports whether the level has no resting orders.
func (l *PriceLevel) Empty() bool { return l.orders.empty() }

// OrderCount is O(n); intentionally not cached, matching the underlying
// queue's size().
func (l *PriceLevel) OrderCount() int { return l.orders.size() }

// insert appends order at the tail (time priority) and folds its quantity
// into the cached aggregate.
func (l *PriceLevel) insert(o *Order) {
	o.level = l
	l.orders.pushBack(o)
	l.TotalQuantity += uint64(o.Remaining)
}

// remove unlinks order from the queue and subtracts its quantity from the
// cached aggregate, floored at zero as a defensive guard against a caller
// passing a quantity that has already been reduced out of band.
func (l *PriceLevel) remove(o *Order) {
	l.orders.unlink(o)
	l.reduce(uint64(o.Remaining))
	o.level = nil
}

// reduce subtracts filled from the cached aggregate, floored at zero. The
// matching loop calls this as a maker's resting quantity is consumed.
func (l *PriceLevel) reduce(filled uint64) {
	if filled >= l.TotalQuantity {
		l.TotalQuantity = 0
		return
	}
	l.TotalQuantity -= filled
}
