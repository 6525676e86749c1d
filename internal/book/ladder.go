package book

import "sort"

// ladder is one side of the book: a dense, price-sorted sequence of
// PriceLevel. Bid ladders sort descending by price, ask ladders ascending,
// so index 0 is always the best level. Prices are kept strictly monotone
// and no entry is ever left empty — an emptied level is spliced out
// immediately by whichever caller drained it.
type ladder struct {
	levels []*PriceLevel
	// less reports whether price a should sort before price b on this
	// side (i.e. a has strictly better priority than b).
	less func(a, b uint64) bool
}

func newBidLadder() *ladder {
	return &ladder{less: func(a, b uint64) bool { return a > b }}
}

func newAskLadder() *ladder {
	return &ladder{less: func(a, b uint64) bool { return a < b }}
}

func (l *ladder) empty() bool { return len(l.levels) == 0 }

// best returns the top-of-book level, or nil if the ladder is empty.
func (l *ladder) best() *PriceLevel {
	if len(l.levels) == 0 {
		return nil
	}
	return l.levels[0]
}

// find locates the level at price via binary search, or nil.
func (l *ladder) find(price uint64) *PriceLevel {
	i := l.searchIndex(price)
	if i < len(l.levels) && l.levels[i].Price == price {
		return l.levels[i]
	}
	return nil
}

// searchIndex returns the index at which price belongs, per this ladder's
// ordering, whether or not a level already exists there.
func (l *ladder) searchIndex(price uint64) int {
	return sort.Search(len(l.levels), func(i int) bool {
		return !l.less(l.levels[i].Price, price)
	})
}

// getOrCreate returns the level at price, creating and inserting it at the
// correct sorted position if it doesn't already exist.
func (l *ladder) getOrCreate(price uint64) *PriceLevel {
	i := l.searchIndex(price)
	if i < len(l.levels) && l.levels[i].Price == price {
		return l.levels[i]
	}
	lvl := newPriceLevel(price)
	l.levels = append(l.levels, nil)
	copy(l.levels[i+1:], l.levels[i:])
	l.levels[i] = lvl
	return lvl
}

// removeLevel splices an emptied level out of the ladder. It is O(k) in
// the number of levels, bounded and rare on cancel-heavy workloads exactly
// as documented for the erasure this backs.
func (l *ladder) removeLevel(price uint64) {
	i := l.searchIndex(price)
	if i >= len(l.levels) || l.levels[i].Price != price {
		return
	}
	l.levels = append(l.levels[:i], l.levels[i+1:]...)
}

// count is the number of live price levels.
func (l *ladder) count() int { return len(l.levels) }
