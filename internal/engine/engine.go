// Package engine wires the itch decoder into per-symbol order books. It
// owns the mapping from a bare ITCH order reference number (which carries
// no symbol of its own past the initial Add Order) to the book and symbol
// that order rests in, so that later Order Executed/Cancel/Delete messages
// can be routed without re-decoding anything.
package engine

import (
	"log/slog"
	"sync"

	"github.com/marketpulse-systems/itchbook/internal/book"
	"github.com/marketpulse-systems/itchbook/internal/itch"
)

// Fill is one execution produced by an Engine's own matching, tagged with
// the symbol it happened on.
type Fill struct {
	Symbol string
	book.Execution
}

// Removal describes a resting order leaving a book for a reason other than
// matching against this engine's own book: an upstream Order Executed,
// Order Cancel, or Order Delete message referencing it.
type Removal struct {
	Symbol  string
	OrderID uint64
	Reason  string
}

// Config bounds the resources each per-symbol book is allowed to use.
type Config struct {
	// OrdersPerSymbol sizes the object pool backing each symbol's book.
	// Every symbol gets its own pool of this capacity, created lazily the
	// first time an order for that symbol arrives.
	OrdersPerSymbol int
}

// Engine fans decoded ITCH messages out to one order book per instrument.
// It implements itch.Handler directly, so it can sit as the terminal
// handler at the end of a itch.ParseStream call. Every Handler callback
// that touches a book, and every query (Snapshot, Symbols, RestingOrders),
// takes the engine's mutex, so queries may run concurrently with message
// processing.
type Engine struct {
	cfg Config

	mu          sync.Mutex
	books       map[string]*book.OrderBook
	orderSymbol map[uint64]string

	onFill    func(Fill)
	onRemoval func(Removal)
}

// New constructs an Engine. onFill is invoked synchronously for every
// execution this engine's own matching produces; onRemoval is invoked for
// every order that leaves a book because of an upstream Executed, Cancel,
// or Delete message. Either callback may be nil.
func New(cfg Config, onFill func(Fill), onRemoval func(Removal)) *Engine {
	return &Engine{
		cfg:         cfg,
		books:       make(map[string]*book.OrderBook),
		orderSymbol: make(map[uint64]string),
		onFill:      onFill,
		onRemoval:   onRemoval,
	}
}

var _ itch.Handler = (*Engine)(nil)

func (e *Engine) bookFor(symbol string) *book.OrderBook {
	b, ok := e.books[symbol]
	if !ok {
		b = book.NewOrderBook(book.NewPool[book.Order](e.cfg.OrdersPerSymbol))
		e.books[symbol] = b
	}
	return b
}

// OnAddOrder feeds a decoded Add Order message into the resting order's
// symbol book as a new limit order, matching it against the opposite side
// first. Any resulting fills are reported through onFill before OnAddOrder
// returns.
func (e *Engine) OnAddOrder(msg itch.AddOrder) {
	e.mu.Lock()
	defer e.mu.Unlock()

	symbol := msg.Stock().String()
	id := msg.OrderReference()
	side := book.Side(msg.Side())
	b := e.bookFor(symbol)

	ok := b.AddOrder(id, uint64(msg.Price()), msg.Shares(), side, func(exec book.Execution) {
		delete(e.orderSymbol, exec.MakerID)
		if e.onFill != nil {
			e.onFill(Fill{Symbol: symbol, Execution: exec})
		}
	})
	if !ok {
		slog.Warn("engine: add order rejected", "symbol", symbol, "order_ref", id)
		return
	}
	if b.Contains(id) {
		e.orderSymbol[id] = symbol
	}
}

// OnOrderExecuted removes the referenced resting order, treating the feed's
// own execution report as authoritative for that order's remaining life in
// the book.
func (e *Engine) OnOrderExecuted(msg itch.OrderExecuted) {
	e.remove(msg.OrderReference(), "executed")
}

// OnOrderCancel removes the referenced resting order. ITCH's Order Cancel
// message reduces a resting order's shares without changing its place in
// the queue; this engine has no book primitive for an in-place quantity
// reduction (the book contract only exposes add and full cancel), so a
// cancel is treated as a full removal. A live feed reports whatever shares
// remain after such a reduction in a later message, so nothing is lost —
// it just arrives as a fresh order reference instead of a mutated one.
func (e *Engine) OnOrderCancel(msg itch.OrderCancel) {
	e.remove(msg.OrderReference(), "cancelled")
}

// OnOrderDelete removes the referenced resting order in full.
func (e *Engine) OnOrderDelete(msg itch.OrderDelete) {
	e.remove(msg.OrderReference(), "deleted")
}

// OnUnknown is reached for message types the decoder recognizes but does
// not project a typed view for. It is not an error; it is logged at debug
// level purely for feed-composition visibility.
func (e *Engine) OnUnknown(msgType byte, buf []byte) {
	slog.Debug("engine: message without a typed view", "type", string(msgType), "length", len(buf))
}

func (e *Engine) remove(id uint64, reason string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	symbol, ok := e.orderSymbol[id]
	if !ok {
		return
	}
	b, ok := e.books[symbol]
	if !ok || !b.CancelOrder(id) {
		return
	}
	delete(e.orderSymbol, id)
	if e.onRemoval != nil {
		e.onRemoval(Removal{Symbol: symbol, OrderID: id, Reason: reason})
	}
}

// Snapshot returns the current depth for symbol, and whether that symbol
// has ever had an order routed to it.
func (e *Engine) Snapshot(symbol string, maxLevels int) (book.Depth, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.books[symbol]
	if !ok {
		return book.Depth{}, false
	}
	return b.DepthSnapshot(maxLevels), true
}

// Symbols returns every instrument this engine has seen an order for, in
// no particular order.
func (e *Engine) Symbols() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]string, 0, len(e.books))
	for symbol := range e.books {
		out = append(out, symbol)
	}
	return out
}

// RestingOrders is the total number of live resting orders across every
// symbol this engine tracks.
func (e *Engine) RestingOrders() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0
	for _, b := range e.books {
		total += b.OrderCount()
	}
	return total
}
