package main

import (
	"math/rand"
	"strings"

	"github.com/marketpulse-systems/itchbook/internal/itch"
)

// messageSize is the wire length of every message this file emits.
// synthesize only ever produces Add Order messages: batching math needs a
// fixed stride, and a captured file (the -file path) is where the real
// message mix — cancels, deletes, executions — comes from.
const messageSize = 36

func splitSymbols(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{"AAPL"}
	}
	return out
}

// synthesize generates n independent Add Order messages spread across
// symbols, with prices randomly walking around a per-symbol base and random
// buy/sell sides, so a locally run pipeline has order flow to match against
// without a captured feed.
func synthesize(symbols []string, n int) []byte {
	rng := rand.New(rand.NewSource(1))
	out := make([]byte, 0, n*messageSize)

	basePrice := make(map[string]int64, len(symbols))
	for i, s := range symbols {
		basePrice[s] = int64(100+i*10) * 10_000
	}

	var orderRef uint64
	for i := 0; i < n; i++ {
		symbol := symbols[i%len(symbols)]
		orderRef++

		walk := int64(rng.Intn(201) - 100) // +/- 100 ticks
		price := basePrice[symbol] + walk
		if price < 1 {
			price = 1
		}

		side := byte('B')
		if rng.Intn(2) == 1 {
			side = 'S'
		}
		shares := uint32(100 + rng.Intn(900))

		out = append(out, buildAddOrder(uint16(i%16+1), orderRef, side, shares, symbol, uint32(price))...)
	}
	return out
}

func buildAddOrder(stockLocate uint16, orderRef uint64, side byte, shares uint32, symbol string, price uint32) []byte {
	buf := make([]byte, messageSize)
	buf[0] = itch.MsgTypeAddOrder
	buf[1] = byte(stockLocate >> 8)
	buf[2] = byte(stockLocate)
	// bytes 3:5 tracking number, 5:11 timestamp — left zero for synthetic traffic
	for i := 0; i < 8; i++ {
		buf[11+i] = byte(orderRef >> uint(8*(7-i)))
	}
	buf[19] = side
	buf[20] = byte(shares >> 24)
	buf[21] = byte(shares >> 16)
	buf[22] = byte(shares >> 8)
	buf[23] = byte(shares)
	copy(buf[24:32], padSymbol(symbol))
	buf[32] = byte(price >> 24)
	buf[33] = byte(price >> 16)
	buf[34] = byte(price >> 8)
	buf[35] = byte(price)
	return buf
}

func padSymbol(s string) []byte {
	b := []byte("        ")
	copy(b, s)
	return b
}
