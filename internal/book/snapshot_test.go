package book

import "testing"

func TestDepthSnapshotBestPriceFirst(t *testing.T) {
	b := newTestBook(16)
	b.AddOrder(1, 1_000_000, 10, Buy, nil)
	b.AddOrder(2, 990_000, 20, Buy, nil)
	b.AddOrder(3, 1_010_000, 5, Sell, nil)
	b.AddOrder(4, 1_020_000, 15, Sell, nil)

	d := b.DepthSnapshot(0)
	if len(d.Bids) != 2 || d.Bids[0].Price != 1_000_000 || d.Bids[1].Price != 990_000 {
		t.Fatalf("unexpected bid depth: %+v", d.Bids)
	}
	if len(d.Asks) != 2 || d.Asks[0].Price != 1_010_000 || d.Asks[1].Price != 1_020_000 {
		t.Fatalf("unexpected ask depth: %+v", d.Asks)
	}

	limited := b.DepthSnapshot(1)
	if len(limited.Bids) != 1 || len(limited.Asks) != 1 {
		t.Fatalf("expected maxLevels to cap output: %+v", limited)
	}
}
