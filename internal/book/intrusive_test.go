package book

import "testing"

func TestOrderQueueFIFOOrder(t *testing.T) {
	var q orderQueue
	o1, o2, o3 := &Order{ID: 1}, &Order{ID: 2}, &Order{ID: 3}

	q.pushBack(o1)
	q.pushBack(o2)
	q.pushBack(o3)

	if q.front() != o1 {
		t.Fatal("front should be the first pushed element")
	}

	got := q.popFront()
	if got != o1 {
		t.Fatalf("popFront = %v, want o1", got)
	}
	if q.front() != o2 {
		t.Fatal("front should advance to o2")
	}
}

func TestOrderQueueUnlinkMiddleWithoutTraversal(t *testing.T) {
	var q orderQueue
	o1, o2, o3 := &Order{ID: 1}, &Order{ID: 2}, &Order{ID: 3}
	q.pushBack(o1)
	q.pushBack(o2)
	q.pushBack(o3)

	q.unlink(o2)

	if o2.prev != nil || o2.next != nil {
		t.Fatal("unlinked element must have nil links")
	}
	if q.size() != 2 {
		t.Fatalf("size = %d, want 2", q.size())
	}
	if o1.next != o3 || o3.prev != o1 {
		t.Fatal("remaining elements must be relinked to each other")
	}
}

func TestOrderQueueUnlinkHeadAndTail(t *testing.T) {
	var q orderQueue
	o1, o2 := &Order{ID: 1}, &Order{ID: 2}
	q.pushBack(o1)
	q.pushBack(o2)

	q.unlink(o1)
	if q.front() != o2 {
		t.Fatal("front should become o2 after unlinking head")
	}

	q.unlink(o2)
	if !q.empty() {
		t.Fatal("queue should be empty after unlinking last element")
	}
}

func TestOrderQueuePushFrontAndPopBack(t *testing.T) {
	var q orderQueue
	o1, o2 := &Order{ID: 1}, &Order{ID: 2}
	q.pushFront(o1)
	q.pushFront(o2)

	if q.front() != o2 {
		t.Fatal("pushFront should place the newest element at the head")
	}
	if got := q.popBack(); got != o1 {
		t.Fatal("popBack should return the tail element")
	}
}
