package transit

import "container/heap"

// HoldingQueue is the priority queue of trains waiting for one platform.
// Ordering key is (ArrivalTick, ID) ascending; both fields are immutable
// once a train is pushed, so container/heap is used directly instead of
// hand-rolling a heap.
type HoldingQueue struct {
	h trainHeap
}

// NewHoldingQueue returns an empty queue.
func NewHoldingQueue() *HoldingQueue {
	q := &HoldingQueue{}
	heap.Init(&q.h)
	return q
}

// Push admits a train into the queue.
func (q *HoldingQueue) Push(t *Train) {
	heap.Push(&q.h, t)
}

// Len reports how many trains are currently queued.
func (q *HoldingQueue) Len() int { return q.h.Len() }

// Peek returns the highest-priority train without removing it, or nil if
// the queue is empty.
func (q *HoldingQueue) Peek() *Train {
	if len(q.h) == 0 {
		return nil
	}
	return q.h[0]
}

// Pop removes and returns the highest-priority train. It panics if the
// queue is empty; callers must check Len or Peek first.
func (q *HoldingQueue) Pop() *Train {
	return heap.Pop(&q.h).(*Train)
}

// Trains returns every currently-holding train, in no particular order.
// Read-only: exposed for tests and diagnostics, never mutated by the tick
// engine or by the snapshot gatherer, which reads Station.TrainsInCharge
// instead so each train is counted once per station rather than once per
// platform.
func (q *HoldingQueue) Trains() []*Train {
	out := make([]*Train, len(q.h))
	copy(out, q.h)
	return out
}

// trainHeap implements heap.Interface over *Train, ordered by
// (ArrivalTick, ID) ascending.
type trainHeap []*Train

func (h trainHeap) Len() int { return len(h) }

func (h trainHeap) Less(i, j int) bool {
	if h[i].ArrivalTick != h[j].ArrivalTick {
		return h[i].ArrivalTick < h[j].ArrivalTick
	}
	return h[i].ID < h[j].ID
}

func (h trainHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *trainHeap) Push(x any) {
	*h = append(*h, x.(*Train))
}

func (h *trainHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
