package rules

import (
	"sync"
)

// QueueKey is the total ordering key for one clash's resolution queue:
// priority rank first, then distance from the turn anchor in seating
// order, then the owner's declared sub-order among their own
// same-priority instances, then insertion sequence.
type QueueKey struct {
	Rank     int
	Distance int
	SubOrder int
	seq      int
}

func (k QueueKey) less(other QueueKey) bool {
	if k.Rank != other.Rank {
		return k.Rank < other.Rank
	}
	if k.Distance != other.Distance {
		return k.Distance < other.Distance
	}
	if k.SubOrder != other.SubOrder {
		return k.SubOrder < other.SubOrder
	}
	return k.seq < other.seq
}

// QueueItem is one scheduled instance, referenced by ID. The queue holds
// each instance at most once; callers enforce that by construction.
type QueueItem struct {
	InstanceID string
	Key        QueueKey
}

// ResolutionQueue is an ordered work queue for a single clash. Unlike a
// fixed slice under iteration, it supports order-preserving insertion
// while a drain is in progress, which is how mid-resolution casts join the
// current clash without invalidating the drain loop.
type ResolutionQueue struct {
	mu      sync.Mutex
	items   []QueueItem
	nextSeq int
}

// NewResolutionQueue creates an empty queue.
func NewResolutionQueue() *ResolutionQueue {
	return &ResolutionQueue{
		items: make([]QueueItem, 0, 8),
	}
}

// Push inserts an item in key order. Items pushed during a drain merge
// into the remaining work, not onto the end.
func (q *ResolutionQueue) Push(item QueueItem) {
	q.mu.Lock()
	defer q.mu.Unlock()

	item.Key.seq = q.nextSeq
	q.nextSeq++

	idx := len(q.items)
	for i, existing := range q.items {
		if item.Key.less(existing.Key) {
			idx = i
			break
		}
	}
	q.items = append(q.items, QueueItem{})
	copy(q.items[idx+1:], q.items[idx:])
	q.items[idx] = item
}

// Pop removes and returns the head of the queue.
func (q *ResolutionQueue) Pop() (QueueItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return QueueItem{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Contains reports whether an instance is currently queued.
func (q *ResolutionQueue) Contains(instanceID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, item := range q.items {
		if item.InstanceID == instanceID {
			return true
		}
	}
	return false
}

// Len returns the number of queued items.
func (q *ResolutionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// IsEmpty reports whether the queue is drained.
func (q *ResolutionQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Clear drops the unresolved remainder. Used by early round termination:
// already-resolved effects stand, the rest never run.
func (q *ResolutionQueue) Clear() []QueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	dropped := q.items
	q.items = make([]QueueItem, 0, 8)
	return dropped
}

// List returns a copy of the queued items in resolution order.
func (q *ResolutionQueue) List() []QueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	cpy := make([]QueueItem, len(q.items))
	copy(cpy, q.items)
	return cpy
}
