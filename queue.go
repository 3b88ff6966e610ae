package huffzip

import (
	"container/heap"
)

// Queue is a min-priority queue of tree nodes, ordered by ascending weight.
// Nodes of equal weight are extracted in the order they were inserted.
type Queue struct {
	h       nodeHeap
	nextSeq uint64
}

// NewQueue constructs an empty Queue with room for capacity nodes.
func NewQueue(capacity int) *Queue {
	return &Queue{h: nodeHeap{list: make([]queueItem, 0, capacity)}}
}

// Len returns the number of nodes in the queue.
func (q *Queue) Len() int {
	return q.h.Len()
}

// Insert adds a node to the queue in O(log n).
func (q *Queue) Insert(id NodeID, weight uint64) {
	heap.Push(&q.h, queueItem{id: id, weight: weight, seq: q.nextSeq})
	q.nextSeq++
}

// ExtractMin removes and returns the node with the lowest weight.  Returns
// ErrEmptyQueue if the queue is empty.
func (q *Queue) ExtractMin() (NodeID, uint64, error) {
	if q.h.Len() == 0 {
		return InvalidNode, 0, ErrEmptyQueue
	}
	item := heap.Pop(&q.h).(queueItem)
	return item.id, item.weight, nil
}

// type queueItem + type nodeHeap {{{

type queueItem struct {
	id     NodeID
	weight uint64
	seq    uint64
}

type nodeHeap struct {
	list []queueItem
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.seq < b.seq
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(queueItem))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = queueItem{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
