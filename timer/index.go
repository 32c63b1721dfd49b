package timer

import (
	"container/heap"
	"slices"
)

// item is a scheduled entry together with its position in the deadline heap.
// seq is the registration sequence number used to order equal deadlines.
type item struct {
	entry Entry
	seq   uint64
	pos   int
}

func (it *item) before(other *item) bool {
	if c := it.entry.deadline.Compare(other.entry.deadline); c != 0 {
		return c < 0
	}
	return it.seq < other.seq
}

// itemHeap implements container/heap.Interface,
// sorted by deadline then by registration order (min-heap).
type itemHeap []*item

func (h itemHeap) Len() int           { return len(h) }
func (h itemHeap) Less(i, j int) bool { return h[i].before(h[j]) }

func (h itemHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].pos = i
	h[j].pos = j
}

func (h *itemHeap) Push(x any) {
	it := x.(*item) //nolint:forcetypeassert
	it.pos = len(*h)
	*h = append(*h, it)
}

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.pos = -1
	*h = old[:n-1]
	return it
}

// index keeps the deadline-ordered and the identity-keyed views of the live entries.
// Both views always hold the same items.
// It is not safe for concurrent use, callers serialize access.
type index struct {
	byDeadline itemHeap
	byID       map[ID]*item
	seq        uint64
}

// insert adds the entry to both views.
// It returns false without changes if the entry ID is already present.
func (idx *index) insert(e Entry) bool {
	if _, ok := idx.byID[e.id]; ok {
		return false
	}
	if idx.byID == nil {
		idx.byID = make(map[ID]*item)
	}

	idx.seq++
	it := &item{entry: e, seq: idx.seq}
	heap.Push(&idx.byDeadline, it)
	idx.byID[e.id] = it
	return true
}

// remove deletes the entry with the given ID from both views.
func (idx *index) remove(id ID) (Entry, bool) {
	it, ok := idx.byID[id]
	if !ok {
		return Entry{}, false
	}
	heap.Remove(&idx.byDeadline, it.pos)
	delete(idx.byID, id)
	return it.entry, true
}

// peek returns the entry with the earliest deadline.
func (idx *index) peek() (Entry, bool) {
	if len(idx.byDeadline) == 0 {
		return Entry{}, false
	}
	return idx.byDeadline[0].entry, true
}

// popFront removes and returns the entry with the earliest deadline.
// Panics if the index is empty.
func (idx *index) popFront() Entry {
	it := heap.Pop(&idx.byDeadline).(*item) //nolint:forcetypeassert
	delete(idx.byID, it.entry.id)
	return it.entry
}

func (idx *index) get(id ID) (Entry, bool) {
	it, ok := idx.byID[id]
	if !ok {
		return Entry{}, false
	}
	return it.entry, true
}

func (idx *index) has(id ID) bool {
	_, ok := idx.byID[id]
	return ok
}

func (idx *index) len() int { return len(idx.byDeadline) }

// entries returns a copy of the live entries in fire order.
func (idx *index) entries() []Entry {
	its := slices.Clone(idx.byDeadline)
	slices.SortFunc(its, func(a, b *item) int {
		if a.before(b) {
			return -1
		}
		if b.before(a) {
			return 1
		}
		return 0
	})

	out := make([]Entry, len(its))
	for i, it := range its {
		out[i] = it.entry
	}
	return out
}

// clear drops all entries and returns how many were dropped.
func (idx *index) clear() int {
	n := len(idx.byDeadline)
	for _, it := range idx.byDeadline {
		it.pos = -1
	}
	clear(idx.byDeadline)
	idx.byDeadline = idx.byDeadline[:0]
	clear(idx.byID)
	return n
}
