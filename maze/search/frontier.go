package search

import "container/heap"

// FrontierKind selects the work-list discipline used by Run.
type FrontierKind int

const (
	// FrontierPriority pops the cheapest pending entry first.
	FrontierPriority FrontierKind = iota
	// FrontierStack pops the most recently pushed entry first. Costs may be
	// revised several times before settling.
	FrontierStack
)

func (k FrontierKind) String() string {
	switch k {
	case FrontierPriority:
		return "priority"
	case FrontierStack:
		return "stack"
	}
	return "unknown"
}

// ParseFrontier maps "priority" / "stack" (and "" for the default) to a kind.
func ParseFrontier(s string) (FrontierKind, bool) {
	switch s {
	case "", "priority", "heap", "dijkstra":
		return FrontierPriority, true
	case "stack", "lifo", "label-correcting":
		return FrontierStack, true
	}
	return FrontierPriority, false
}

type entry[S comparable] struct {
	state S
	cost  int
}

type frontier[S comparable] interface {
	push(e entry[S])
	pop() entry[S]
	len() int
}

func newFrontier[S comparable](kind FrontierKind) frontier[S] {
	if kind == FrontierStack {
		return &stackFrontier[S]{}
	}
	pq := make(priorityQueue[S], 0)
	heap.Init(&pq)
	return &heapFrontier[S]{queue: pq}
}

type stackFrontier[S comparable] struct {
	items []entry[S]
}

func (f *stackFrontier[S]) push(e entry[S]) { f.items = append(f.items, e) }

func (f *stackFrontier[S]) pop() entry[S] {
	n := len(f.items)
	e := f.items[n-1]
	f.items = f.items[:n-1]
	return e
}

func (f *stackFrontier[S]) len() int { return len(f.items) }

type heapFrontier[S comparable] struct {
	queue priorityQueue[S]
	seq   uint64
}

func (f *heapFrontier[S]) push(e entry[S]) {
	f.seq++
	heap.Push(&f.queue, &queueItem[S]{entry: e, seq: f.seq})
}

func (f *heapFrontier[S]) pop() entry[S] {
	return heap.Pop(&f.queue).(*queueItem[S]).entry
}

func (f *heapFrontier[S]) len() int { return f.queue.Len() }

type queueItem[S comparable] struct {
	entry[S]
	seq uint64
}

// priorityQueue orders by cost, then insertion order so equal-cost pops are
// deterministic.
type priorityQueue[S comparable] []*queueItem[S]

func (queue priorityQueue[S]) Len() int { return len(queue) }
func (queue priorityQueue[S]) Less(i, j int) bool {
	if queue[i].cost != queue[j].cost {
		return queue[i].cost < queue[j].cost
	}
	return queue[i].seq < queue[j].seq
}
func (queue priorityQueue[S]) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *priorityQueue[S]) Push(x any) {
	*queue = append(*queue, x.(*queueItem[S]))
}

func (queue *priorityQueue[S]) Pop() any {
	old := *queue
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*queue = old[:n-1]
	return item
}
