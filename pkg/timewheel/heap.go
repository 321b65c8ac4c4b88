package timewheel

type entry struct {
	w   Worker
	seq int
}

// workerHeap is a min-heap on NextWake; registration order breaks ties.
type workerHeap []entry

func (h workerHeap) Len() int { return len(h) }

func (h workerHeap) Less(i, j int) bool {
	a, b := h[i].w.NextWake(), h[j].w.NextWake()
	if a.Equal(b) {
		return h[i].seq < h[j].seq
	}
	return a.Before(b)
}

func (h workerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *workerHeap) Push(x any) {
	*h = append(*h, x.(entry))
}

func (h *workerHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = entry{}
	*h = old[:n-1]
	return x
}
