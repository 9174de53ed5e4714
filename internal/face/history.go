package face

// RecentHistoryCapacity bounds the short-term score buffer used for
// sparkline display.
const RecentHistoryCapacity = 120

// recentRing is a fixed-capacity FIFO of composite scores. On overflow the
// oldest score is evicted.
type recentRing struct {
	scores   []int
	capacity int
	head     int // next write position
	size     int
}

func newRecentRing(capacity int) *recentRing {
	return &recentRing{
		scores:   make([]int, capacity),
		capacity: capacity,
	}
}

// push stores a score, overwriting the oldest when at capacity.
func (r *recentRing) push(score int) {
	r.scores[r.head] = score
	r.head = (r.head + 1) % r.capacity
	if r.size < r.capacity {
		r.size++
	}
}

// ordered returns the buffered scores oldest first, as a fresh slice.
func (r *recentRing) ordered() []int {
	out := make([]int, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.scores[(r.head-r.size+i+r.capacity)%r.capacity]
	}
	return out
}

func (r *recentRing) clear() {
	r.head = 0
	r.size = 0
}

// scoreHistory pairs the bounded recent buffer with the append-only
// session score list. The session list is never evicted until reset.
type scoreHistory struct {
	recent  *recentRing
	session []int
}

func newScoreHistory() *scoreHistory {
	return &scoreHistory{recent: newRecentRing(RecentHistoryCapacity)}
}

func (h *scoreHistory) push(score int) {
	h.recent.push(score)
	h.session = append(h.session, score)
}

func (h *scoreHistory) reset() {
	h.recent.clear()
	h.session = nil
}
