package combos

import (
	"container/heap"
	"sort"

	"github.com/davidreyero/comboforge-backend/pkg/enums"
	"github.com/davidreyero/comboforge-backend/pkg/types"
)

// Scored pairs a combination with its priced result. Ordinal is the position
// in generation order and breaks ties, keeping runs idempotent.
type Scored struct {
	Ordinal     int64                   `json:"ordinal"`
	Combination types.Combination       `json:"combination"`
	Result      types.ChannelCostResult `json:"result"`
}

// Ranker keeps the best K scored combinations seen so far without holding the
// full stream in memory. It is not safe for concurrent use.
type Ranker struct {
	key    enums.SortKey
	cap    int
	pushed int64
	worst  scoredHeap
}

// NewRanker builds a ranker bounded to cap entries. A non-positive cap falls
// back to keeping everything, which only tests should want.
func NewRanker(key enums.SortKey, cap int) *Ranker {
	return &Ranker{key: key, cap: cap}
}

// Push offers one scored combination. When the ranker is full, the offer only
// sticks if it beats the current worst entry.
func (r *Ranker) Push(s Scored) {
	r.pushed++
	if r.cap > 0 && r.worst.Len() >= r.cap {
		if !better(r.key, s, r.worst.items[0]) {
			return
		}
		r.worst.items[0] = s
		heap.Fix(&r.worst, 0)
		return
	}
	if r.worst.key == "" {
		r.worst.key = r.key
	}
	heap.Push(&r.worst, s)
}

// Truncated reports whether more combinations were offered than kept.
func (r *Ranker) Truncated() bool {
	return r.cap > 0 && r.pushed > int64(r.cap)
}

// Pushed returns how many combinations were offered in total.
func (r *Ranker) Pushed() int64 {
	return r.pushed
}

// Ranked returns the kept combinations ordered best to worst. The ranker
// remains usable afterwards.
func (r *Ranker) Ranked() []Scored {
	out := make([]Scored, len(r.worst.items))
	copy(out, r.worst.items)
	sort.Slice(out, func(i, j int) bool {
		return better(r.key, out[i], out[j])
	})
	return out
}

// better is the total order used for ranking: the sort key first, generation
// order on ties. Undefined-margin results never reach the ranker, so the
// decimal comparisons are always meaningful.
func better(key enums.SortKey, a, b Scored) bool {
	var cmp int
	switch key {
	case enums.SortKeyProfitDesc:
		cmp = b.Result.Profit.Cmp(a.Result.Profit)
	case enums.SortKeyCostAsc:
		cmp = a.Result.CostTotal.Cmp(b.Result.CostTotal)
	default:
		cmp = b.Result.MarginPercent.Cmp(a.Result.MarginPercent)
	}
	if cmp != 0 {
		return cmp < 0
	}
	return a.Ordinal < b.Ordinal
}

// scoredHeap is a min-heap on "better", so the worst kept entry sits at the
// root ready for eviction.
type scoredHeap struct {
	key   enums.SortKey
	items []Scored
}

func (h *scoredHeap) Len() int { return len(h.items) }

func (h *scoredHeap) Less(i, j int) bool {
	return better(h.key, h.items[j], h.items[i])
}

func (h *scoredHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *scoredHeap) Push(x any) {
	h.items = append(h.items, x.(Scored))
}

func (h *scoredHeap) Pop() any {
	last := len(h.items) - 1
	item := h.items[last]
	h.items = h.items[:last]
	return item
}
