package combos

import (
	"math"

	"github.com/davidreyero/comboforge-backend/pkg/enums"
	"github.com/davidreyero/comboforge-backend/pkg/types"
)

// SlotSelection is one category slot with its chosen products, in selection
// order. The generator walks the slots exactly as given.
type SlotSelection struct {
	Category enums.MenuCategory
	Products []types.Product
}

// NonEmpty filters out slots whose selection is empty. The quoting path only
// crosses populated slots; passing an empty slot to the generator instead is
// legal and yields a mathematically empty product.
func NonEmpty(slots []SlotSelection) []SlotSelection {
	out := make([]SlotSelection, 0, len(slots))
	for _, slot := range slots {
		if len(slot.Products) > 0 {
			out = append(out, slot)
		}
	}
	return out
}

// Stream lazily enumerates the Cartesian product of the slot selections, one
// combination per call. The rightmost slot advances fastest, so generation
// order is deterministic and restartable via Reset.
type Stream struct {
	slots []SlotSelection
	idx   []int
	done  bool
}

// NewStream builds a stream over the given slots verbatim.
func NewStream(slots []SlotSelection) *Stream {
	s := &Stream{
		slots: slots,
		idx:   make([]int, len(slots)),
	}
	if len(slots) == 0 {
		s.done = true
	}
	for _, slot := range slots {
		if len(slot.Products) == 0 {
			s.done = true
		}
	}
	return s
}

// Count returns the total number of combinations the stream will produce,
// saturating at MaxInt64 for absurd inputs.
func (s *Stream) Count() int64 {
	if len(s.slots) == 0 {
		return 0
	}
	total := int64(1)
	for _, slot := range s.slots {
		n := int64(len(slot.Products))
		if n == 0 {
			return 0
		}
		if total > math.MaxInt64/n {
			return math.MaxInt64
		}
		total *= n
	}
	return total
}

// Next produces the next combination, or false when the stream is exhausted.
// The returned slice is freshly allocated; callers may retain it.
func (s *Stream) Next() (types.Combination, bool) {
	if s.done {
		return nil, false
	}

	combo := make(types.Combination, len(s.slots))
	for i, slot := range s.slots {
		combo[i] = types.ComboItem{
			Category: slot.Category,
			Product:  slot.Products[s.idx[i]],
		}
	}

	// odometer advance
	for i := len(s.idx) - 1; i >= 0; i-- {
		s.idx[i]++
		if s.idx[i] < len(s.slots[i].Products) {
			return combo, true
		}
		s.idx[i] = 0
	}
	s.done = true
	return combo, true
}

// Reset rewinds the stream to its first combination.
func (s *Stream) Reset() {
	for i := range s.idx {
		s.idx[i] = 0
	}
	s.done = false
	if len(s.slots) == 0 {
		s.done = true
	}
	for _, slot := range s.slots {
		if len(slot.Products) == 0 {
			s.done = true
		}
	}
}
