package slots

import (
	"time"

	"github.com/davidreyero/comboforge-backend/pkg/enums"
)

// Session is one user's combo-design workspace: an ordered list of category
// slots and their selections. Sessions serialize to JSON for external stores.
type Session struct {
	ID        string         `json:"id"`
	Slots     []CategorySlot `json:"slots"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// SlotIndex finds the slot for a category, or -1.
func (s *Session) SlotIndex(category enums.MenuCategory) int {
	for i, slot := range s.Slots {
		if slot.Category == category {
			return i
		}
	}
	return -1
}

// PopulatedSlots counts slots with at least one selection.
func (s *Session) PopulatedSlots() int {
	count := 0
	for _, slot := range s.Slots {
		if slot.Len() > 0 {
			count++
		}
	}
	return count
}

func (s *Session) clone() *Session {
	out := &Session{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if len(s.Slots) > 0 {
		out.Slots = make([]CategorySlot, len(s.Slots))
		for i, slot := range s.Slots {
			out.Slots[i] = slot.clone()
		}
	}
	return out
}
