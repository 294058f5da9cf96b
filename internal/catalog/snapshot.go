package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/davidreyero/comboforge-backend/pkg/enums"
	"github.com/davidreyero/comboforge-backend/pkg/types"
)

// Snapshot is a point-in-time, read-only view of the active catalog. Slot
// sessions and pricing runs hold a snapshot so catalog edits never mutate a
// selection mid-flight.
type Snapshot struct {
	takenAt    time.Time
	byID       map[uuid.UUID]types.Product
	byCategory map[enums.MenuCategory][]types.Product
}

// NewSnapshot builds a snapshot from the given products, keeping only the
// active ones.
func NewSnapshot(products []types.Product) *Snapshot {
	s := &Snapshot{
		takenAt:    time.Now().UTC(),
		byID:       make(map[uuid.UUID]types.Product, len(products)),
		byCategory: make(map[enums.MenuCategory][]types.Product),
	}
	for _, p := range products {
		if !p.Active {
			continue
		}
		s.byID[p.ID] = p
		s.byCategory[p.Category] = append(s.byCategory[p.Category], p)
	}
	return s
}

// TakenAt reports when the snapshot was built.
func (s *Snapshot) TakenAt() time.Time {
	return s.takenAt
}

// Len is the number of active products captured.
func (s *Snapshot) Len() int {
	return len(s.byID)
}

// Product looks up one product by id.
func (s *Snapshot) Product(id uuid.UUID) (types.Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// ByCategory returns the products of one category. The slice is a copy.
func (s *Snapshot) ByCategory(category enums.MenuCategory) []types.Product {
	stored := s.byCategory[category]
	out := make([]types.Product, len(stored))
	copy(out, stored)
	return out
}

// Categories lists the populated categories in canonical menu order.
func (s *Snapshot) Categories() []enums.MenuCategory {
	out := make([]enums.MenuCategory, 0, len(s.byCategory))
	for _, category := range enums.MenuCategories() {
		if len(s.byCategory[category]) > 0 {
			out = append(out, category)
		}
	}
	return out
}
