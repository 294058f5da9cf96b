package slots

import (
	"github.com/google/uuid"

	"github.com/davidreyero/comboforge-backend/pkg/enums"
	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
)

// CategorySlot is one category of the combo being designed, with the products
// chosen for it in selection order. Slots are values: every transition
// returns a new slot and never touches the receiver's backing array.
type CategorySlot struct {
	Category   enums.MenuCategory `json:"category"`
	ProductIDs []uuid.UUID        `json:"productIds"`
}

func NewCategorySlot(category enums.MenuCategory) CategorySlot {
	return CategorySlot{Category: category}
}

// Len is the number of selected products.
func (s CategorySlot) Len() int {
	return len(s.ProductIDs)
}

// Has reports whether the product is currently selected.
func (s CategorySlot) Has(id uuid.UUID) bool {
	for _, selected := range s.ProductIDs {
		if selected == id {
			return true
		}
	}
	return false
}

// WithProduct selects a product. Selecting an already-selected product is a
// no-op that still returns a fresh value.
func (s CategorySlot) WithProduct(id uuid.UUID) CategorySlot {
	if s.Has(id) {
		return s.clone()
	}
	next := s.clone()
	next.ProductIDs = append(next.ProductIDs, id)
	return next
}

// WithoutProduct deselects a product. Removing a product that was never
// selected is an error, not a silent no-op.
func (s CategorySlot) WithoutProduct(id uuid.UUID) (CategorySlot, error) {
	if !s.Has(id) {
		return s, pkgerrors.New(pkgerrors.CodeNotFound, "product is not selected in this slot").
			WithDetails(map[string]any{"product_id": id.String(), "category": s.Category.String()})
	}
	next := CategorySlot{Category: s.Category}
	for _, selected := range s.ProductIDs {
		if selected != id {
			next.ProductIDs = append(next.ProductIDs, selected)
		}
	}
	return next, nil
}

// Toggled flips a product's selection.
func (s CategorySlot) Toggled(id uuid.UUID) CategorySlot {
	if !s.Has(id) {
		return s.WithProduct(id)
	}
	next, _ := s.WithoutProduct(id)
	return next
}

// WithAll replaces the selection with the given products in order.
func (s CategorySlot) WithAll(ids []uuid.UUID) CategorySlot {
	next := CategorySlot{Category: s.Category}
	if len(ids) > 0 {
		next.ProductIDs = make([]uuid.UUID, len(ids))
		copy(next.ProductIDs, ids)
	}
	return next
}

// Cleared drops every selection.
func (s CategorySlot) Cleared() CategorySlot {
	return CategorySlot{Category: s.Category}
}

func (s CategorySlot) clone() CategorySlot {
	next := CategorySlot{Category: s.Category}
	if len(s.ProductIDs) > 0 {
		next.ProductIDs = make([]uuid.UUID, len(s.ProductIDs))
		copy(next.ProductIDs, s.ProductIDs)
	}
	return next
}
