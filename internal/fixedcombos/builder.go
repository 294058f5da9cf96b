package fixedcombos

import (
	"github.com/shopspring/decimal"

	"github.com/davidreyero/comboforge-backend/internal/pricing"
	"github.com/davidreyero/comboforge-backend/pkg/enums"
	pkgerrors "github.com/davidreyero/comboforge-backend/pkg/errors"
	"github.com/davidreyero/comboforge-backend/pkg/types"
)

// State is the authoring phase a builder is in. Edits after a preview fall
// back to ProductsSelected so stale numbers are never shown; a saved builder
// is sealed until Reset.
type State string

const (
	StateEmpty            State = "empty"
	StateSlotsAdded       State = "slots_added"
	StateProductsSelected State = "products_selected"
	StatePricedPreview    State = "priced_preview"
	StateSaved            State = "saved"
)

// Builder walks an operator through authoring one named bundle: add category
// slots, pick exactly one product per slot, preview the numbers, save.
type Builder struct {
	state      State
	categories []enums.MenuCategory
	picks      map[enums.MenuCategory]types.Product

	channel    enums.SalesChannel
	salePrice  decimal.Decimal
	guestCount int
	preview    *types.ChannelCostResult

	tariffs pricing.Tariffs
}

func NewBuilder(tariffs pricing.Tariffs) *Builder {
	return &Builder{
		state:   StateEmpty,
		picks:   make(map[enums.MenuCategory]types.Product),
		tariffs: tariffs,
	}
}

func (b *Builder) State() State {
	return b.state
}

// Categories returns the slot categories in authoring order.
func (b *Builder) Categories() []enums.MenuCategory {
	out := make([]enums.MenuCategory, len(b.categories))
	copy(out, b.categories)
	return out
}

// Preview returns the last priced result, if the builder is in preview state.
func (b *Builder) Preview() *types.ChannelCostResult {
	if b.state != StatePricedPreview {
		return nil
	}
	result := *b.preview
	return &result
}

// AddSlot appends a category slot. Duplicates conflict; a saved builder is
// sealed.
func (b *Builder) AddSlot(category enums.MenuCategory) error {
	if err := b.editable("add slot"); err != nil {
		return err
	}
	if !category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
			WithDetails(map[string]any{"category": string(category)})
	}
	for _, existing := range b.categories {
		if existing == category {
			return pkgerrors.New(pkgerrors.CodeConflict, "slot already exists for category").
				WithDetails(map[string]any{"category": category.String()})
		}
	}
	b.categories = append(b.categories, category)
	b.invalidatePreview()
	if b.state == StateEmpty {
		b.state = StateSlotsAdded
	}
	return nil
}

// SelectProduct picks the product for a slot. A second pick in the same slot
// overwrites the first: fixed combos hold exactly one product per category.
func (b *Builder) SelectProduct(category enums.MenuCategory, product types.Product) error {
	if err := b.editable("select product"); err != nil {
		return err
	}
	if !b.hasSlot(category) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no slot for category").
			WithDetails(map[string]any{"category": category.String()})
	}
	if product.Category != category {
		return pkgerrors.New(pkgerrors.CodeValidation, "product belongs to a different category").
			WithDetails(map[string]any{
				"product_category": product.Category.String(),
				"slot_category":    category.String(),
			})
	}
	if !product.Active {
		return pkgerrors.New(pkgerrors.CodeValidation, "product is inactive")
	}
	b.picks[category] = product
	b.invalidatePreview()
	b.state = StateProductsSelected
	return nil
}

// PricePreview prices the current picks and moves the builder into preview.
// Every slot must have a pick and at least two slots must exist.
func (b *Builder) PricePreview(channel enums.SalesChannel, salePrice decimal.Decimal, guestCount int) error {
	switch b.state {
	case StateSaved:
		return b.sealed("price preview")
	case StateEmpty, StateSlotsAdded:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no products selected yet").
			WithDetails(map[string]any{"state": string(b.state)})
	}
	if len(b.categories) < 2 {
		return pkgerrors.New(pkgerrors.CodeInsufficientSlots, "a fixed combo needs at least two slots")
	}
	for _, category := range b.categories {
		if _, ok := b.picks[category]; !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "every slot needs a product before pricing").
				WithDetails(map[string]any{"category": category.String()})
		}
	}

	result, err := pricing.Quote(b.Combination(), pricing.FixedComboModel(channel), pricing.Params{
		Channel:    channel,
		SalePrice:  salePrice,
		GuestCount: guestCount,
		Tariffs:    b.tariffs,
	})
	if err != nil {
		return err
	}

	b.channel = channel
	b.salePrice = salePrice
	b.guestCount = guestCount
	b.preview = result
	b.state = StatePricedPreview
	return nil
}

// Snapshot freezes the previewed builder into a persistable draft. Only a
// priced builder can be saved; the builder seals afterwards.
func (b *Builder) Snapshot(name string) (*Draft, error) {
	if b.state != StatePricedPreview {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only a priced preview can be saved").
			WithDetails(map[string]any{"state": string(b.state)})
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fixed combo name is required")
	}

	draft := &Draft{
		Name:       name,
		Channel:    b.channel,
		SalePrice:  b.salePrice,
		GuestCount: b.guestCount,
		Items:      b.Combination(),
		CostResult: *b.preview,
	}
	b.state = StateSaved
	return draft, nil
}

// Reset returns the builder to its initial state for the next combo.
func (b *Builder) Reset() {
	b.state = StateEmpty
	b.categories = nil
	b.picks = make(map[enums.MenuCategory]types.Product)
	b.preview = nil
	b.channel = ""
	b.salePrice = decimal.Zero
	b.guestCount = 0
}

// Combination assembles the picks in slot order. Slots without picks are
// skipped, which only matters before pricing.
func (b *Builder) Combination() types.Combination {
	combo := make(types.Combination, 0, len(b.categories))
	for _, category := range b.categories {
		product, ok := b.picks[category]
		if !ok {
			continue
		}
		combo = append(combo, types.ComboItem{Category: category, Product: product})
	}
	return combo
}

func (b *Builder) hasSlot(category enums.MenuCategory) bool {
	for _, existing := range b.categories {
		if existing == category {
			return true
		}
	}
	return false
}

func (b *Builder) editable(action string) error {
	if b.state == StateSaved {
		return b.sealed(action)
	}
	return nil
}

func (b *Builder) sealed(action string) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "builder is saved; reset it to continue").
		WithDetails(map[string]any{"action": action})
}

func (b *Builder) invalidatePreview() {
	if b.state == StatePricedPreview {
		b.state = StateProductsSelected
	}
	b.preview = nil
}

// Draft is the frozen output of a saved builder, ready for persistence.
type Draft struct {
	Name       string
	Channel    enums.SalesChannel
	SalePrice  decimal.Decimal
	GuestCount int
	Items      types.Combination
	CostResult types.ChannelCostResult
}
