package combos

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/davidreyero/comboforge-backend/pkg/enums"
	"github.com/davidreyero/comboforge-backend/pkg/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mkProduct(category enums.MenuCategory, name, cost, offline, online string) types.Product {
	return types.Product{
		Name:         name,
		CostPrice:    dec(cost),
		OfflinePrice: dec(offline),
		OnlinePrice:  dec(online),
		Category:     category,
		Active:       true,
	}
}

func mkSlot(category enums.MenuCategory, count int) SlotSelection {
	slot := SlotSelection{Category: category}
	for i := 0; i < count; i++ {
		cost := fmt.Sprintf("%d", 2+i)
		offline := fmt.Sprintf("%d", 6+2*i)
		online := fmt.Sprintf("%d", 7+2*i)
		slot.Products = append(slot.Products, mkProduct(
			category, fmt.Sprintf("%s-%d", category, i), cost, offline, online))
	}
	return slot
}

func drain(s *Stream) []types.Combination {
	var out []types.Combination
	for {
		combo, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, combo)
	}
}

func comboKey(c types.Combination) string {
	key := ""
	for _, item := range c {
		key += item.Product.Name + "|"
	}
	return key
}

func TestStreamCardinality(t *testing.T) {
	t.Parallel()

	slots := []SlotSelection{
		mkSlot(enums.MenuCategorySoup, 2),
		mkSlot(enums.MenuCategoryMain, 3),
		mkSlot(enums.MenuCategoryDessert, 4),
	}
	stream := NewStream(slots)
	if got := stream.Count(); got != 24 {
		t.Fatalf("Count() = %d, want 24", got)
	}

	combos := drain(stream)
	if len(combos) != 24 {
		t.Fatalf("generated %d combinations, want 24", len(combos))
	}

	seen := map[string]bool{}
	for _, combo := range combos {
		if len(combo) != 3 {
			t.Fatalf("combination has %d items, want one per slot", len(combo))
		}
		key := comboKey(combo)
		if seen[key] {
			t.Fatalf("duplicate combination %s", key)
		}
		seen[key] = true
	}
}

func TestStreamOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	slots := []SlotSelection{
		mkSlot(enums.MenuCategorySoup, 2),
		mkSlot(enums.MenuCategoryMain, 2),
	}
	stream := NewStream(slots)
	first := drain(stream)

	stream.Reset()
	second := drain(stream)

	if len(first) != len(second) {
		t.Fatalf("reset changed cardinality: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if comboKey(first[i]) != comboKey(second[i]) {
			t.Fatalf("position %d differs after reset", i)
		}
	}

	// rightmost slot advances fastest
	if first[0][1].Product.Name == first[1][1].Product.Name {
		t.Fatal("second combination must vary the rightmost slot")
	}
	if first[0][0].Product.Name != first[1][0].Product.Name {
		t.Fatal("leftmost slot must stay fixed across the first two combinations")
	}
}

func TestStreamEmptySlotYieldsNothing(t *testing.T) {
	t.Parallel()

	slots := []SlotSelection{
		mkSlot(enums.MenuCategorySoup, 3),
		{Category: enums.MenuCategoryMain},
	}
	stream := NewStream(slots)
	if got := stream.Count(); got != 0 {
		t.Fatalf("Count() = %d, want 0 for an empty included slot", got)
	}
	if _, ok := stream.Next(); ok {
		t.Fatal("Next() must report exhaustion immediately")
	}
}

func TestNonEmptyDropsEmptySlots(t *testing.T) {
	t.Parallel()

	slots := []SlotSelection{
		mkSlot(enums.MenuCategorySoup, 1),
		{Category: enums.MenuCategoryMain},
		mkSlot(enums.MenuCategoryDrink, 2),
	}
	filtered := NonEmpty(slots)
	if len(filtered) != 2 {
		t.Fatalf("kept %d slots, want 2", len(filtered))
	}
	if filtered[0].Category != enums.MenuCategorySoup || filtered[1].Category != enums.MenuCategoryDrink {
		t.Fatal("filter must preserve slot order")
	}
}
