package enums

import "fmt"

// MenuCategory represents the canonical menu categories supported by the catalog.
type MenuCategory string

const (
	MenuCategorySoup      MenuCategory = "soup"
	MenuCategoryAppetizer MenuCategory = "appetizer"
	MenuCategoryMain      MenuCategory = "main"
	MenuCategorySide      MenuCategory = "side"
	MenuCategorySalad     MenuCategory = "salad"
	MenuCategoryDessert   MenuCategory = "dessert"
	MenuCategoryDrink     MenuCategory = "drink"
)

var validMenuCategories = []MenuCategory{
	MenuCategorySoup,
	MenuCategoryAppetizer,
	MenuCategoryMain,
	MenuCategorySide,
	MenuCategorySalad,
	MenuCategoryDessert,
	MenuCategoryDrink,
}

// String implements fmt.Stringer.
func (c MenuCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known MenuCategory.
func (c MenuCategory) IsValid() bool {
	for _, candidate := range validMenuCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseMenuCategory converts raw input into a MenuCategory.
func ParseMenuCategory(value string) (MenuCategory, error) {
	for _, candidate := range validMenuCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid menu category %q", value)
}

// MenuCategories returns the full category list in canonical order.
func MenuCategories() []MenuCategory {
	out := make([]MenuCategory, len(validMenuCategories))
	copy(out, validMenuCategories)
	return out
}
