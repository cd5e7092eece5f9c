package enums

import (
	"fmt"
	"strings"
)

// Category is the spending category assigned to a bill line item by the
// classifier. CategoryOther doubles as the fallback when classification fails.
type Category string

const (
	CategoryDairy        Category = "Dairy"
	CategorySnacks       Category = "Snacks"
	CategoryBeverages    Category = "Beverages"
	CategoryCleaning     Category = "Cleaning"
	CategoryPersonalCare Category = "Personal Care"
	CategoryElectronics  Category = "Electronics"
	CategoryGroceries    Category = "Groceries"
	CategoryFruitsVeg    Category = "Fruits & Vegetables"
	CategoryMeatSeafood  Category = "Meat & Seafood"
	CategoryBakery       Category = "Bakery"
	CategoryFrozenFoods  Category = "Frozen Foods"
	CategoryOther        Category = "Other"
)

var validCategories = []Category{
	CategoryDairy,
	CategorySnacks,
	CategoryBeverages,
	CategoryCleaning,
	CategoryPersonalCare,
	CategoryElectronics,
	CategoryGroceries,
	CategoryFruitsVeg,
	CategoryMeatSeafood,
	CategoryBakery,
	CategoryFrozenFoods,
	CategoryOther,
}

// Categories returns the canonical category list.
func Categories() []Category {
	return append([]Category(nil), validCategories...)
}

// IsValid checks whether the given category matches the canonical set.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// NormalizeCategory maps arbitrary model output onto the canonical set,
// falling back to CategoryOther.
func NormalizeCategory(value string) Category {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validCategories {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate
		}
	}
	return CategoryOther
}

// ParseCategory converts raw strings into Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}
