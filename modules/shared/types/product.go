// Package types provides shared value objects and type definitions
// used across multiple modules (Shared Kernel pattern).
package types

// Category is one of the fixed catalog categories.
type Category string

const (
	CategorySoftSkill  Category = "софт-скил"
	CategoryHardSkill  Category = "хард-скил"
	CategoryOther      Category = "другое"
	CategoryAdditional Category = "дополнительное"
	CategoryButton     Category = "кнопка"
)

func (c Category) String() string { return string(c) }

func (c Category) IsKnown() bool {
	switch c {
	case CategorySoftSkill, CategoryHardSkill, CategoryOther, CategoryAdditional, CategoryButton:
		return true
	default:
		return false
	}
}

// Product is a catalog item. Products are immutable once loaded; the catalog
// replaces its whole collection on reload.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Category    Category `json:"category"`
	Price       Price    `json:"price"`
}

// ForSale reports whether the product can be put in a cart.
func (p Product) ForSale() bool { return !p.Price.IsPriceless() }

// ProductIDs returns the ids of items in order, duplicates included.
func ProductIDs(items []Product) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
