package ledger

import (
	"fmt"
	"strings"
)

// CategoryType constrains which transaction types may select a category.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
	CategoryBoth    CategoryType = "both"
)

func (c CategoryType) Valid() bool {
	switch c {
	case CategoryIncome, CategoryExpense, CategoryBoth:
		return true
	}
	return false
}

// ParseCategoryType validates a category type string.
func ParseCategoryType(s string) (CategoryType, error) {
	c := CategoryType(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category type: %q (must be income, expense or both)", s)
	}
	return c, nil
}

// Category is a named grouping of transactions.
type Category struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Color string       `json:"color"`
	Icon  string       `json:"icon"`
	Type  CategoryType `json:"type"`
}

// Allows reports whether a transaction of type t may use the category.
func (c Category) Allows(t Type) bool {
	if c.Type == CategoryBoth {
		return true
	}
	return string(c.Type) == string(t)
}

// CategoryPatch holds a partial category update.
type CategoryPatch struct {
	Name  *string       `json:"name,omitempty"`
	Color *string       `json:"color,omitempty"`
	Icon  *string       `json:"icon,omitempty"`
	Type  *CategoryType `json:"type,omitempty"`
}

func (c Category) Apply(p CategoryPatch) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.Type != nil {
		c.Type = *p.Type
	}

	return c
}

// FindCategory returns the category with the given id.
func FindCategory(categories []Category, id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
