// Package category provides the Category catalog for classifying
// non-sales income and expenses. Categories form a single-level
// hierarchy: a category either has no parent or points at a top-level one.
package category

import (
	"context"

	"kassa/internal/core/apperror"
	"kassa/internal/core/entity"
	"kassa/internal/core/id"
)

// Type separates income categories from expense categories.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Category classifies a non-sales income or expense line.
type Category struct {
	entity.Catalog

	// ParentID points at the top-level category, nil for roots
	ParentID *id.ID `db:"parent_id" json:"parentId,omitempty"`

	// Type selects which line kind the category applies to
	Type Type `db:"category_type" json:"type"`
}

// NewCategory creates a new top-level Category.
func NewCategory(name string, cType Type) *Category {
	return &Category{
		Catalog: entity.NewCatalog(name),
		Type:    cType,
	}
}

// NewSubcategory creates a Category under the given parent.
func NewSubcategory(name string, cType Type, parentID id.ID) *Category {
	c := NewCategory(name, cType)
	c.ParentID = &parentID
	return c
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidType(c.Type) {
		return apperror.NewValidation("invalid category type").
			WithDetail("field", "type").
			WithDetail("value", string(c.Type))
	}

	if c.ParentID != nil && *c.ParentID == c.ID {
		return apperror.NewValidation("category cannot be its own parent").
			WithDetail("field", "parentId")
	}

	return nil
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}

func isValidType(t Type) bool {
	switch t {
	case TypeIncome, TypeExpense:
		return true
	}
	return false
}
