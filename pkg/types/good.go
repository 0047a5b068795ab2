package types

import "github.com/shopspring/decimal"

func init() {
	// Prices are written as plain JSON numbers so documents stay readable
	// and compatible with files that stored value as a number.
	decimal.MarshalJSONWithoutQuotes = true
}

// Good is a tradeable item held in the inn's inventory.
type Good struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Material    string          `json:"material"`
	Weight      float64         `json:"weight"`
	Value       decimal.Decimal `json:"value"` // Price per unit in crowns.
	Quantity    int             `json:"quantity"`
}

// Key returns the good's id.
func (g Good) Key() int { return g.ID }

// Validate checks the fields a caller supplies when adding a good.
func (g Good) Validate() error {
	if g.Name == "" {
		return ErrInvalidName
	}
	if g.Weight < 0 {
		return ErrInvalidWeight
	}
	if g.Value.IsNegative() {
		return ErrInvalidValue
	}
	if g.Quantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// GoodUpdate names the fields of a Good that may change after creation.
// Nil fields are left untouched.
type GoodUpdate struct {
	Name        *string
	Description *string
	Material    *string
	Weight      *float64
	Value       *decimal.Decimal
	Quantity    *int
}

// IsEmpty reports whether the update sets no field.
func (u GoodUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Material == nil &&
		u.Weight == nil && u.Value == nil && u.Quantity == nil
}

// Validate rejects values that Good.Validate would reject.
func (u GoodUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return ErrInvalidName
	}
	if u.Weight != nil && *u.Weight < 0 {
		return ErrInvalidWeight
	}
	if u.Value != nil && u.Value.IsNegative() {
		return ErrInvalidValue
	}
	if u.Quantity != nil && *u.Quantity < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Apply assigns every non-nil field of u to g.
func (u GoodUpdate) Apply(g *Good) {
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	if u.Material != nil {
		g.Material = *u.Material
	}
	if u.Weight != nil {
		g.Weight = *u.Weight
	}
	if u.Value != nil {
		g.Value = *u.Value
	}
	if u.Quantity != nil {
		g.Quantity = *u.Quantity
	}
}
