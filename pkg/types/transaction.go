package types

import "github.com/shopspring/decimal"

// LineItem is a snapshot of a Good taken when a transaction is recorded.
// Value holds the price per unit charged in that transaction and Quantity
// the number of units moved, so later edits to the Good do not rewrite
// history.
type LineItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Material    string          `json:"material"`
	Weight      float64         `json:"weight"`
	Value       decimal.Decimal `json:"value"`
	Quantity    int             `json:"quantity"`
}

// NewLineItem snapshots g at its current value for quantity units.
func NewLineItem(g Good, quantity int) LineItem {
	return LineItem{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Material:    g.Material,
		Weight:      g.Weight,
		Value:       g.Value,
		Quantity:    quantity,
	}
}

// Subtotal returns Value × Quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Value.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Total sums the subtotals of items.
func Total(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, li := range items {
		sum = sum.Add(li.Subtotal())
	}
	return sum
}

func validateItems(items []LineItem) error {
	for _, li := range items {
		if li.Quantity < 0 {
			return ErrInvalidQuantity
		}
		if li.Value.IsNegative() {
			return ErrInvalidValue
		}
	}
	return nil
}

// Sale records goods sold to a hunter.
type Sale struct {
	ID          int             `json:"id"`
	Date        Date            `json:"date"`
	HunterID    int             `json:"hunterId"`
	ItemsSold   []LineItem      `json:"itemsSold"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// Key returns the sale's id.
func (s Sale) Key() int { return s.ID }

// Validate checks the line items and total.
func (s Sale) Validate() error {
	if s.TotalAmount.IsNegative() {
		return ErrInvalidValue
	}
	return validateItems(s.ItemsSold)
}

// SaleUpdate names the fields of a Sale that may change. Items and totals
// are fixed once recorded.
type SaleUpdate struct {
	Date     *Date
	HunterID *int
}

// Apply assigns every non-nil field of u to s.
func (u SaleUpdate) Apply(s *Sale) {
	if u.Date != nil {
		s.Date = *u.Date
	}
	if u.HunterID != nil {
		s.HunterID = *u.HunterID
	}
}

// Purchase records goods bought from a merchant.
type Purchase struct {
	ID             int             `json:"id"`
	Date           Date            `json:"date"`
	MerchantID     int             `json:"merchantId"`
	ItemsPurchased []LineItem      `json:"itemsPurchased"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
}

// Key returns the purchase's id.
func (p Purchase) Key() int { return p.ID }

// Validate checks the line items and total.
func (p Purchase) Validate() error {
	if p.TotalAmount.IsNegative() {
		return ErrInvalidValue
	}
	return validateItems(p.ItemsPurchased)
}

// PurchaseUpdate names the fields of a Purchase that may change.
type PurchaseUpdate struct {
	Date       *Date
	MerchantID *int
}

// Apply assigns every non-nil field of u to p.
func (u PurchaseUpdate) Apply(p *Purchase) {
	if u.Date != nil {
		p.Date = *u.Date
	}
	if u.MerchantID != nil {
		p.MerchantID = *u.MerchantID
	}
}

// Return records goods handed back by a customer. CustomerID refers to
// either a Hunter or a Merchant; the document does not say which.
type Return struct {
	ID            int        `json:"id"`
	Date          Date       `json:"date"`
	CustomerID    int        `json:"customerId"`
	ItemsReturned []LineItem `json:"itemsReturned"`
}

// Key returns the return's id.
func (r Return) Key() int { return r.ID }

// Validate checks the line items.
func (r Return) Validate() error {
	return validateItems(r.ItemsReturned)
}

// ReturnUpdate names the fields of a Return that may change.
type ReturnUpdate struct {
	Date       *Date
	CustomerID *int
}

// Apply assigns every non-nil field of u to r.
func (u ReturnUpdate) Apply(r *Return) {
	if u.Date != nil {
		r.Date = *u.Date
	}
	if u.CustomerID != nil {
		r.CustomerID = *u.CustomerID
	}
}
