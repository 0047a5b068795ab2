package types

// Merchant is a supplier the inn trades with.
type Merchant struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"` // Speciality, e.g. Blacksmith or Alchemist.
	Location string `json:"location"`
}

// Key returns the merchant's id.
func (m Merchant) Key() int { return m.ID }

// Validate checks the fields a caller supplies when adding a merchant.
func (m Merchant) Validate() error {
	if m.Name == "" {
		return ErrInvalidName
	}
	return nil
}

// MerchantUpdate names the fields of a Merchant that may change.
type MerchantUpdate struct {
	Name     *string
	Type     *string
	Location *string
}

// Validate rejects an empty name.
func (u MerchantUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return ErrInvalidName
	}
	return nil
}

// Apply assigns every non-nil field of u to m.
func (u MerchantUpdate) Apply(m *Merchant) {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Type != nil {
		m.Type = *u.Type
	}
	if u.Location != nil {
		m.Location = *u.Location
	}
}
