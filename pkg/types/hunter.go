package types

// Hunter is a customer of the inn.
type Hunter struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Race     string `json:"race"`
	Location string `json:"location"`
}

// Key returns the hunter's id.
func (h Hunter) Key() int { return h.ID }

// Validate checks the fields a caller supplies when adding a hunter.
func (h Hunter) Validate() error {
	if h.Name == "" {
		return ErrInvalidName
	}
	return nil
}

// HunterUpdate names the fields of a Hunter that may change.
type HunterUpdate struct {
	Name     *string
	Race     *string
	Location *string
}

// Validate rejects an empty name.
func (u HunterUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return ErrInvalidName
	}
	return nil
}

// Apply assigns every non-nil field of u to h.
func (u HunterUpdate) Apply(h *Hunter) {
	if u.Name != nil {
		h.Name = *u.Name
	}
	if u.Race != nil {
		h.Race = *u.Race
	}
	if u.Location != nil {
		h.Location = *u.Location
	}
}
