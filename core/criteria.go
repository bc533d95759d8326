package core

// Criteria is the accumulated dining intent extracted from a conversation.
// Every field is optional: the zero value means "unknown", never "explicitly
// excluded". PartySize uses 0 and NeedsReservation a nil pointer for absence
// so that a merge can distinguish "not mentioned" from a real value.
type Criteria struct {
	Area             string `json:"area,omitempty"`
	Cuisine          string `json:"cuisine,omitempty"`
	PriceLevel       string `json:"priceLevel,omitempty"`
	TimeOfDay        string `json:"timeOfDay,omitempty"`
	DayOfWeek        string `json:"dayOfWeek,omitempty"`
	PartySize        int    `json:"partySize,omitempty"`
	NeedsReservation *bool  `json:"needsReservation,omitempty"`
}

// IsEmpty reports whether no field has been set.
func (c Criteria) IsEmpty() bool {
	return c.Area == "" &&
		c.Cuisine == "" &&
		c.PriceLevel == "" &&
		c.TimeOfDay == "" &&
		c.DayOfWeek == "" &&
		c.PartySize == 0 &&
		c.NeedsReservation == nil
}

// Merge returns a copy of c with every non-empty field of delta overwriting
// the corresponding field. Empty delta fields leave the prior value intact,
// so criteria mentioned in earlier turns survive extractions that do not
// repeat them.
func (c Criteria) Merge(delta Criteria) Criteria {
	out := c
	if delta.Area != "" {
		out.Area = delta.Area
	}
	if delta.Cuisine != "" {
		out.Cuisine = delta.Cuisine
	}
	if delta.PriceLevel != "" {
		out.PriceLevel = delta.PriceLevel
	}
	if delta.TimeOfDay != "" {
		out.TimeOfDay = delta.TimeOfDay
	}
	if delta.DayOfWeek != "" {
		out.DayOfWeek = delta.DayOfWeek
	}
	if delta.PartySize != 0 {
		out.PartySize = delta.PartySize
	}
	if delta.NeedsReservation != nil {
		v := *delta.NeedsReservation
		out.NeedsReservation = &v
	}
	return out
}
