package core

// Restaurant is one denormalized row of the source spreadsheet. Every field
// is a string exactly as the sheet delivers it; absent columns are blank.
// ID is unique within one load and rows are immutable for the lifetime of a
// session.
type Restaurant struct {
	ID                        string `json:"id"`
	Name                      string `json:"name"`
	StreetAddress             string `json:"street_address,omitempty"`
	City                      string `json:"city,omitempty"`
	Country                   string `json:"country,omitempty"`
	Neighborhood              string `json:"neighborhood,omitempty"`
	Postcode                  string `json:"postcode,omitempty"`
	Area                      string `json:"area,omitempty"`
	Region                    string `json:"region,omitempty"`
	ParliamentaryConstituency string `json:"parliamentary_constituency,omitempty"`
	PrimaryType               string `json:"primary_type,omitempty"`
	Types                     string `json:"types,omitempty"`
	Phone                     string `json:"phone,omitempty"`
	Website                   string `json:"website,omitempty"`
	Hours                     string `json:"hours,omitempty"`
	Rating                    string `json:"rating,omitempty"`
	TotalRatings              string `json:"total_ratings,omitempty"`
	PriceLevel                string `json:"price_level,omitempty"`
	Description               string `json:"description,omitempty"`
	PlusCode                  string `json:"plus_code,omitempty"`
	DineIn                    string `json:"dine_in,omitempty"`
	Delivery                  string `json:"delivery,omitempty"`
	Takeout                   string `json:"takeout,omitempty"`
	Reservable                string `json:"reservable,omitempty"`
	BusinessStatus            string `json:"business_status,omitempty"`
	GoogleMapsURL             string `json:"google_maps_url,omitempty"`
	InputURL                  string `json:"input_url,omitempty"`
}

// RestaurantSummary is the reduced projection of a Restaurant handed to the
// response-generation prompt. Keeping only the fields the model needs keeps
// the prompt token count bounded regardless of how wide the sheet grows.
type RestaurantSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Area         string `json:"area,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	PrimaryType  string `json:"primary_type,omitempty"`
	Types        string `json:"types,omitempty"`
	PriceLevel   string `json:"price_level,omitempty"`
	Rating       string `json:"rating,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Summarize projects the record to its summary field set.
func (r Restaurant) Summarize() RestaurantSummary {
	return RestaurantSummary{
		ID:           r.ID,
		Name:         r.Name,
		Area:         r.Area,
		Neighborhood: r.Neighborhood,
		PrimaryType:  r.PrimaryType,
		Types:        r.Types,
		PriceLevel:   r.PriceLevel,
		Rating:       r.Rating,
		Description:  r.Description,
	}
}
