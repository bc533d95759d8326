package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestaurant_Summarize(t *testing.T) {
	r := Restaurant{
		ID:            "42",
		Name:          "Il Forno",
		StreetAddress: "1 Dean Street",
		City:          "London",
		Neighborhood:  "Soho",
		Area:          "West End",
		PrimaryType:   "italian_restaurant",
		Types:         "italian_restaurant,pizza_restaurant",
		Phone:         "+44 20 0000 0000",
		Hours:         "Mon-Sun 12:00-23:00",
		Rating:        "4.6",
		PriceLevel:    "2",
		Description:   "Wood-fired pizza in the heart of Soho.",
		Reservable:    "true",
	}

	s := r.Summarize()

	// Projected fields survive unchanged.
	assert.Equal(t, r.ID, s.ID)
	assert.Equal(t, r.Name, s.Name)
	assert.Equal(t, r.Area, s.Area)
	assert.Equal(t, r.Neighborhood, s.Neighborhood)
	assert.Equal(t, r.PrimaryType, s.PrimaryType)
	assert.Equal(t, r.Types, s.Types)
	assert.Equal(t, r.PriceLevel, s.PriceLevel)
	assert.Equal(t, r.Rating, s.Rating)
	assert.Equal(t, r.Description, s.Description)
}
