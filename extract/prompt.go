package extract

import "strings"

// Cuisines is the closed vocabulary the extractor is instructed to map any
// cuisine mention onto. Broad categories keep the matcher's exact sub-stage
// productive; the looser sub-stages absorb whatever granularity the
// restaurant table uses.
var Cuisines = []string{
	"Italian",
	"French",
	"Spanish",
	"Greek",
	"Turkish",
	"Lebanese",
	"Indian",
	"Chinese",
	"Japanese",
	"Thai",
	"Vietnamese",
	"Korean",
	"Mexican",
	"American",
	"British",
	"Caribbean",
	"African",
	"Seafood",
	"Vegetarian",
	"Steakhouse",
}

// instructions is the extraction system prompt. It demands a bare JSON
// object so that parsing can stay dumb; the embedded-object fallback in
// parseCriteria handles models that wrap the object in prose anyway.
func instructions() string {
	var sb strings.Builder
	sb.WriteString(`You extract restaurant search criteria from a conversation between a user and a dining concierge.

Respond with ONLY a single JSON object and nothing else, in exactly this shape:
{"area": "...", "cuisine": "...", "priceLevel": "...", "timeOfDay": "...", "dayOfWeek": "...", "partySize": 0, "needsReservation": false}

Rules:
- Leave out every field the user has not stated; never guess.
- "area" is a plain neighbourhood or district name with no qualifiers: "Soho", not "somewhere around Soho".
- "cuisine" must be one of: `)
	sb.WriteString(strings.Join(Cuisines, ", "))
	sb.WriteString(`.
- "partySize" is a number, not a string.
- Read the whole conversation: the latest message may only add to criteria mentioned earlier.`)
	return sb.String()
}
