package match

import (
	"strings"

	"github.com/restyhq/resty/core"
)

// Options tune the matcher bounds. The defaults mirror the candidate budget
// the generation prompt is sized for.
type Options struct {
	// MaxCandidates caps the returned list (K).
	MaxCandidates int
	// MinCuisineMatches is the sufficiency threshold at which the cuisine
	// stage stops trying looser sub-stages.
	MinCuisineMatches int
	// FallbackSample is how many unfiltered records to return when every
	// stage came up empty.
	FallbackSample int
}

// Match filters and ranks the restaurant table against the accumulated
// criteria and projects the survivors to their summary field set.
//
// Stages, in order:
//  1. No area/cuisine criteria: first MaxCandidates records, unfiltered.
//  2. Area: exact match on area or neighborhood, falling back to substring
//     containment when no exact match exists.
//  3. Cuisine: exact, compound tag, substring and word-overlap sub-stages,
//     accumulating deduplicated matches until MinCuisineMatches is reached.
//  4. If the working set emptied out, word-level matching of the area and
//     cuisine tokens over the full unfiltered table.
//  5. Truncation to MaxCandidates, then a final fallback to the first
//     FallbackSample unfiltered records so the caller always has material.
func Match(records []core.Restaurant, criteria core.Criteria, optFns ...func(o *Options)) []core.RestaurantSummary {
	opts := Options{
		MaxCandidates:     5,
		MinCuisineMatches: 3,
		FallbackSample:    3,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if len(records) == 0 {
		return []core.RestaurantSummary{}
	}

	area := strings.ToLower(strings.TrimSpace(criteria.Area))
	cuisine := strings.ToLower(strings.TrimSpace(criteria.Cuisine))

	// Nothing the matcher recognizes: hand back a sample in table order.
	if area == "" && cuisine == "" {
		return summarize(head(records, opts.MaxCandidates))
	}

	working := records
	if area != "" {
		working = filterByArea(working, area)
	}
	if cuisine != "" && len(working) > 0 {
		working = filterByCuisine(working, cuisine, opts.MinCuisineMatches)
	}

	// The narrowed set emptied out even though criteria were supplied; retry
	// with token-level matching over the full table before giving up.
	if len(working) == 0 {
		working = filterByTokens(records, area, cuisine)
	}

	if len(working) > opts.MaxCandidates {
		working = working[:opts.MaxCandidates]
	}
	if len(working) == 0 {
		working = head(records, opts.FallbackSample)
	}
	return summarize(working)
}

// filterByArea returns the exact-match set when non-empty, otherwise the
// substring-match set. Both compare case-insensitively against area and
// neighborhood; either may be empty.
func filterByArea(records []core.Restaurant, area string) []core.Restaurant {
	var exact []core.Restaurant
	for _, r := range records {
		if strings.EqualFold(r.Area, area) || strings.EqualFold(r.Neighborhood, area) {
			exact = append(exact, r)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	var partial []core.Restaurant
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Area), area) ||
			strings.Contains(strings.ToLower(r.Neighborhood), area) {
			partial = append(partial, r)
		}
	}
	return partial
}

// filterByCuisine accumulates matches across four increasingly permissive
// sub-stages, skipping records already matched, and stops once enough
// candidates have been collected. Append order preserves the sub-stage
// ranking: exact before compound before substring before word overlap.
func filterByCuisine(records []core.Restaurant, cuisine string, enough int) []core.Restaurant {
	var matched []core.Restaurant
	seen := make(map[string]bool, len(records))

	collect := func(pred func(core.Restaurant) bool) {
		for _, r := range records {
			if seen[r.ID] || !pred(r) {
				continue
			}
			seen[r.ID] = true
			matched = append(matched, r)
		}
	}

	collect(func(r core.Restaurant) bool { return cuisineExact(r, cuisine) })
	if len(matched) < enough {
		collect(func(r core.Restaurant) bool { return cuisineCompound(r, cuisine) })
	}
	if len(matched) < enough {
		collect(func(r core.Restaurant) bool {
			return strings.Contains(strings.ToLower(r.Types), cuisine)
		})
	}
	if len(matched) < enough {
		collect(func(r core.Restaurant) bool { return cuisineWordOverlap(r, cuisine) })
	}
	return matched
}

// cuisineExact matches when the primary type equals the cuisine or the
// cuisine equals one trimmed entry of the comma-separated types list.
func cuisineExact(r core.Restaurant, cuisine string) bool {
	if strings.EqualFold(r.PrimaryType, cuisine) {
		return true
	}
	for _, t := range strings.Split(strings.ToLower(r.Types), ",") {
		if strings.TrimSpace(t) == cuisine {
			return true
		}
	}
	return false
}

// cuisineCompound matches compound category tags such as italian_restaurant:
// a types entry that starts with the cuisine token or embeds "<cuisine>_".
func cuisineCompound(r core.Restaurant, cuisine string) bool {
	for _, t := range strings.Split(strings.ToLower(r.Types), ",") {
		trimmed := strings.TrimSpace(t)
		if strings.HasPrefix(trimmed, cuisine) || strings.Contains(trimmed, cuisine+"_") {
			return true
		}
	}
	return false
}

// cuisineWordOverlap matches multi-word cuisine phrases when every word of
// the phrase (all longer than two characters) appears somewhere in the
// concatenated primary type and types text. Single-word cuisines never
// match here; the earlier sub-stages already cover them.
func cuisineWordOverlap(r core.Restaurant, cuisine string) bool {
	words := strings.Fields(cuisine)
	if len(words) < 2 {
		return false
	}
	text := strings.ToLower(r.PrimaryType + " " + r.Types)
	for _, w := range words {
		if len(w) <= 2 || !strings.Contains(text, w) {
			return false
		}
	}
	return true
}

// filterByTokens is the insufficient-evidence fallback: any area token in
// the geographic fields, or any cuisine token in the category fields, keeps
// the record. Tokens of one or two characters are ignored.
func filterByTokens(records []core.Restaurant, area, cuisine string) []core.Restaurant {
	areaTokens := longTokens(area)
	cuisineTokens := longTokens(cuisine)
	if len(areaTokens) == 0 && len(cuisineTokens) == 0 {
		return nil
	}

	var out []core.Restaurant
	for _, r := range records {
		geo := strings.ToLower(r.Area + " " + r.Neighborhood)
		cat := strings.ToLower(r.PrimaryType + " " + r.Types)
		if containsAny(geo, areaTokens) || containsAny(cat, cuisineTokens) {
			out = append(out, r)
		}
	}
	return out
}

func longTokens(s string) []string {
	var tokens []string
	for _, t := range strings.Fields(s) {
		if len(t) > 2 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func containsAny(text string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func head(records []core.Restaurant, n int) []core.Restaurant {
	if len(records) <= n {
		return records
	}
	return records[:n]
}

func summarize(records []core.Restaurant) []core.RestaurantSummary {
	out := make([]core.RestaurantSummary, len(records))
	for i, r := range records {
		out[i] = r.Summarize()
	}
	return out
}
