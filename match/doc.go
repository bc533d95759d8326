// Package match implements the staged fallback matcher that turns an
// accumulated criteria record and the loaded restaurant table into a
// bounded, ordered candidate list for the response-generation prompt.
//
// The source data uses free-text, overlapping vocabularies (an "Italian"
// place may carry primary_type "italian_restaurant" and types
// "italian_restaurant,pizza_restaurant,restaurant") while the criteria come
// from a generative extractor that phrases things its own way. A single
// strict filter would return zero results too often and a pure substring
// filter too many false positives, so matching loosens in stages: exact
// equality first, then compound category tags, then raw substrings, then
// word overlap, widening only while the stricter stages have not produced
// enough candidates. Stage order is the implicit relevance ranking; no
// numeric score is computed.
//
// Match is a pure function of (records, criteria); it never fails and never
// returns an empty list for a non-empty table.
package match
