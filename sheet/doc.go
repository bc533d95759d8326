// Package sheet loads the restaurant table the matcher works against. The
// production source is a Google Sheets spreadsheet read through the public
// values endpoint; Static serves a fixed table for tests and examples, and
// Cache decorates any source with a Redis-backed table cache so one sheet
// fetch can serve many sessions.
//
// A source either returns the full table or an error: the concierge cannot
// match against no data and must not fabricate a table, so partial results
// are never returned.
package sheet
