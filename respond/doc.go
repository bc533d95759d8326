// Package respond builds the concierge prompt that embeds the accumulated
// criteria and the matched candidate set, and asks the generative model for
// the user-facing reply. The model's free-text output is returned verbatim;
// this package never parses or validates it.
package respond
