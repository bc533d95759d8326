// Package core defines the shared domain types of the Resty concierge:
// restaurant records and their reduced projection, the accumulated search
// criteria, conversation messages and the session container that ties a
// conversation to its loaded restaurant table.
//
// Types here carry no behavior beyond construction, merging and projection;
// the matching and extraction logic lives in the match and extract packages
// so that core stays dependency free.
package core
