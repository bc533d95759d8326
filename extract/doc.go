// Package extract turns free-text conversation into a structured criteria
// record by delegating to the generative model with a strict JSON-only
// instruction and a closed cuisine vocabulary.
//
// Extraction is best effort by contract: a transport failure or unparseable
// model output yields an empty criteria record, never an error, so a flaky
// extraction can never block the conversation.
package extract
