// Package model defines the provider-agnostic abstraction for the hosted
// text-generation collaborator the concierge depends on.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Let the same interface serve both pipeline calls: strict-JSON criteria
//     extraction and free-text response generation
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI, Anthropic) implement the Model interface from this
// package so the extraction and matching logic remains testable without a
// live model.
package model
