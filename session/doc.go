// Package session provides SessionStore implementations: a process-local
// in-memory store for tests and single-instance deployments, and (in the
// redis sub-package) a Redis-backed store for deployments where sessions
// must survive restarts or be shared across instances.
package session
