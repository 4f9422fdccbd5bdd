// Package domain holds the core types for stack-based history editing:
// commit identities, drop targets, drag payloads, ownership claims, and
// the mutation requests handed to the version-control backend.
package domain
