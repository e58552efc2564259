// Package fixtures provides in-memory implementations of the engine's collaborators for tests:
// responses, an entity repository, field metadata, and a seeded random response generator.
package fixtures
