// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"usermanager/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// UserRepository stores user records keyed by caller-supplied identifiers.
// Implementations never hand out references to stored state: every returned
// record is a copy. Decorators implement the same interface so callers cannot
// tell a wrapped repository from a bare one.
type UserRepository interface {
	Repository

	// Save writes or overwrites the record at id.
	// Fails with ErrTypeMismatch unless id is a numeric identifier and data is an object.
	Save(ctx context.Context, id, data domain.Value) (*domain.User, error)

	// Find returns the record at id, or nil if there is none.
	Find(ctx context.Context, id domain.Value) (*domain.User, error)

	// FindAll returns every record in insertion order when ids is undefined,
	// or the records for the listed ids in the given order, skipping misses.
	FindAll(ctx context.Context, ids domain.Value) ([]domain.User, error)

	// Update overwrites the record at id only if it exists; otherwise it
	// returns nil without writing.
	Update(ctx context.Context, id, data domain.Value) (*domain.User, error)

	// Delete removes the record at id and returns it, or nil if there was none.
	// Fails with ErrInvalidIdentifier when id is not numeric.
	Delete(ctx context.Context, id domain.Value) (*domain.User, error)
}

// Validator is a predicate over a payload, applied by validating decorators.
type Validator func(data domain.Value) bool

// RepositoryResolver yields the repository to use for the current call.
// It lets a service resolve a shared instance lazily instead of holding one.
type RepositoryResolver func() UserRepository
