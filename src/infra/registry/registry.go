// Package registry holds the process-wide user service and repository.
//
// The service resolves its repository through Registry.Repository, so the
// two are wired once at startup and looked up on every call afterwards.
package registry

import (
	"errors"
	"sync"

	"usermanager/src/core/ports"
)

// ErrAlreadyInitialized is returned when Init is called a second time.
var ErrAlreadyInitialized = errors.New("registry: already initialized")

// ErrIncomplete is returned when Init is given a nil service or repository.
var ErrIncomplete = errors.New("registry: service and repository are both required")

// Registry holds exactly one user service and one repository.
type Registry struct {
	mu      sync.RWMutex
	ready   bool
	service ports.UserService
	repo    ports.UserRepository
}

var process = &Registry{}

// Default returns the registry shared by the whole process.
func Default() *Registry {
	return process
}

// New creates an empty registry, for callers that must not touch the
// process-wide one.
func New() *Registry {
	return &Registry{}
}

// Init stores the service and repository. It succeeds only once.
func (r *Registry) Init(service ports.UserService, repo ports.UserRepository) error {
	if service == nil || repo == nil {
		return ErrIncomplete
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ready {
		return ErrAlreadyInitialized
	}
	r.service = service
	r.repo = repo
	r.ready = true
	return nil
}

// Initialized reports whether Init has succeeded.
func (r *Registry) Initialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready
}

// UserService returns the registered service, or nil before Init.
func (r *Registry) UserService() ports.UserService {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.service
}

// Repository returns the registered repository, or nil before Init.
// Its method value satisfies ports.RepositoryResolver.
func (r *Registry) Repository() ports.UserRepository {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.repo
}

var _ ports.RepositoryResolver = process.Repository
