package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"usermanager/src/core/domain"
	"usermanager/src/core/ports"
)

var _ ports.UserService = (*UserService)(nil)

// ErrNoRepository is returned when a UserService has no repository to talk to.
var ErrNoRepository = errors.New("user service: no repository configured")

// UserService enforces the business rules for user records and delegates
// storage to a repository. The repository is either held directly (set at
// construction or through SetRepository) or resolved on every call.
type UserService struct {
	mu      sync.RWMutex
	resolve ports.RepositoryResolver
	now     func() time.Time
	log     *slog.Logger
}

// Option configures a UserService.
type Option func(*UserService)

// WithClock overrides the clock used to stamp soft deletes.
func WithClock(now func() time.Time) Option {
	return func(s *UserService) {
		s.now = now
	}
}

// NewUserService creates a service bound to repo. repo may be nil when it
// will be supplied later through SetRepository.
func NewUserService(repo ports.UserRepository, log *slog.Logger, opts ...Option) *UserService {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &UserService{log: log, now: time.Now}
	if repo != nil {
		s.resolve = fixed(repo)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewResolvingUserService creates a service that looks its repository up
// through resolve on every call, e.g. from a process-wide registry.
func NewResolvingUserService(resolve ports.RepositoryResolver, log *slog.Logger, opts ...Option) *UserService {
	s := NewUserService(nil, log, opts...)
	s.resolve = resolve
	return s
}

// SetRepository swaps the repository the service delegates to.
func (s *UserService) SetRepository(repo ports.UserRepository) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolve = fixed(repo)
}

func fixed(repo ports.UserRepository) ports.RepositoryResolver {
	return func() ports.UserRepository { return repo }
}

func (s *UserService) repository() (ports.UserRepository, error) {
	s.mu.RLock()
	resolve := s.resolve
	s.mu.RUnlock()

	if resolve == nil {
		return nil, ErrNoRepository
	}
	repo := resolve()
	if repo == nil {
		return nil, ErrNoRepository
	}
	return repo, nil
}

// Create stores a new user at id after checking the argument shapes and the
// name format.
func (s *UserService) Create(ctx context.Context, id, user domain.Value) (*domain.User, error) {
	if id.IsUndefined() {
		return nil, domain.NewIdentifierUndefinedError()
	}
	if !domain.IsNumericID(id) || !user.IsObject() {
		return nil, domain.NewTypeMismatchError("create expects a numeric id and an object, got " +
			id.Kind().String() + " and " + user.Kind().String())
	}
	name, ok := user.Field(domain.FieldName).Str()
	if !ok {
		return nil, domain.NewInvalidFieldError(domain.FieldName, "must be a string")
	}
	if !domain.ValidName(name) {
		return nil, domain.NewValidationError(domain.FieldName, "must be two capitalized words")
	}

	repo, err := s.repository()
	if err != nil {
		return nil, err
	}
	created, err := repo.Save(ctx, id, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("user created", "id", id.String())
	return created, nil
}

// Get returns the active user at id.
func (s *UserService) Get(ctx context.Context, id domain.Value) (*domain.User, error) {
	return s.Find(ctx, id)
}

// Find returns the active user at id. Missing and soft-deleted users both
// yield a not found error.
func (s *UserService) Find(ctx context.Context, id domain.Value) (*domain.User, error) {
	repo, err := s.repository()
	if err != nil {
		return nil, err
	}
	u, err := repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil || u.IsDeleted() {
		return nil, domain.NewNotFoundError(id)
	}
	return u, nil
}

// FindAlls returns the stored records for ids, soft-deleted ones included.
func (s *UserService) FindAlls(ctx context.Context, ids domain.Value) ([]domain.User, error) {
	switch ids.Kind() {
	case domain.KindNull:
		return nil, domain.NewInvalidArgumentError("ids must not be null")
	case domain.KindArray:
	default:
		return nil, domain.NewTypeMismatchError("ids must be an array, got " + ids.Kind().String())
	}

	repo, err := s.repository()
	if err != nil {
		return nil, err
	}
	return repo.FindAll(ctx, ids)
}

// Change overwrites an existing user. It returns nil without error when
// nothing is stored at id.
func (s *UserService) Change(ctx context.Context, id, user domain.Value) (*domain.User, error) {
	if !domain.HasValidName(user) {
		return nil, domain.NewValidationError(domain.FieldName, "must be two capitalized words")
	}
	if _, ok := domain.ParseID(id); !ok {
		return nil, domain.NewInvalidIdentifierError(id)
	}
	if !id.IsNumber() || !user.IsObject() {
		return nil, domain.NewTypeMismatchError("change expects a numeric id and an object, got " +
			id.Kind().String() + " and " + user.Kind().String())
	}

	repo, err := s.repository()
	if err != nil {
		return nil, err
	}
	changed, err := repo.Update(ctx, id, user)
	if err != nil {
		return nil, err
	}
	if changed != nil {
		s.log.Info("user changed", "id", id.String())
	}
	return changed, nil
}

// Delete removes the user at id. With force the record is removed from the
// repository; otherwise it is stamped with a delete date and kept.
func (s *UserService) Delete(ctx context.Context, id domain.Value, force bool) (*domain.User, error) {
	repo, err := s.repository()
	if err != nil {
		return nil, err
	}

	if force {
		removed, err := repo.Delete(ctx, id)
		if err != nil {
			return nil, err
		}
		if removed == nil {
			return nil, domain.NewNotFoundError(id)
		}
		s.log.Info("user removed", "id", id.String())
		return removed, nil
	}

	found, err := repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.NewNotFoundError(id)
	}
	// Find accepts digit strings, Save only numbers.
	key, _ := domain.ParseID(id)
	at := s.now()
	found.DeleteDate = &at
	deleted, err := repo.Save(ctx, domain.ID(key), found.Value())
	if err != nil {
		return nil, err
	}
	s.log.Info("user soft-deleted", "id", id.String())
	return deleted, nil
}
