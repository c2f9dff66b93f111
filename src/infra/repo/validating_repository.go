package repo

import (
	"context"

	"usermanager/src/core/domain"
	"usermanager/src/core/ports"
)

var _ ports.UserRepository = (*ValidatingRepository)(nil)

// ValidatingRepository decorates a UserRepository with payload validation.
// Save checks argument shapes, then both Save and Update must pass the
// predicate before anything reaches the wrapped repository. Reads and
// deletes go straight through.
type ValidatingRepository struct {
	next     ports.UserRepository
	validate ports.Validator
}

// NewValidatingRepository wraps next. A nil validate accepts every payload.
func NewValidatingRepository(next ports.UserRepository, validate ports.Validator) *ValidatingRepository {
	if validate == nil {
		validate = func(domain.Value) bool { return true }
	}
	return &ValidatingRepository{next: next, validate: validate}
}

func (r *ValidatingRepository) Health(ctx context.Context) error {
	return r.next.Health(ctx)
}

func (r *ValidatingRepository) Save(ctx context.Context, id, data domain.Value) (*domain.User, error) {
	if _, _, err := checkSave(id, data); err != nil {
		return nil, err
	}
	if !r.validate(data) {
		return nil, domain.NewValidationError("data", "rejected by validator")
	}
	return r.next.Save(ctx, id, data)
}

func (r *ValidatingRepository) Find(ctx context.Context, id domain.Value) (*domain.User, error) {
	return r.next.Find(ctx, id)
}

func (r *ValidatingRepository) FindAll(ctx context.Context, ids domain.Value) ([]domain.User, error) {
	return r.next.FindAll(ctx, ids)
}

func (r *ValidatingRepository) Update(ctx context.Context, id, data domain.Value) (*domain.User, error) {
	if !r.validate(data) {
		return nil, domain.NewValidationError("data", "rejected by validator")
	}
	return r.next.Update(ctx, id, data)
}

func (r *ValidatingRepository) Delete(ctx context.Context, id domain.Value) (*domain.User, error) {
	return r.next.Delete(ctx, id)
}
