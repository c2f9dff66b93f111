package ports

import (
	"context"

	"usermanager/src/core/domain"
)

// UserService is the domain-facing API over user records.
type UserService interface {
	Create(ctx context.Context, id, user domain.Value) (*domain.User, error)
	Get(ctx context.Context, id domain.Value) (*domain.User, error)
	Find(ctx context.Context, id domain.Value) (*domain.User, error)
	FindAlls(ctx context.Context, ids domain.Value) ([]domain.User, error)
	Change(ctx context.Context, id, user domain.Value) (*domain.User, error)
	Delete(ctx context.Context, id domain.Value, force bool) (*domain.User, error)
}
