package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usermanager/src/core/domain"
	"usermanager/src/core/ports"
	"usermanager/src/infra/logger"
)

func TestValidatingRepository_Contract(t *testing.T) {
	runContractTests(t, func(t *testing.T) ports.UserRepository {
		return NewValidatingRepository(NewInMemoryRepository(logger.Discard()), nil)
	})
}

func TestValidatingRepository_SaveTypeChecks(t *testing.T) {
	ctx := context.Background()
	inner := NewInMemoryRepository(logger.Discard())
	r := NewValidatingRepository(inner, domain.HasValidName)

	tests := []struct {
		label string
		id    domain.Value
		data  domain.Value
	}{
		{"string id and number data", domain.String("1"), domain.Number(1)},
		{"string data", domain.ID(1), domain.String("not-an-object")},
		{"string id", domain.String("2"), domain.ValueOf(domain.User{Name: "Petrov Igor"})},
		{"undefined id", domain.Undefined(), domain.ValueOf(domain.User{Name: "Petrov Igor"})},
		{"null data", domain.ID(1), domain.Null()},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			_, err := r.Save(ctx, tt.id, tt.data)
			assert.True(t, domain.IsTypeMismatch(err), "got %v", err)
		})
	}

	all, err := inner.FindAll(ctx, domain.Undefined())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestValidatingRepository_PredicateGuardsWrites(t *testing.T) {
	ctx := context.Background()
	inner := NewInMemoryRepository(logger.Discard())
	r := NewValidatingRepository(inner, domain.HasValidName)

	_, err := r.Save(ctx, domain.ID(8), domain.ValueOf(domain.User{Name: "nesterov"}))
	assert.True(t, domain.IsValidationError(err))

	_, err = r.Save(ctx, domain.ID(8), domain.ValueOf(domain.User{Name: "Nesterov Igor"}))
	require.NoError(t, err)

	_, err = r.Update(ctx, domain.ID(8), domain.ValueOf(domain.User{Name: "nesterov"}))
	assert.True(t, domain.IsValidationError(err))

	got, err := inner.Find(ctx, domain.ID(8))
	require.NoError(t, err)
	assert.Equal(t, &domain.User{Name: "Nesterov Igor"}, got)
}

func TestValidatingRepository_PassThrough(t *testing.T) {
	ctx := context.Background()

	newPair := func(t *testing.T) (ports.UserRepository, ports.UserRepository) {
		t.Helper()
		bare := NewInMemoryRepository(logger.Discard())
		inner := NewInMemoryRepository(logger.Discard())
		for _, r := range []ports.UserRepository{bare, inner} {
			_, err := r.Save(ctx, domain.ID(8), domain.ValueOf(domain.User{Name: "Nesterov Igor"}))
			require.NoError(t, err)
			_, err = r.Save(ctx, domain.ID(9), domain.ValueOf(domain.User{Name: "Lavrushko Igor"}))
			require.NoError(t, err)
		}
		return bare, NewValidatingRepository(inner, domain.HasValidName)
	}

	t.Run("find", func(t *testing.T) {
		bare, decorated := newPair(t)
		for _, id := range []domain.Value{domain.ID(8), domain.ID(1), domain.String("9"), domain.Null()} {
			want, wantErr := bare.Find(ctx, id)
			got, gotErr := decorated.Find(ctx, id)
			assert.Equal(t, want, got)
			assert.Equal(t, wantErr, gotErr)
		}
	})

	t.Run("find all", func(t *testing.T) {
		bare, decorated := newPair(t)
		for _, ids := range []domain.Value{domain.Undefined(), domain.IDs(8, 9), domain.IDs(9, 4)} {
			want, _ := bare.FindAll(ctx, ids)
			got, _ := decorated.FindAll(ctx, ids)
			assert.Equal(t, want, got)
		}
	})

	t.Run("update", func(t *testing.T) {
		bare, decorated := newPair(t)
		data := domain.ValueOf(domain.User{Name: "Nesterov Oleg"})
		for _, id := range []domain.Value{domain.ID(8), domain.ID(7)} {
			want, wantErr := bare.Update(ctx, id, data)
			got, gotErr := decorated.Update(ctx, id, data)
			assert.Equal(t, want, got)
			assert.Equal(t, wantErr, gotErr)
		}
	})

	t.Run("delete", func(t *testing.T) {
		bare, decorated := newPair(t)
		for _, id := range []domain.Value{domain.ID(9), domain.ID(9), domain.String("x")} {
			want, wantErr := bare.Delete(ctx, id)
			got, gotErr := decorated.Delete(ctx, id)
			assert.Equal(t, want, got)
			assert.Equal(t, wantErr, gotErr)
		}
	})
}
