package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usermanager/src/core/domain"
	"usermanager/src/core/ports"
)

// runContractTests exercises behaviour every UserRepository must share.
// newRepo must return an empty repository.
func runContractTests(t *testing.T, newRepo func(t *testing.T) ports.UserRepository) {
	ctx := context.Background()

	dzmitry := domain.User{Name: "Dzmitry Shaliaheika"}
	petrov := domain.User{Name: "Petrov Igor"}
	buslov := domain.User{Name: "Buslov Pavel"}

	seed := func(t *testing.T, r ports.UserRepository) {
		t.Helper()
		for i, u := range []domain.User{dzmitry, petrov, buslov} {
			_, err := r.Save(ctx, domain.ID(int64(i+1)), domain.ValueOf(u))
			require.NoError(t, err)
		}
	}

	t.Run("save then find", func(t *testing.T) {
		r := newRepo(t)

		saved, err := r.Save(ctx, domain.ID(1), domain.ValueOf(dzmitry))
		require.NoError(t, err)
		assert.Equal(t, &dzmitry, saved)

		got, err := r.Find(ctx, domain.ID(1))
		require.NoError(t, err)
		assert.Equal(t, &dzmitry, got)
	})

	t.Run("find miss", func(t *testing.T) {
		r := newRepo(t)

		got, err := r.Find(ctx, domain.ID(2))
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = r.Find(ctx, domain.String("not an id"))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("find by digit string", func(t *testing.T) {
		r := newRepo(t)
		seed(t, r)

		got, err := r.Find(ctx, domain.String("2"))
		require.NoError(t, err)
		assert.Equal(t, &petrov, got)
	})

	t.Run("save rejects malformed arguments", func(t *testing.T) {
		r := newRepo(t)

		_, err := r.Save(ctx, domain.String("1"), domain.Number(1))
		assert.True(t, domain.IsTypeMismatch(err))

		_, err = r.Save(ctx, domain.ID(1), domain.String("not-an-object"))
		assert.True(t, domain.IsTypeMismatch(err))

		_, err = r.Save(ctx, domain.String("1"), domain.ValueOf(dzmitry))
		assert.True(t, domain.IsTypeMismatch(err))

		all, err := r.FindAll(ctx, domain.Undefined())
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		r := newRepo(t)
		seed(t, r)

		got, err := r.Find(ctx, domain.ID(1))
		require.NoError(t, err)
		got.Name = "Mutated Name"
		now := time.Now()
		got.DeleteDate = &now

		again, err := r.Find(ctx, domain.ID(1))
		require.NoError(t, err)
		assert.Equal(t, &dzmitry, again)

		all, err := r.FindAll(ctx, domain.Undefined())
		require.NoError(t, err)
		all[0].Name = "Mutated Name"

		again, err = r.Find(ctx, domain.ID(1))
		require.NoError(t, err)
		assert.Equal(t, &dzmitry, again)
	})

	t.Run("find all in insertion order", func(t *testing.T) {
		r := newRepo(t)
		seed(t, r)

		all, err := r.FindAll(ctx, domain.Undefined())
		require.NoError(t, err)
		assert.Equal(t, []domain.User{dzmitry, petrov, buslov}, all)
	})

	t.Run("find all with ids filters and keeps order", func(t *testing.T) {
		r := newRepo(t)
		seed(t, r)

		got, err := r.FindAll(ctx, domain.IDs(1, 3))
		require.NoError(t, err)
		assert.Equal(t, []domain.User{dzmitry, buslov}, got)

		got, err = r.FindAll(ctx, domain.IDs(3, 1))
		require.NoError(t, err)
		assert.Equal(t, []domain.User{buslov, dzmitry}, got)

		got, err = r.FindAll(ctx, domain.IDs(1, 4))
		require.NoError(t, err)
		assert.Equal(t, []domain.User{dzmitry}, got)
	})

	t.Run("find all with a non-array is empty", func(t *testing.T) {
		r := newRepo(t)
		seed(t, r)

		got, err := r.FindAll(ctx, domain.ID(1))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("overwrite keeps position", func(t *testing.T) {
		r := newRepo(t)
		seed(t, r)

		renamed := domain.User{Name: "Dmitry Shelegeyko"}
		_, err := r.Save(ctx, domain.ID(1), domain.ValueOf(renamed))
		require.NoError(t, err)

		all, err := r.FindAll(ctx, domain.Undefined())
		require.NoError(t, err)
		assert.Equal(t, []domain.User{renamed, petrov, buslov}, all)
	})

	t.Run("update existing", func(t *testing.T) {
		r := newRepo(t)
		seed(t, r)

		renamed := domain.User{Name: "Dmitry Shelegeyko"}
		got, err := r.Update(ctx, domain.ID(1), domain.ValueOf(renamed))
		require.NoError(t, err)
		assert.Equal(t, &renamed, got)

		found, err := r.Find(ctx, domain.ID(1))
		require.NoError(t, err)
		assert.Equal(t, &renamed, found)
	})

	t.Run("update missing is a no-op", func(t *testing.T) {
		r := newRepo(t)

		got, err := r.Update(ctx, domain.ID(5), domain.ValueOf(petrov))
		require.NoError(t, err)
		assert.Nil(t, got)

		found, err := r.Find(ctx, domain.ID(5))
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("update existing with non-object", func(t *testing.T) {
		r := newRepo(t)
		seed(t, r)

		_, err := r.Update(ctx, domain.ID(1), domain.String("Dmitry Shelegeyko"))
		assert.True(t, domain.IsTypeMismatch(err))

		found, err := r.Find(ctx, domain.ID(1))
		require.NoError(t, err)
		assert.Equal(t, &dzmitry, found)
	})

	t.Run("delete returns prior record", func(t *testing.T) {
		r := newRepo(t)
		seed(t, r)

		got, err := r.Delete(ctx, domain.ID(2))
		require.NoError(t, err)
		assert.Equal(t, &petrov, got)

		found, err := r.Find(ctx, domain.ID(2))
		require.NoError(t, err)
		assert.Nil(t, found)

		all, err := r.FindAll(ctx, domain.Undefined())
		require.NoError(t, err)
		assert.Equal(t, []domain.User{dzmitry, buslov}, all)
	})

	t.Run("delete missing", func(t *testing.T) {
		r := newRepo(t)

		got, err := r.Delete(ctx, domain.ID(9))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete rejects non-numeric id", func(t *testing.T) {
		r := newRepo(t)
		seed(t, r)

		_, err := r.Delete(ctx, domain.String("one"))
		assert.True(t, domain.IsInvalidIdentifier(err))

		_, err = r.Delete(ctx, domain.Null())
		assert.True(t, domain.IsInvalidIdentifier(err))

		all, err := r.FindAll(ctx, domain.Undefined())
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("re-created record moves to the end", func(t *testing.T) {
		r := newRepo(t)
		seed(t, r)

		_, err := r.Delete(ctx, domain.ID(1))
		require.NoError(t, err)
		_, err = r.Save(ctx, domain.ID(1), domain.ValueOf(dzmitry))
		require.NoError(t, err)

		all, err := r.FindAll(ctx, domain.Undefined())
		require.NoError(t, err)
		assert.Equal(t, []domain.User{petrov, buslov, dzmitry}, all)
	})

	t.Run("soft-deleted records are stored as is", func(t *testing.T) {
		r := newRepo(t)

		at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		_, err := r.Save(ctx, domain.ID(1), domain.ValueOf(domain.User{Name: dzmitry.Name, DeleteDate: &at}))
		require.NoError(t, err)

		got, err := r.Find(ctx, domain.ID(1))
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.DeleteDate)
		assert.True(t, at.Equal(*got.DeleteDate))
	})

	t.Run("health", func(t *testing.T) {
		r := newRepo(t)
		assert.NoError(t, r.Health(ctx))
	})
}
