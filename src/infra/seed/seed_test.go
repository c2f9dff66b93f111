package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usermanager/src/core/domain"
	"usermanager/src/core/usecase"
	"usermanager/src/infra/repo"
)

const fixture = `
users:
  - id: 1
    name: Dzmitry Shaliaheika
  - id: 2
    name: Petrov Igor
    deleted: true
  - id: 3
    name: Buslov Pavel
`

func TestParse(t *testing.T) {
	entries, err := Parse([]byte(fixture))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, "Dzmitry Shaliaheika", entries[0].Name)
	assert.False(t, entries[0].Deleted)
	assert.True(t, entries[1].Deleted)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("users: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse seed file")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	entries, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	store := repo.NewInMemoryRepository(nil)
	svc := usecase.NewUserService(store, nil)

	entries, err := Parse([]byte(fixture))
	require.NoError(t, err)
	require.NoError(t, Apply(ctx, svc, entries))

	all, err := store.FindAll(ctx, domain.Undefined())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Dzmitry Shaliaheika", all[0].Name)
	assert.True(t, all[1].IsDeleted())
	assert.Equal(t, "Buslov Pavel", all[2].Name)

	_, err = svc.Find(ctx, domain.ID(2))
	assert.True(t, domain.IsNotFound(err))
}

func TestApply_StopsAtFirstFailure(t *testing.T) {
	tests := []struct {
		label   string
		doc     string
		is      func(error) bool
		message string
		stored  int
	}{
		{
			label:   "bad name",
			doc:     "users:\n  - {id: 1, name: Petrov Igor}\n  - {id: 2, name: petrov}\n  - {id: 3, name: Buslov Pavel}\n",
			is:      domain.IsValidationError,
			message: "seed entry 1",
			stored:  1,
		},
		{
			label:   "missing id",
			doc:     "users:\n  - {name: Petrov Igor}\n",
			is:      domain.IsIdentifierUndefined,
			message: "seed entry 0",
		},
		{
			label:   "string id",
			doc:     "users:\n  - {id: \"7\", name: Petrov Igor}\n",
			is:      domain.IsTypeMismatch,
			message: "seed entry 0",
		},
		{
			label:   "numeric name",
			doc:     "users:\n  - {id: 7, name: 42}\n",
			is:      domain.IsInvalidField,
			message: "seed entry 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			ctx := context.Background()
			store := repo.NewInMemoryRepository(nil)
			svc := usecase.NewUserService(store, nil)

			entries, err := Parse([]byte(tt.doc))
			require.NoError(t, err)

			err = Apply(ctx, svc, entries)
			require.Error(t, err)
			assert.True(t, tt.is(err), "unexpected error: %v", err)
			assert.Contains(t, err.Error(), tt.message)

			all, err := store.FindAll(ctx, domain.Undefined())
			require.NoError(t, err)
			assert.Len(t, all, tt.stored)
		})
	}
}
