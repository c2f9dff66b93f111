package repo

import (
	"context"
	"log/slog"
	"sync"

	"usermanager/src/core/domain"
	"usermanager/src/core/ports"
	"usermanager/src/infra/logger"
)

var _ ports.UserRepository = (*InMemoryRepository)(nil)

// InMemoryRepository implements UserRepository with a map plus a key list that
// remembers insertion order. Overwriting a slot keeps its position; deleting
// and re-creating moves it to the end.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[int64]domain.User
	order   []int64
	log     *slog.Logger
}

// NewInMemoryRepository constructs an empty repository.
func NewInMemoryRepository(log *slog.Logger) *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[int64]domain.User),
		log:     log,
	}
}

// Health always succeeds for the in-memory store.
func (r *InMemoryRepository) Health(_ context.Context) error {
	return nil
}

func (r *InMemoryRepository) Save(_ context.Context, id, data domain.Value) (*domain.User, error) {
	key, user, err := checkSave(id, data)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[key]; !exists {
		r.order = append(r.order, key)
	}
	r.records[key] = user
	out := user.Clone()
	return &out, nil
}

func (r *InMemoryRepository) Find(_ context.Context, id domain.Value) (*domain.User, error) {
	key, ok := domain.ParseID(id)
	if !ok {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.records[key]
	if !ok {
		return nil, nil
	}
	out := u.Clone()
	return &out, nil
}

func (r *InMemoryRepository) FindAll(_ context.Context, ids domain.Value) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch ids.Kind() {
	case domain.KindUndefined:
		users := make([]domain.User, 0, len(r.order))
		for _, key := range r.order {
			users = append(users, r.records[key].Clone())
		}
		return users, nil
	case domain.KindArray:
		users := make([]domain.User, 0)
		for _, key := range idKeys(ids) {
			if u, ok := r.records[key]; ok {
				users = append(users, u.Clone())
			}
		}
		return users, nil
	default:
		return []domain.User{}, nil
	}
}

func (r *InMemoryRepository) Update(_ context.Context, id, data domain.Value) (*domain.User, error) {
	key, ok := domain.ParseID(id)
	if !ok {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[key]; !exists {
		return nil, nil
	}
	if !data.IsObject() {
		return nil, domain.NewTypeMismatchError("data must be an object, got " + data.Kind().String())
	}
	user := domain.UserFromValue(data)
	r.records[key] = user
	out := user.Clone()
	return &out, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id domain.Value) (*domain.User, error) {
	key, ok := domain.ParseID(id)
	if !ok {
		return nil, domain.NewInvalidIdentifierError(id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	u, exists := r.records[key]
	if !exists {
		return nil, nil
	}
	delete(r.records, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	logger.Debug(r.log, "record removed", "id", key)
	out := u.Clone()
	return &out, nil
}
