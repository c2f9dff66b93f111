package repo

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"usermanager/src/core/domain"
	"usermanager/src/core/ports"
	"usermanager/src/infra/logger"
)

var _ ports.UserRepository = (*LoggingRepository)(nil)

// LoggingRepository decorates a UserRepository with one log line per call.
// Each call is tagged with the operation ID found in the context, or a fresh
// UUID when the caller did not set one.
type LoggingRepository struct {
	next ports.UserRepository
	log  *slog.Logger
}

// NewLoggingRepository wraps next.
func NewLoggingRepository(next ports.UserRepository, log *slog.Logger) *LoggingRepository {
	return &LoggingRepository{next: next, log: logger.WithComponent(log, "repository")}
}

func (r *LoggingRepository) Health(ctx context.Context) error {
	start := time.Now()
	err := r.next.Health(ctx)
	r.record(ctx, "health", domain.Undefined(), start, err)
	return err
}

func (r *LoggingRepository) Save(ctx context.Context, id, data domain.Value) (*domain.User, error) {
	start := time.Now()
	u, err := r.next.Save(ctx, id, data)
	r.record(ctx, "save", id, start, err)
	return u, err
}

func (r *LoggingRepository) Find(ctx context.Context, id domain.Value) (*domain.User, error) {
	start := time.Now()
	u, err := r.next.Find(ctx, id)
	r.record(ctx, "find", id, start, err, "hit", u != nil)
	return u, err
}

func (r *LoggingRepository) FindAll(ctx context.Context, ids domain.Value) ([]domain.User, error) {
	start := time.Now()
	users, err := r.next.FindAll(ctx, ids)
	r.record(ctx, "find_all", ids, start, err, "count", len(users))
	return users, err
}

func (r *LoggingRepository) Update(ctx context.Context, id, data domain.Value) (*domain.User, error) {
	start := time.Now()
	u, err := r.next.Update(ctx, id, data)
	r.record(ctx, "update", id, start, err, "hit", u != nil)
	return u, err
}

func (r *LoggingRepository) Delete(ctx context.Context, id domain.Value) (*domain.User, error) {
	start := time.Now()
	u, err := r.next.Delete(ctx, id)
	r.record(ctx, "delete", id, start, err, "hit", u != nil)
	return u, err
}

// record emits the log line. Argument errors are the caller's problem and
// log at warn; anything else that fails logs at error.
func (r *LoggingRepository) record(ctx context.Context, op string, id domain.Value, start time.Time, err error, extra ...any) {
	operationID := logger.OperationIDFromContext(ctx)
	if operationID == "" {
		operationID = uuid.New().String()
	}

	args := []any{
		"operation_id", operationID,
		"op", op,
		"id", id.String(),
		"duration", time.Since(start),
	}
	args = append(args, extra...)

	switch {
	case err == nil:
		logger.Debug(r.log, "repository call", args...)
	case domain.IsArgumentError(err):
		logger.Warn(r.log, "repository call rejected", append(args, "error", err)...)
	default:
		logger.Error(r.log, "repository call failed", append(args, "error", err)...)
	}
}
