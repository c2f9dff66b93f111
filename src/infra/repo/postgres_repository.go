package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"usermanager/src/core/domain"
	"usermanager/src/core/ports"
	"usermanager/src/infra/db"
	"usermanager/src/infra/logger"
)

var _ ports.UserRepository = (*PostgresRepository)(nil)

// PostgresRepository implements UserRepository using pgx.
// Rows are read back into fresh structs, so every result is already a copy.
type PostgresRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgresRepository constructs a repository backed by Postgres.
func NewPostgresRepository(pg *db.Postgres, log *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		pool: pg.Pool,
		log:  log,
	}
}

func (r *PostgresRepository) Health(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514"
	}
	return false
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u          domain.User
		deleteDate *time.Time
	)
	if err := row.Scan(&u.Name, &deleteDate); err != nil {
		return nil, err
	}
	u.DeleteDate = deleteDate
	return &u, nil
}

func (r *PostgresRepository) Save(ctx context.Context, id, data domain.Value) (*domain.User, error) {
	key, user, err := checkSave(id, data)
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO users (user_id, name, delete_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name, delete_date = EXCLUDED.delete_date
		RETURNING name, delete_date
	`
	saved, err := scanUser(r.pool.QueryRow(ctx, q, key, user.Name, user.DeleteDate))
	if err != nil {
		if isCheckViolation(err) {
			return nil, domain.NewTypeMismatchError("id must be a positive integer")
		}
		return nil, fmt.Errorf("save user %d: %w", key, err)
	}
	return saved, nil
}

func (r *PostgresRepository) Find(ctx context.Context, id domain.Value) (*domain.User, error) {
	key, ok := domain.ParseID(id)
	if !ok {
		return nil, nil
	}

	const q = `
		SELECT name, delete_date
		FROM users
		WHERE user_id = $1
	`
	u, err := scanUser(r.pool.QueryRow(ctx, q, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user %d: %w", key, err)
	}
	return u, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context, ids domain.Value) ([]domain.User, error) {
	switch ids.Kind() {
	case domain.KindUndefined:
		const q = `
			SELECT name, delete_date
			FROM users
			ORDER BY seq ASC
		`
		return r.queryUsers(ctx, q)
	case domain.KindArray:
		// ord keeps the caller's order, duplicates included.
		const q = `
			SELECT u.name, u.delete_date
			FROM unnest($1::bigint[]) WITH ORDINALITY AS req(user_id, ord)
			JOIN users u ON u.user_id = req.user_id
			ORDER BY req.ord ASC
		`
		return r.queryUsers(ctx, q, idKeys(ids))
	default:
		return []domain.User{}, nil
	}
}

func (r *PostgresRepository) queryUsers(ctx context.Context, q string, args ...any) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id, data domain.Value) (*domain.User, error) {
	key, ok := domain.ParseID(id)
	if !ok {
		return nil, nil
	}
	existing, err := r.Find(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if !data.IsObject() {
		return nil, domain.NewTypeMismatchError("data must be an object, got " + data.Kind().String())
	}

	user := domain.UserFromValue(data)
	const q = `
		UPDATE users
		SET name = $2, delete_date = $3
		WHERE user_id = $1
		RETURNING name, delete_date
	`
	u, err := scanUser(r.pool.QueryRow(ctx, q, key, user.Name, user.DeleteDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update user %d: %w", key, err)
	}
	return u, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id domain.Value) (*domain.User, error) {
	key, ok := domain.ParseID(id)
	if !ok {
		return nil, domain.NewInvalidIdentifierError(id)
	}

	const q = `
		DELETE FROM users
		WHERE user_id = $1
		RETURNING name, delete_date
	`
	u, err := scanUser(r.pool.QueryRow(ctx, q, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete user %d: %w", key, err)
	}
	logger.Debug(r.log, "record removed", "id", key)
	return u, nil
}
