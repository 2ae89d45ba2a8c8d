// internal/repository/postgres/user_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentorio-service/internal/domain/user"
	xerrors "rentorio-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Emails are stored lower-cased; a duplicate
// email maps to ErrConflict.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (name, email, password, phone, role)
		VALUES ($1, LOWER($2), $3, $4, $5)
		RETURNING id, email, is_active, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, u.Name, u.Email, u.PasswordHash, u.Phone, u.Role).
		Scan(&u.ID, &u.Email, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return xerrors.Wrap(xerrors.ErrConflict, "email already registered")
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	query := `
		SELECT id, name, email, password, phone, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, name, email, password, phone, role, is_active, created_at, updated_at
		FROM users
		WHERE email = LOWER($1)
	`
	return r.scanOne(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query := `
		SELECT id, name, email, password, phone, role, is_active, created_at, updated_at
		FROM users
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update applies the non-nil fields of req.
func (r *UserRepository) Update(ctx context.Context, id int64, req *user.UpdateUserRequest) (*user.User, error) {
	updates := []string{}
	values := []interface{}{}
	idx := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", idx))
		values = append(values, *req.Name)
		idx++
	}
	if req.Email != nil {
		updates = append(updates, fmt.Sprintf("email = LOWER($%d)", idx))
		values = append(values, *req.Email)
		idx++
	}
	if req.Phone != nil {
		updates = append(updates, fmt.Sprintf("phone = $%d", idx))
		values = append(values, *req.Phone)
		idx++
	}
	if req.Role != nil {
		updates = append(updates, fmt.Sprintf("role = $%d", idx))
		values = append(values, *req.Role)
		idx++
	}

	if len(updates) == 0 {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "no fields to update")
	}

	updates = append(updates, "updated_at = NOW()")
	values = append(values, id)

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING id, name, email, password, phone, role, is_active, created_at, updated_at
	`, strings.Join(updates, ", "), idx)

	u, err := r.scanOne(r.db.QueryRow(ctx, query, values...))

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "email already registered")
	}
	return u, err
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}
