package sqlite

import (
	"context"
	"database/sql"

	"github.com/dom/notes-api/internal/domain"
	"github.com/google/uuid"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

const userColumns = `id, full_name, email, password_hash, created_on`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?)`,
		user.ID.String(), user.FullName, user.Email, user.PasswordHash, toNanos(user.CreatedOn),
	)
	return translate(err)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id.String())
	return scanUser(row)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id.String()).Scan(&exists)
	if err != nil {
		return false, translate(err)
	}
	return exists, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		user      domain.User
		id        string
		createdOn int64
	)
	if err := row.Scan(&id, &user.FullName, &user.Email, &user.PasswordHash, &createdOn); err != nil {
		return nil, translate(err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	user.ID = parsed
	user.CreatedOn = fromNanos(createdOn)
	return &user, nil
}
