package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/authgate/internal/models"
	"github.com/lib/pq"
)

// ErrDuplicateUsername is returned by Create when the username is already
// registered. The users.username UNIQUE constraint enforces this inside the
// INSERT itself, so concurrent creates for the same name cannot both succeed.
var ErrDuplicateUsername = errors.New("username already exists")

// ErrNotFound is returned by lookups when no record matches. It is a normal
// outcome, not a storage fault; callers must branch on it with errors.Is.
var ErrNotFound = errors.New("user not found")

// uniqueViolation is the Postgres error code for a unique constraint violation.
const uniqueViolation = pq.ErrorCode("23505")

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username, passwordHash).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Username
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}
