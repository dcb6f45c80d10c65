package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/HerbHall/newsroom/internal/store"
	"github.com/HerbHall/newsroom/pkg/models"
)

// UserRepository provides read access to user accounts.
type UserRepository interface {
	// Get returns a single user by username.
	Get(ctx context.Context, username string) (*models.User, error)

	// List returns all users ordered by username.
	List(ctx context.Context) ([]models.User, error)
}

// Compile-time interface guard.
var _ UserRepository = (*SQLUserRepository)(nil)

// SQLUserRepository implements UserRepository on the shared store.
type SQLUserRepository struct {
	db store.Querier
}

// NewSQLUserRepository creates a UserRepository.
// The users table must already exist (see Migrate).
func NewSQLUserRepository(db store.Querier) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

// userColumns is the shared SELECT column list for user queries.
const userColumns = `username, name, avatar_url`

func (r *SQLUserRepository) Get(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return u, nil
}

func (r *SQLUserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var avatar sql.NullString
	if err := row.Scan(&u.Username, &u.Name, &avatar); err != nil {
		return nil, err
	}
	if avatar.Valid {
		u.AvatarURL = avatar.String
	}
	return &u, nil
}
