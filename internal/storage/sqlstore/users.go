package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/meetsplit/internal/models"
	"github.com/mmynk/meetsplit/internal/storage"
)

const userColumns = `id, email, name, lastname, password_hash, status, created_at, updated_at`

// CreateUser inserts a new user into the database.
func (s *SQLStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
		user.UpdatedAt = user.CreatedAt
	}
	if user.Status == "" {
		user.Status = models.UserStatusNew
	}

	_, err := s.exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.Name,
		user.Lastname,
		user.PasswordHash,
		user.Status,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.get(ctx, user, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	err := s.get(ctx, user, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetUsersByIDs retrieves multiple users by their IDs.
// Returns a map of user ID to User object.
// Users that don't exist are omitted from the result.
func (s *SQLStore) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User)
	if len(ids) == 0 {
		return users, nil
	}

	var c conds
	c.in("id", ids)

	var rows []*models.User
	if err := s.selectAll(ctx, &rows, `SELECT `+userColumns+` FROM users`+c.where(), c.args...); err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}

	for _, user := range rows {
		users[user.ID] = user
	}
	return users, nil
}

// UpdateUser applies the non-nil fields of update and bumps updated_at.
func (s *SQLStore) UpdateUser(ctx context.Context, id string, update storage.UserUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	var set sets
	if update.Name != nil {
		set.add("name", *update.Name)
	}
	if update.Lastname != nil {
		set.add("lastname", *update.Lastname)
	}
	if update.Email != nil {
		set.add("email", *update.Email)
	}
	if update.PasswordHash != nil {
		set.add("password_hash", *update.PasswordHash)
	}
	if update.Status != nil {
		set.add("status", *update.Status)
	}
	set.add("updated_at", time.Now().Unix())

	args := append(set.args, id)
	n, err := s.exec(ctx, `UPDATE users SET `+set.clause()+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user not found: %s", id)
	}

	return nil
}
