package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"energy_tracker/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL     = `INSERT INTO users (username, full_name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`
	selectUserColumns = `SELECT id, username, full_name, email, password_hash, created_at FROM users`
	selectUserByName  = selectUserColumns + ` WHERE username = ?`
	selectUserByID    = selectUserColumns + ` WHERE id = ?`
	selectUserIDsSQL  = `SELECT id FROM users ORDER BY id ASC`
	deleteUserSQL     = `DELETE FROM users WHERE id = ?`
)

// Create inserts a new account and returns its ID.
func (r *UserRepository) Create(ctx context.Context, a models.Account) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, a.Username, a.FullName, a.Email, a.PasswordHash, toUTC(a.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", a.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", a.Username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches an account by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, selectUserByName, username))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return a, nil
}

// GetByID fetches an account by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, selectUserByID, id))
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return a, nil
}

// ListIDs returns every account id in ascending order.
func (r *UserRepository) ListIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, selectUserIDsSQL)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes the account; profile, appliance, goal and notification rows cascade.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deleteUserSQL, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.Username, &a.FullName, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}
