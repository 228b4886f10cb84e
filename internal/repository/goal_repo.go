package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"energy_tracker/internal/models"
)

type GoalSQLite struct {
	db *sql.DB
}

func NewGoalSQLite(db *sql.DB) *GoalSQLite { return &GoalSQLite{db: db} }

const (
	insertGoalSQL = `
		INSERT INTO goals (account_id, type, target, current, unit, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectGoalsSQL = `
		SELECT id, account_id, type, target, current, unit, created_at, updated_at
		FROM goals WHERE account_id = ? ORDER BY id ASC
	`
	updateGoalCurrentSQL = `UPDATE goals SET current = ?, updated_at = ? WHERE id = ?`
	deleteGoalSQL        = `DELETE FROM goals WHERE id = ? AND account_id = ?`
)

func (r *GoalSQLite) Add(ctx context.Context, g models.Goal) (int, error) {
	created := toUTC(g.CreatedAt)
	updated := g.UpdatedAt
	if updated.IsZero() {
		updated = created
	}
	unit := g.Unit
	if unit == "" {
		unit = g.Type.Unit()
	}
	res, err := r.db.ExecContext(ctx, insertGoalSQL,
		g.AccountID, string(g.Type), g.Target, g.Current, unit, created, updated.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert %s goal: %w", g.Type, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for %s goal: %w", g.Type, err)
	}
	return int(id), nil
}

func (r *GoalSQLite) List(ctx context.Context, accountID int) ([]models.Goal, error) {
	rows, err := r.db.QueryContext(ctx, selectGoalsSQL, accountID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	out := make([]models.Goal, 0, 8)
	for rows.Next() {
		var (
			g   models.Goal
			typ string
		)
		if err := rows.Scan(&g.ID, &g.AccountID, &typ, &g.Target, &g.Current, &g.Unit, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		g.Type = models.GoalType(typ)
		g.CreatedAt = g.CreatedAt.UTC()
		g.UpdatedAt = g.UpdatedAt.UTC()
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateCurrent stores the latest computed value of a goal.
func (r *GoalSQLite) UpdateCurrent(ctx context.Context, id int, current float64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, updateGoalCurrentSQL, current, toUTC(at), id)
	if err != nil {
		return fmt.Errorf("update goal %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}

func (r *GoalSQLite) Delete(ctx context.Context, accountID, id int) error {
	res, err := r.db.ExecContext(ctx, deleteGoalSQL, id, accountID)
	if err != nil {
		return fmt.Errorf("delete goal %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}
