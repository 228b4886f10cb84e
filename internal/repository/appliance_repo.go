package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"energy_tracker/internal/models"
)

type ApplianceSQLite struct {
	db *sql.DB
}

func NewApplianceSQLite(db *sql.DB) *ApplianceSQLite { return &ApplianceSQLite{db: db} }

const (
	insertApplianceSQL = `
		INSERT INTO appliances (account_id, name, wattage, usage_hours, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	selectAppliancesSQL = `
		SELECT id, account_id, name, wattage, usage_hours, category, created_at
		FROM appliances WHERE account_id = ? ORDER BY id ASC
	`
	deleteApplianceSQL = `DELETE FROM appliances WHERE id = ? AND account_id = ?`
)

func (r *ApplianceSQLite) Add(ctx context.Context, a models.Appliance) (int, error) {
	res, err := r.db.ExecContext(ctx, insertApplianceSQL,
		a.AccountID,
		strings.TrimSpace(a.Name),
		a.Wattage,
		a.UsageHours,
		strings.TrimSpace(a.Category),
		toUTC(a.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert appliance %q: %w", a.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for appliance %q: %w", a.Name, err)
	}
	return int(id), nil
}

func (r *ApplianceSQLite) List(ctx context.Context, accountID int) ([]models.Appliance, error) {
	rows, err := r.db.QueryContext(ctx, selectAppliancesSQL, accountID)
	if err != nil {
		return nil, fmt.Errorf("list appliances: %w", err)
	}
	defer rows.Close()

	out := make([]models.Appliance, 0, 16)
	for rows.Next() {
		var a models.Appliance
		if err := rows.Scan(&a.ID, &a.AccountID, &a.Name, &a.Wattage, &a.UsageHours, &a.Category, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.CreatedAt = a.CreatedAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ApplianceSQLite) Delete(ctx context.Context, accountID, id int) error {
	res, err := r.db.ExecContext(ctx, deleteApplianceSQL, id, accountID)
	if err != nil {
		return fmt.Errorf("delete appliance %d: %w", id, err)
	}
	return affectedOrNotFound(res)
}
