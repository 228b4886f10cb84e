package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Profile section names.
const (
	SectionPersonal    = "personal"
	SectionLocation    = "location"
	SectionPreferences = "preferences"
)

type ProfileSQLite struct {
	db *sql.DB
}

func NewProfileSQLite(db *sql.DB) *ProfileSQLite {
	return &ProfileSQLite{db: db}
}

const (
	upsertSectionSQL = `
		INSERT INTO profile_sections (account_id, section, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(account_id, section) DO UPDATE SET
			data=excluded.data,
			updated_at=excluded.updated_at
	`

	selectSectionSQL = `SELECT data FROM profile_sections WHERE account_id = ? AND section = ?`
)

// SaveSection replaces the stored document for (accountID, section).
func (r *ProfileSQLite) SaveSection(ctx context.Context, accountID int, section string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s section: %w", section, err)
	}
	if _, err := r.db.ExecContext(ctx, upsertSectionSQL, accountID, section, string(b), time.Now().UTC()); err != nil {
		return fmt.Errorf("save %s section for account %d: %w", section, accountID, err)
	}
	return nil
}

// LoadSection decodes the stored document into dst. It reports false when
// nothing has been saved yet, leaving dst untouched.
func (r *ProfileSQLite) LoadSection(ctx context.Context, accountID int, section string, dst any) (bool, error) {
	var data string
	err := r.db.QueryRowContext(ctx, selectSectionSQL, accountID, section).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("load %s section for account %d: %w", section, accountID, err)
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return false, fmt.Errorf("decode %s section for account %d: %w", section, accountID, err)
	}
	return true, nil
}
