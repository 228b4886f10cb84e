package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"energy_tracker/internal/models"

	"github.com/google/uuid"
)

type NotificationSQLite struct {
	db *sql.DB
}

func NewNotificationSQLite(db *sql.DB) *NotificationSQLite { return &NotificationSQLite{db: db} }

const (
	insertNotificationSQL = `
		INSERT INTO notifications (id, account_id, type, title, message, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectNotificationsSQL = `
		SELECT id, account_id, type, title, message, read, created_at
		FROM notifications WHERE account_id = ? ORDER BY created_at DESC
	`
	markNotificationReadSQL = `UPDATE notifications SET read = 1 WHERE id = ?`
	deleteNotificationSQL   = `DELETE FROM notifications WHERE id = ?`
)

// Append inserts a notification. If ID or Timestamp are empty, they’re set.
// It returns the stored ID.
func (r *NotificationSQLite) Append(ctx context.Context, n models.Notification) (string, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	typ := strings.ToLower(strings.TrimSpace(string(n.Type)))
	if typ == "" {
		typ = string(models.NotificationInfo)
	}

	_, err := r.db.ExecContext(ctx, insertNotificationSQL,
		n.ID,
		n.AccountID,
		typ,
		n.Title,
		n.Message,
		n.Read,
		toUTC(n.Timestamp),
	)
	if err != nil {
		return "", fmt.Errorf("insert notification %q: %w", n.Title, err)
	}
	return n.ID, nil
}

// List returns the account's notifications, newest first.
func (r *NotificationSQLite) List(ctx context.Context, accountID int) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx, selectNotificationsSQL, accountID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]models.Notification, 0, 32)
	for rows.Next() {
		var (
			n   models.Notification
			typ string
		)
		if err := rows.Scan(&n.ID, &n.AccountID, &typ, &n.Title, &n.Message, &n.Read, &n.Timestamp); err != nil {
			return nil, err
		}
		n.Type = models.NotificationType(typ)
		n.Timestamp = n.Timestamp.UTC()
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificationSQLite) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, markNotificationReadSQL, id)
	if err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	return affectedOrNotFound(res)
}

func (r *NotificationSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteNotificationSQL, id)
	if err != nil {
		return fmt.Errorf("delete notification %s: %w", id, err)
	}
	return affectedOrNotFound(res)
}
