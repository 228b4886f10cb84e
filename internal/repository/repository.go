package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"energy_tracker/internal/models"
)

// ErrNotFound is returned by deletes and updates that matched no row.
var ErrNotFound = errors.New("record not found")

type Authorization interface {
	Create(ctx context.Context, a models.Account) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByID(ctx context.Context, id int) (*models.Account, error)
	ListIDs(ctx context.Context) ([]int, error)
	Delete(ctx context.Context, id int) error
}

// ProfileRepo stores profile sections as JSON documents keyed by account and section name.
type ProfileRepo interface {
	SaveSection(ctx context.Context, accountID int, section string, v any) error
	LoadSection(ctx context.Context, accountID int, section string, dst any) (bool, error)
}

type ApplianceRepo interface {
	Add(ctx context.Context, a models.Appliance) (int, error)
	List(ctx context.Context, accountID int) ([]models.Appliance, error)
	Delete(ctx context.Context, accountID, id int) error
}

type GoalRepo interface {
	Add(ctx context.Context, g models.Goal) (int, error)
	List(ctx context.Context, accountID int) ([]models.Goal, error)
	UpdateCurrent(ctx context.Context, id int, current float64, at time.Time) error
	Delete(ctx context.Context, accountID, id int) error
}

type NotificationRepo interface {
	Append(ctx context.Context, n models.Notification) (string, error)
	List(ctx context.Context, accountID int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Auth          Authorization
	Profiles      ProfileRepo
	Appliances    ApplianceRepo
	Goals         GoalRepo
	Notifications NotificationRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:          NewUserRepository(db),
		Profiles:      NewProfileSQLite(db),
		Appliances:    NewApplianceSQLite(db),
		Goals:         NewGoalSQLite(db),
		Notifications: NewNotificationSQLite(db),
	}
}

// affectedOrNotFound converts a zero-row result into ErrNotFound.
func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// toUTC normalizes t to UTC, substituting now for the zero time.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
