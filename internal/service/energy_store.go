package service

import (
	"context"
	"fmt"
	"time"

	"energy_tracker/internal/models"
	"energy_tracker/internal/progress"
	"energy_tracker/internal/repository"
)

// EnergyStore is the storage port shared by the inbox and the goal monitor.
// It also enumerates accounts for the scheduler.
type EnergyStore struct {
	repos *repository.Repository
	now   func() time.Time
}

func NewEnergyStore(repos *repository.Repository) *EnergyStore {
	return &EnergyStore{repos: repos, now: time.Now}
}

func (s *EnergyStore) ListAccountIDs(ctx context.Context) ([]int, error) {
	return s.repos.Auth.ListIDs(ctx)
}

func (s *EnergyStore) GetGoals(ctx context.Context, accountID int) ([]models.Goal, error) {
	return s.repos.Goals.List(ctx, accountID)
}

// Usage projects the account's monthly usage from its appliances and tariff.
func (s *EnergyStore) Usage(ctx context.Context, accountID int) (progress.Usage, error) {
	tariff, err := loadTariff(ctx, s.repos.Profiles, accountID)
	if err != nil {
		return progress.Usage{}, err
	}
	appliances, err := s.repos.Appliances.List(ctx, accountID)
	if err != nil {
		return progress.Usage{}, fmt.Errorf("list appliances: %w", err)
	}
	return progress.Aggregate(appliances, tariff), nil
}

// CalculateGoalProgress computes fresh snapshots and stores each goal's new
// current value when it changed.
func (s *EnergyStore) CalculateGoalProgress(ctx context.Context, accountID int) ([]models.GoalProgressSnapshot, error) {
	goals, err := s.GetGoals(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	if len(goals) == 0 {
		return nil, nil
	}
	usage, err := s.Usage(ctx, accountID)
	if err != nil {
		return nil, err
	}

	snaps := progress.Compute(goals, usage)
	now := s.now()
	for i, g := range goals {
		if snaps[i].Current == g.Current {
			continue
		}
		if err := s.repos.Goals.UpdateCurrent(ctx, g.ID, snaps[i].Current, now); err != nil {
			return nil, fmt.Errorf("update goal %d: %w", g.ID, err)
		}
	}
	return snaps, nil
}

func (s *EnergyStore) AddNotification(ctx context.Context, accountID int, n models.Notification) (string, error) {
	n.AccountID = accountID
	return s.repos.Notifications.Append(ctx, n)
}

func (s *EnergyStore) GetNotifications(ctx context.Context, accountID int) ([]models.Notification, error) {
	return s.repos.Notifications.List(ctx, accountID)
}

func (s *EnergyStore) MarkNotificationAsRead(ctx context.Context, id string) error {
	return s.repos.Notifications.MarkRead(ctx, id)
}

func (s *EnergyStore) DeleteNotification(ctx context.Context, id string) error {
	return s.repos.Notifications.Delete(ctx, id)
}
