package service

import (
	"context"
	"errors"
	"fmt"

	"energy_tracker/internal/models"
	"energy_tracker/internal/monitor"
	"energy_tracker/internal/progress"
	"energy_tracker/internal/repository"
)

var ErrGoalNotFound = errors.New("goal not found")

// GoalView is a goal together with its live progress.
type GoalView struct {
	models.Goal
	Progress float64 `json:"progress"`
	Exceeded bool    `json:"exceeded"`
	Blocked  bool    `json:"blocked,omitempty"`
}

// goalChecker runs milestone detection for one account and drops the latches
// of deleted goals.
type goalChecker interface {
	Check(ctx context.Context, accountID int) (monitor.CheckResult, error)
	Forget(goalID int)
}

type GoalService struct {
	repo    repository.GoalRepo
	store   *EnergyStore
	checker goalChecker
}

func NewGoalService(repo repository.GoalRepo, store *EnergyStore, checker goalChecker) *GoalService {
	return &GoalService{repo: repo, store: store, checker: checker}
}

// AddGoal validates the type and target and stores a goal with zero progress.
func (s *GoalService) AddGoal(ctx context.Context, accountID int, typ string, target float64) (models.Goal, error) {
	t, err := models.ParseGoalType(typ)
	if err != nil {
		return models.Goal{}, err
	}
	if target <= 0 {
		return models.Goal{}, progress.ErrZeroTarget
	}
	g := models.Goal{
		AccountID: accountID,
		Type:      t,
		Target:    target,
		Unit:      t.Unit(),
	}
	id, err := s.repo.Add(ctx, g)
	if err != nil {
		return models.Goal{}, fmt.Errorf("add goal: %w", err)
	}
	g.ID = id
	return g, nil
}

// ListGoals returns every goal with progress computed against current usage.
func (s *GoalService) ListGoals(ctx context.Context, accountID int) ([]GoalView, error) {
	goals, err := s.repo.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	usage, err := s.store.Usage(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		snap := progress.Snapshot(g, usage.Current(g.Type))
		g.Current = snap.Current
		out = append(out, GoalView{
			Goal:     g,
			Progress: snap.Progress,
			Exceeded: snap.Exceeded(),
			Blocked:  snap.Blocked,
		})
	}
	return out, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, accountID, id int) error {
	if err := s.repo.Delete(ctx, accountID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGoalNotFound
		}
		return fmt.Errorf("delete goal %d: %w", id, err)
	}
	s.checker.Forget(id)
	return nil
}

// CheckGoals runs milestone detection for the account right away instead of
// waiting for the next scheduled tick.
func (s *GoalService) CheckGoals(ctx context.Context, accountID int) (monitor.CheckResult, error) {
	return s.checker.Check(ctx, accountID)
}
