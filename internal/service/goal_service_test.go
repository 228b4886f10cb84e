package service

import (
	"context"
	"errors"
	"testing"

	"energy_tracker/internal/models"
	"energy_tracker/internal/monitor"
	"energy_tracker/internal/progress"
)

type stubChecker struct {
	calls     []int
	forgotten []int
}

func (s *stubChecker) Forget(goalID int) {
	s.forgotten = append(s.forgotten, goalID)
}

func (s *stubChecker) Check(_ context.Context, accountID int) (monitor.CheckResult, error) {
	s.calls = append(s.calls, accountID)
	return monitor.CheckResult{}, nil
}

func TestGoalService_AddGoal_Validation(t *testing.T) {
	repos := newMemRepos(&mockAuthRepo{})
	svc := NewGoalService(repos.goals, NewEnergyStore(repos.Repository), &stubChecker{})
	ctx := context.Background()

	if _, err := svc.AddGoal(ctx, 1, "water", 10); !errors.Is(err, models.ErrInvalidGoalType) {
		t.Errorf("expected ErrInvalidGoalType, got %v", err)
	}
	if _, err := svc.AddGoal(ctx, 1, "cost", 0); !errors.Is(err, progress.ErrZeroTarget) {
		t.Errorf("expected ErrZeroTarget, got %v", err)
	}

	g, err := svc.AddGoal(ctx, 1, " Cost ", 3000)
	if err != nil {
		t.Fatalf("AddGoal returned error: %v", err)
	}
	if g.ID == 0 || g.Type != models.GoalCost || g.Unit != "₱" || g.Current != 0 {
		t.Errorf("unexpected goal %+v", g)
	}
}

func TestGoalService_ListGoalsWithProgress(t *testing.T) {
	repos := newMemRepos(&mockAuthRepo{})
	ctx := context.Background()
	_, _ = repos.appliances.Add(ctx, models.Appliance{AccountID: 1, Name: "AC", Wattage: 1000, UsageHours: 1})
	svc := NewGoalService(repos.goals, NewEnergyStore(repos.Repository), &stubChecker{})
	_, _ = svc.AddGoal(ctx, 1, "consumption", 20)

	views, err := svc.ListGoals(ctx, 1)
	if err != nil {
		t.Fatalf("ListGoals returned error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(views))
	}
	v := views[0]
	if v.Current != 30 || v.Progress != 150 || !v.Exceeded {
		t.Errorf("unexpected view %+v", v)
	}
}

func TestGoalService_DeleteAndCheck(t *testing.T) {
	repos := newMemRepos(&mockAuthRepo{})
	chk := &stubChecker{}
	svc := NewGoalService(repos.goals, NewEnergyStore(repos.Repository), chk)
	ctx := context.Background()

	if err := svc.DeleteGoal(ctx, 1, 42); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
	if len(chk.forgotten) != 0 {
		t.Errorf("failed delete must keep latches, forgot %v", chk.forgotten)
	}

	g, err := svc.AddGoal(ctx, 1, "carbon", 50)
	if err != nil {
		t.Fatalf("AddGoal returned error: %v", err)
	}
	if err := svc.DeleteGoal(ctx, 1, g.ID); err != nil {
		t.Fatalf("DeleteGoal returned error: %v", err)
	}
	if len(chk.forgotten) != 1 || chk.forgotten[0] != g.ID {
		t.Errorf("expected latches of goal %d released, got %v", g.ID, chk.forgotten)
	}

	if _, err := svc.CheckGoals(ctx, 5); err != nil {
		t.Fatalf("CheckGoals returned error: %v", err)
	}
	if len(chk.calls) != 1 || chk.calls[0] != 5 {
		t.Errorf("expected check for account 5, got %v", chk.calls)
	}
}

func TestCalculatorService_ScenarioAndStats(t *testing.T) {
	repos := newMemRepos(&mockAuthRepo{})
	ctx := context.Background()
	id, _ := repos.appliances.Add(ctx, models.Appliance{AccountID: 1, Name: "Fan", Wattage: 100, UsageHours: 10})
	_, _ = repos.goals.Add(ctx, models.Goal{AccountID: 1, Type: models.GoalConsumption, Target: 60})
	store := NewEnergyStore(repos.Repository)
	svc := NewCalculatorService(repos.Repository, store)

	res, err := svc.CalcScenario(ctx, 1, id, "5", "")
	if err != nil {
		t.Fatalf("CalcScenario returned error: %v", err)
	}
	if res.DailyCostDisplay != "₱5.50" || res.MonthlyCostDisplay != "₱165.00" {
		t.Errorf("unexpected scenario %+v", res)
	}
	if _, err := svc.CalcScenario(ctx, 1, 99, 1, nil); !errors.Is(err, ErrApplianceNotFound) {
		t.Errorf("expected ErrApplianceNotFound, got %v", err)
	}

	st, err := svc.Stats(ctx, 1)
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if st.DailyUsageKWh != 1 || st.MonthlyUsageKWh != 30 || st.OverallGoalProgress != 50 {
		t.Errorf("unexpected stats %+v", st)
	}

	bill, err := svc.CalcBill(ctx, 1, "10", nil)
	if err != nil {
		t.Fatalf("CalcBill returned error: %v", err)
	}
	if bill.Display != "₱110.00" {
		t.Errorf("unexpected bill %+v", bill)
	}
}
