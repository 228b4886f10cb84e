package service

import (
	"context"

	"energy_tracker/internal/calculator"
	"energy_tracker/internal/progress"
	"energy_tracker/internal/repository"
)

// Stats are the dashboard's quick figures.
type Stats struct {
	DailyUsageKWh       float64 `json:"daily_usage_kwh"`
	MonthlyUsageKWh     float64 `json:"monthly_usage_kwh"`
	MonthlyCost         float64 `json:"monthly_cost"`
	MonthlyCarbonKg     float64 `json:"monthly_carbon_kg"`
	Tariff              float64 `json:"tariff"`
	OverallGoalProgress float64 `json:"overall_goal_progress"`
	Goals               int     `json:"goals"`
}

// CalculatorService runs the calculators with the caller's profile tariff as fallback.
type CalculatorService struct {
	repos *repository.Repository
	store *EnergyStore
}

func NewCalculatorService(repos *repository.Repository, store *EnergyStore) *CalculatorService {
	return &CalculatorService{repos: repos, store: store}
}

func (s *CalculatorService) CalcCarbon(consumption any) calculator.CarbonResult {
	return calculator.Carbon(consumption)
}

func (s *CalculatorService) CalcBill(ctx context.Context, accountID int, reading, tariff any) (calculator.BillResult, error) {
	pt, err := loadTariff(ctx, s.repos.Profiles, accountID)
	if err != nil {
		return calculator.BillResult{}, err
	}
	return calculator.Bill(reading, tariff, pt), nil
}

// CalcScenario projects one of the caller's appliances at a different number of hours.
func (s *CalculatorService) CalcScenario(ctx context.Context, accountID, applianceID int, hours, tariff any) (calculator.ScenarioResult, error) {
	list, err := s.repos.Appliances.List(ctx, accountID)
	if err != nil {
		return calculator.ScenarioResult{}, err
	}
	for _, a := range list {
		if a.ID != applianceID {
			continue
		}
		pt, err := loadTariff(ctx, s.repos.Profiles, accountID)
		if err != nil {
			return calculator.ScenarioResult{}, err
		}
		return calculator.Scenario(a, hours, tariff, pt), nil
	}
	return calculator.ScenarioResult{}, ErrApplianceNotFound
}

func (s *CalculatorService) Stats(ctx context.Context, accountID int) (Stats, error) {
	usage, err := s.store.Usage(ctx, accountID)
	if err != nil {
		return Stats{}, err
	}
	goals, err := s.store.GetGoals(ctx, accountID)
	if err != nil {
		return Stats{}, err
	}
	tariff, err := loadTariff(ctx, s.repos.Profiles, accountID)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		DailyUsageKWh:       usage.DailyKWh,
		MonthlyUsageKWh:     usage.KWh,
		MonthlyCost:         usage.Cost,
		MonthlyCarbonKg:     usage.CarbonKg,
		Tariff:              tariff,
		OverallGoalProgress: progress.Overall(progress.Compute(goals, usage)),
		Goals:               len(goals),
	}, nil
}
