// Package progress computes how far each goal has come against live usage.
package progress

import (
	"errors"
	"sort"

	"energy_tracker/internal/calculator"
	"energy_tracker/internal/models"
)

// ErrZeroTarget marks a goal whose target cannot be divided by.
var ErrZeroTarget = errors.New("goal target must be greater than zero")

// Usage is a monthly projection of an account's consumption, cost and emissions.
type Usage struct {
	DailyKWh float64 `json:"daily_kwh"`
	KWh      float64 `json:"kwh"`
	Cost     float64 `json:"cost"`
	CarbonKg float64 `json:"carbon_kg"`
}

// Aggregate projects a month of usage from the appliances' daily hours.
func Aggregate(appliances []models.Appliance, tariff float64) Usage {
	var daily float64
	for _, a := range appliances {
		daily += a.DailyKWh()
	}
	monthly := daily * calculator.DaysPerMonth
	return Usage{
		DailyKWh: daily,
		KWh:      monthly,
		Cost:     monthly * tariff,
		CarbonKg: monthly * calculator.GridEmissionFactor,
	}
}

// Current selects the usage figure a goal of type t is measured against.
func (u Usage) Current(t models.GoalType) float64 {
	switch t {
	case models.GoalCost:
		return u.Cost
	case models.GoalCarbon:
		return u.CarbonKg
	default:
		return u.KWh
	}
}

// Snapshot computes a single goal's progress. A goal with target <= 0 comes
// back Blocked with zero progress.
func Snapshot(g models.Goal, current float64) models.GoalProgressSnapshot {
	unit := g.Unit
	if unit == "" {
		unit = g.Type.Unit()
	}
	s := models.GoalProgressSnapshot{
		GoalID:  g.ID,
		Type:    g.Type,
		Current: current,
		Target:  g.Target,
		Unit:    unit,
	}
	if g.Target <= 0 {
		s.Blocked = true
		return s
	}
	s.Progress = current / g.Target * 100
	return s
}

// Compute returns one snapshot per goal, in input order.
func Compute(goals []models.Goal, u Usage) []models.GoalProgressSnapshot {
	out := make([]models.GoalProgressSnapshot, 0, len(goals))
	for _, g := range goals {
		out = append(out, Snapshot(g, u.Current(g.Type)))
	}
	return out
}

// Overall is the mean completion across goals, each capped at 100%.
// Blocked snapshots are ignored.
func Overall(snaps []models.GoalProgressSnapshot) float64 {
	var (
		sum float64
		n   int
	)
	for _, s := range snaps {
		if s.Blocked {
			continue
		}
		sum += min(s.Progress, 100)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// BreakdownEntry is one slice of the appliance usage chart.
type BreakdownEntry struct {
	Name     string  `json:"name"`
	DailyKWh float64 `json:"daily_kwh"`
}

const (
	breakdownMaxEntries = 7
	breakdownTop        = 6
	breakdownOthers     = "Others"
)

// Breakdown ranks appliances by daily kWh. With more than seven appliances the
// top six are kept and the rest are summed into "Others".
func Breakdown(appliances []models.Appliance) []BreakdownEntry {
	entries := make([]BreakdownEntry, 0, len(appliances))
	for _, a := range appliances {
		entries = append(entries, BreakdownEntry{Name: a.Name, DailyKWh: a.DailyKWh()})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].DailyKWh > entries[j].DailyKWh })

	if len(entries) <= breakdownMaxEntries {
		return entries
	}
	var rest float64
	for _, e := range entries[breakdownTop:] {
		rest += e.DailyKWh
	}
	out := entries[:breakdownTop:breakdownTop]
	if rest > 0 {
		out = append(out, BreakdownEntry{Name: breakdownOthers, DailyKWh: rest})
	}
	return out
}
