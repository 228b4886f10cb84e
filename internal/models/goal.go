package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GoalType is the closed set of quantities a goal can track.
type GoalType string

const (
	GoalConsumption GoalType = "consumption"
	GoalCost        GoalType = "cost"
	GoalCarbon      GoalType = "carbon"
)

// GoalTypes lists every goal type.
var GoalTypes = []GoalType{GoalConsumption, GoalCost, GoalCarbon}

var ErrInvalidGoalType = errors.New("invalid goal type: must be consumption, cost, or carbon")

// ParseGoalType normalizes s and validates it against the known goal types.
func ParseGoalType(s string) (GoalType, error) {
	switch t := GoalType(strings.ToLower(strings.TrimSpace(s))); t {
	case GoalConsumption, GoalCost, GoalCarbon:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGoalType, s)
	}
}

// Unit is the display unit for the goal's quantity.
func (t GoalType) Unit() string {
	switch t {
	case GoalCost:
		return "₱"
	case GoalCarbon:
		return "kg"
	default:
		return "kWh"
	}
}

// Label is the capitalized type name, e.g. "Consumption".
func (t GoalType) Label() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

type Goal struct {
	ID        int       `json:"id"`
	AccountID int       `json:"account_id"`
	Type      GoalType  `json:"type"`
	Target    float64   `json:"target"`
	Current   float64   `json:"current"` // recomputed on every monitoring tick
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GoalProgressSnapshot is the derived completion of a goal at one point in time.
// It is never persisted.
type GoalProgressSnapshot struct {
	GoalID   int      `json:"goal_id"`
	Type     GoalType `json:"type"`
	Current  float64  `json:"current"`
	Target   float64  `json:"target"`
	Unit     string   `json:"unit"`
	Progress float64  `json:"progress"`          // current/target*100, unbounded
	Blocked  bool     `json:"blocked,omitempty"` // target <= 0, progress undefined
}

// Exceeded reports whether the snapshot is past its limit.
func (s GoalProgressSnapshot) Exceeded() bool {
	return !s.Blocked && s.Progress > 100
}

// Amount renders value with the snapshot's unit, placed on the side its goal
// type uses. An empty unit falls back to the type's default.
func (s GoalProgressSnapshot) Amount(value string) string {
	unit := s.Unit
	if unit == "" {
		unit = s.Type.Unit()
	}
	if s.Type == GoalCost {
		return unit + value
	}
	return value + unit
}

// FormatTarget renders a number the way it was entered: 3000 -> "3000", 2.5 -> "2.5".
func FormatTarget(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
