package monitor

import (
	"fmt"

	"energy_tracker/internal/models"
)

// Milestone is a progress point that is announced at most once per goal.
type Milestone string

const (
	Milestone70      Milestone = "70"
	Milestone90      Milestone = "90"
	MilestoneDone    Milestone = "completed"
	MilestoneExceeds Milestone = "exceeded"
)

// supersedes lists the milestones that can no longer fire once m has fired.
// Only exceeded closes the others; a completed goal still announces 70 and 90
// on later ticks.
var supersedes = map[Milestone][]Milestone{
	MilestoneExceeds: {MilestoneDone, Milestone90, Milestone70},
}

var allMilestones = []Milestone{Milestone70, Milestone90, MilestoneDone, MilestoneExceeds}

// Tracker is the set of milestone latches for one process. A latch goes from
// unset to set once and is cleared only when its goal is forgotten; a new
// Tracker starts empty.
type Tracker struct {
	fired map[string]bool
}

func NewTracker() *Tracker {
	return &Tracker{fired: make(map[string]bool)}
}

func trackerKey(goalID int, t models.GoalType, m Milestone) string {
	return fmt.Sprintf("%d_%s_%s", goalID, t, m)
}

// Fired reports whether m has already been announced for the goal.
func (t *Tracker) Fired(goalID int, typ models.GoalType, m Milestone) bool {
	return t.fired[trackerKey(goalID, typ, m)]
}

// Latch records m, and every milestone it supersedes, as announced.
func (t *Tracker) Latch(goalID int, typ models.GoalType, m Milestone) {
	t.fired[trackerKey(goalID, typ, m)] = true
	for _, s := range supersedes[m] {
		t.fired[trackerKey(goalID, typ, s)] = true
	}
}

// Forget drops every latch of a deleted goal.
func (t *Tracker) Forget(goalID int) {
	for _, typ := range models.GoalTypes {
		for _, m := range allMilestones {
			delete(t.fired, trackerKey(goalID, typ, m))
		}
	}
}

// Len is the number of latched keys.
func (t *Tracker) Len() int { return len(t.fired) }
