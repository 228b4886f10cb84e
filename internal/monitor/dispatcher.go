// Package monitor watches goal progress and announces milestone crossings.
//
// Each tick the Dispatcher reads fresh progress snapshots through the Store and
// decides, per goal, whether a milestone notification is due. Every milestone
// fires at most once per goal for the life of the Dispatcher.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"energy_tracker/internal/logger"
	"energy_tracker/internal/models"
)

// Store is the storage port the monitor is built against.
type Store interface {
	GetGoals(ctx context.Context, accountID int) ([]models.Goal, error)
	CalculateGoalProgress(ctx context.Context, accountID int) ([]models.GoalProgressSnapshot, error)
	AddNotification(ctx context.Context, accountID int, n models.Notification) (string, error)
	GetNotifications(ctx context.Context, accountID int) ([]models.Notification, error)
	MarkNotificationAsRead(ctx context.Context, id string) error
	DeleteNotification(ctx context.Context, id string) error
}

// Notifier creates user-facing notifications.
type Notifier interface {
	Create(ctx context.Context, accountID int, typ models.NotificationType, title, message string) (models.Notification, error)
}

// AccountLister enumerates the accounts CheckAll visits.
type AccountLister interface {
	ListAccountIDs(ctx context.Context) ([]int, error)
}

// Fired describes one milestone notification that was created.
type Fired struct {
	GoalID       int                 `json:"goal_id"`
	GoalType     models.GoalType     `json:"goal_type"`
	Milestone    Milestone           `json:"milestone"`
	Progress     float64             `json:"progress"`
	Notification models.Notification `json:"notification"`
}

// CheckResult is the outcome of one account's check.
type CheckResult struct {
	Fired   []Fired `json:"fired"`
	Failed  int     `json:"failed"`  // notifications that could not be created; retried next tick
	Blocked int     `json:"blocked"` // goals skipped because their target is not positive
}

type Dispatcher struct {
	mu       sync.Mutex // guards tracker; scheduler ticks and manual checks can overlap
	store    Store
	notifier Notifier
	accounts AccountLister
	tracker  *Tracker
	metrics  *Metrics
	log      *logger.Logger
}

// NewDispatcher wires a dispatcher with a fresh tracker. A nil metrics uses the
// process-wide collectors; a nil log discards output.
func NewDispatcher(store Store, notifier Notifier, accounts AccountLister, metrics *Metrics, log *logger.Logger) *Dispatcher {
	if metrics == nil {
		metrics = defaultMetrics()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		store:    store,
		notifier: notifier,
		accounts: accounts,
		tracker:  NewTracker(),
		metrics:  metrics,
		log:      log,
	}
}

// Check evaluates every goal of one account and creates the notifications that
// are due. Only a failure to read progress is returned as an error.
func (d *Dispatcher) Check(ctx context.Context, accountID int) (CheckResult, error) {
	snaps, err := d.store.CalculateGoalProgress(ctx, accountID)
	if err != nil {
		return CheckResult{}, fmt.Errorf("calculate goal progress for account %d: %w", accountID, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	res := CheckResult{Fired: []Fired{}}
	for _, s := range snaps {
		if s.Blocked {
			res.Blocked++
			d.log.Warnw("goal_progress_blocked", "account_id", accountID, "goal_id", s.GoalID, "target", s.Target)
			continue
		}
		m, ok := d.due(s)
		if !ok {
			continue
		}
		n, err := d.announce(ctx, accountID, s, m)
		if err != nil {
			res.Failed++
			d.metrics.failures.WithLabelValues(string(s.Type)).Inc()
			d.log.Errorw("goal_notification_failed",
				"account_id", accountID, "goal_id", s.GoalID, "milestone", m, "err", err)
			continue
		}
		// latch only after the notification exists
		d.tracker.Latch(s.GoalID, s.Type, m)
		d.metrics.fired.WithLabelValues(string(s.Type), string(m)).Inc()
		d.log.Infow("goal_notification_fired",
			"account_id", accountID, "goal_id", s.GoalID, "milestone", m, "progress", s.Progress)
		res.Fired = append(res.Fired, Fired{
			GoalID:       s.GoalID,
			GoalType:     s.Type,
			Milestone:    m,
			Progress:     s.Progress,
			Notification: n,
		})
	}
	d.metrics.latches.Set(float64(d.tracker.Len()))
	return res, nil
}

// CheckAll runs Check for every account. A failing account is logged and the
// rest are still checked; the error returned is the first one seen.
func (d *Dispatcher) CheckAll(ctx context.Context) error {
	start := time.Now()
	defer func() { d.metrics.tickDuration.Observe(time.Since(start).Seconds()) }()

	if d.accounts == nil {
		return nil
	}
	ids, err := d.accounts.ListAccountIDs(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}

	var first error
	for _, id := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := d.Check(ctx, id); err != nil {
			d.log.Errorw("monitor_check_failed", "account_id", id, "err", err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// due picks the milestone to announce for s, if any. The order matters: the
// 70% branch is tested before the 90% branch, so a goal that jumps from below
// 70% to 90% or more announces 70% first and 90% on the following check.
// Forget releases the latches of a deleted goal.
func (d *Dispatcher) Forget(goalID int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tracker.Forget(goalID)
	d.metrics.latches.Set(float64(d.tracker.Len()))
}

func (d *Dispatcher) due(s models.GoalProgressSnapshot) (Milestone, bool) {
	t := d.tracker
	p := s.Progress

	if p > 100 {
		if !t.Fired(s.GoalID, s.Type, MilestoneExceeds) {
			return MilestoneExceeds, true
		}
		return "", false
	}
	if p >= 100 && !t.Fired(s.GoalID, s.Type, MilestoneDone) {
		return MilestoneDone, true
	}
	if p >= 70 && !t.Fired(s.GoalID, s.Type, Milestone70) {
		return Milestone70, true
	} else if p >= 90 && !t.Fired(s.GoalID, s.Type, Milestone90) {
		return Milestone90, true
	}
	return "", false
}

func (d *Dispatcher) announce(ctx context.Context, accountID int, s models.GoalProgressSnapshot, m Milestone) (models.Notification, error) {
	var msg message
	switch m {
	case MilestoneExceeds:
		msg = exceededMessage(s)
	case MilestoneDone:
		msg = completedMessage(s)
	case Milestone90:
		msg = milestoneMessage(s, 90)
	default:
		msg = milestoneMessage(s, 70)
	}
	return d.notifier.Create(ctx, accountID, msg.Type, msg.Title, msg.Body)
}
