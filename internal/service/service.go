package service

import (
	"context"
	"fmt"
	"time"

	"energy_tracker/internal/calculator"
	"energy_tracker/internal/inbox"
	"energy_tracker/internal/logger"
	"energy_tracker/internal/models"
	"energy_tracker/internal/monitor"
	"energy_tracker/internal/progress"
	"energy_tracker/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, in SignUpInput) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
	DeleteAccount(ctx context.Context, accountID int, password string) error
}

// Profiles reads the merged profile and writes its sections.
type Profiles interface {
	GetProfile(ctx context.Context, accountID int) (models.Profile, error)
	SavePersonal(ctx context.Context, accountID int, in models.UserProfile) error
	SaveLocation(ctx context.Context, accountID int, in models.LocationTariff) error
	SavePreferences(ctx context.Context, accountID int, in models.Preferences) error
}

type Appliances interface {
	AddAppliance(ctx context.Context, accountID int, a models.Appliance) (models.Appliance, error)
	ListAppliances(ctx context.Context, accountID int) ([]models.Appliance, error)
	DeleteAppliance(ctx context.Context, accountID, id int) error
	Breakdown(ctx context.Context, accountID int) ([]progress.BreakdownEntry, error)
}

type Goals interface {
	AddGoal(ctx context.Context, accountID int, typ string, target float64) (models.Goal, error)
	ListGoals(ctx context.Context, accountID int) ([]GoalView, error)
	DeleteGoal(ctx context.Context, accountID, id int) error
	CheckGoals(ctx context.Context, accountID int) (monitor.CheckResult, error)
}

type Calculators interface {
	CalcCarbon(consumption any) calculator.CarbonResult
	CalcBill(ctx context.Context, accountID int, reading, tariff any) (calculator.BillResult, error)
	CalcScenario(ctx context.Context, accountID, applianceID int, hours, tariff any) (calculator.ScenarioResult, error)
	Stats(ctx context.Context, accountID int) (Stats, error)
}

// Notifications is the per-account inbox.
type Notifications interface {
	Create(ctx context.Context, accountID int, typ models.NotificationType, title, message string) (models.Notification, error)
	List(ctx context.Context, accountID int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, accountID int) (int, error)
	Summary(ctx context.Context, accountID int) (inbox.Summary, error)
	MarkRead(ctx context.Context, accountID int, id string) error
	MarkAllRead(ctx context.Context, accountID int) (int, error)
	Delete(ctx context.Context, accountID int, id string) error
	ClearAll(ctx context.Context, accountID int, confirmed bool) (inbox.ClearResult, error)
	Forget(accountID int)
}

// Monitor runs the background goal check loop.
// Stop via context cancellation in main() for graceful shutdown.
type Monitor interface {
	Run(ctx context.Context)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Profiles
	Appliances
	Goals
	Calculators
	Notifications
	Monitor
}

// Config carries the settings the services read from configuration.
type Config struct {
	SigningKey      string
	TokenTTL        time.Duration
	InboxCacheSize  int
	MonitorDelay    time.Duration
	MonitorInterval time.Duration
	MonitorClock    monitor.Clock    // nil uses the wall clock
	Metrics         *monitor.Metrics // nil registers with the default registry
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config, log *logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.Nop()
	}
	store := NewEnergyStore(repos)

	box, err := inbox.New(store, cfg.InboxCacheSize, log)
	if err != nil {
		return nil, fmt.Errorf("init inbox: %w", err)
	}
	dispatcher := monitor.NewDispatcher(store, box, store, cfg.Metrics, log)
	scheduler := monitor.NewScheduler(dispatcher, monitor.SchedulerConfig{
		InitialDelay: cfg.MonitorDelay,
		Interval:     cfg.MonitorInterval,
		Clock:        cfg.MonitorClock,
	}, log)

	return &Service{
		Authorization: NewAuthService(repos.Auth, cfg.SigningKey, cfg.TokenTTL),
		Profiles:      NewProfileService(repos.Auth, repos.Profiles),
		Appliances:    NewApplianceService(repos.Appliances),
		Goals:         NewGoalService(repos.Goals, store, dispatcher),
		Calculators:   NewCalculatorService(repos, store),
		Notifications: box,
		Monitor:       scheduler,
	}, nil
}
