package handlers

import (
	"context"
	"net/http"

	"energy_tracker/internal/calculator"
	"energy_tracker/internal/inbox"
	"energy_tracker/internal/models"
	"energy_tracker/internal/monitor"
	"energy_tracker/internal/progress"
	"energy_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error
	deleteErr     error

	lastSignUp      service.SignUpInput
	lastGenUsername string
	lastGenPassword string
	lastParseToken  string
	deleted         []int
}

func (m *mockAuth) SignUp(_ context.Context, in service.SignUpInput) (int, error) {
	m.lastSignUp = in
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}
func (m *mockAuth) DeleteAccount(_ context.Context, accountID int, _ string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, accountID)
	return nil
}

type mockProfiles struct {
	profile      models.Profile
	err          error
	lastLocation models.LocationTariff
}

func (m *mockProfiles) GetProfile(context.Context, int) (models.Profile, error) {
	return m.profile, m.err
}
func (m *mockProfiles) SavePersonal(context.Context, int, models.UserProfile) error { return m.err }
func (m *mockProfiles) SaveLocation(_ context.Context, _ int, in models.LocationTariff) error {
	m.lastLocation = in
	return m.err
}
func (m *mockProfiles) SavePreferences(context.Context, int, models.Preferences) error { return m.err }

type mockAppliances struct {
	list      []models.Appliance
	addErr    error
	deleteErr error
	lastAdd   models.Appliance
}

func (m *mockAppliances) AddAppliance(_ context.Context, accountID int, a models.Appliance) (models.Appliance, error) {
	m.lastAdd = a
	if m.addErr != nil {
		return models.Appliance{}, m.addErr
	}
	a.ID, a.AccountID = 1, accountID
	return a, nil
}
func (m *mockAppliances) ListAppliances(context.Context, int) ([]models.Appliance, error) {
	return m.list, nil
}
func (m *mockAppliances) DeleteAppliance(context.Context, int, int) error { return m.deleteErr }
func (m *mockAppliances) Breakdown(context.Context, int) ([]progress.BreakdownEntry, error) {
	return progress.Breakdown(m.list), nil
}

type mockGoals struct {
	views    []service.GoalView
	addErr   error
	check    monitor.CheckResult
	checkErr error
	checked  []int
}

func (m *mockGoals) AddGoal(_ context.Context, accountID int, typ string, target float64) (models.Goal, error) {
	if m.addErr != nil {
		return models.Goal{}, m.addErr
	}
	t, _ := models.ParseGoalType(typ)
	return models.Goal{ID: 1, AccountID: accountID, Type: t, Target: target, Unit: t.Unit()}, nil
}
func (m *mockGoals) ListGoals(context.Context, int) ([]service.GoalView, error) { return m.views, nil }
func (m *mockGoals) DeleteGoal(context.Context, int, int) error                 { return nil }
func (m *mockGoals) CheckGoals(_ context.Context, accountID int) (monitor.CheckResult, error) {
	m.checked = append(m.checked, accountID)
	return m.check, m.checkErr
}

type mockCalculators struct {
	tariff float64
}

func (m *mockCalculators) CalcCarbon(consumption any) calculator.CarbonResult {
	return calculator.Carbon(consumption)
}
func (m *mockCalculators) CalcBill(_ context.Context, _ int, reading, tariff any) (calculator.BillResult, error) {
	return calculator.Bill(reading, tariff, m.tariff), nil
}
func (m *mockCalculators) CalcScenario(_ context.Context, _ int, applianceID int, hours, tariff any) (calculator.ScenarioResult, error) {
	if applianceID != 1 {
		return calculator.ScenarioResult{}, service.ErrApplianceNotFound
	}
	return calculator.Scenario(models.Appliance{ID: 1, Name: "Fan", Wattage: 100}, hours, tariff, m.tariff), nil
}
func (m *mockCalculators) Stats(context.Context, int) (service.Stats, error) {
	return service.Stats{DailyUsageKWh: 1, MonthlyUsageKWh: 30}, nil
}

type mockNotifications struct {
	summary    inbox.Summary
	summaryErr error
	createErr  error
	markErr    error
	clearErr   error
	forgotten  []int
	lastClear  bool
	created    []models.Notification
}

func (m *mockNotifications) Create(_ context.Context, accountID int, typ models.NotificationType, title, message string) (models.Notification, error) {
	if m.createErr != nil {
		return models.Notification{}, m.createErr
	}
	n := models.Notification{ID: "n1", AccountID: accountID, Type: typ, Title: title, Message: message}
	m.created = append(m.created, n)
	return n, nil
}
func (m *mockNotifications) List(context.Context, int) ([]models.Notification, error) {
	return m.summary.Notifications, m.summaryErr
}
func (m *mockNotifications) UnreadCount(context.Context, int) (int, error) {
	return m.summary.UnreadCount, m.summaryErr
}
func (m *mockNotifications) Summary(context.Context, int) (inbox.Summary, error) {
	return m.summary, m.summaryErr
}
func (m *mockNotifications) MarkRead(context.Context, int, string) error { return m.markErr }
func (m *mockNotifications) MarkAllRead(context.Context, int) (int, error) {
	return m.summary.UnreadCount, m.markErr
}
func (m *mockNotifications) Delete(context.Context, int, string) error { return m.markErr }
func (m *mockNotifications) ClearAll(_ context.Context, _ int, confirmed bool) (inbox.ClearResult, error) {
	m.lastClear = confirmed
	if m.clearErr != nil {
		return inbox.ClearResult{}, m.clearErr
	}
	return inbox.ClearResult{Deleted: len(m.summary.Notifications)}, nil
}
func (m *mockNotifications) Forget(accountID int) { m.forgotten = append(m.forgotten, accountID) }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
