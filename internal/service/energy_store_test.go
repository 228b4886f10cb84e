package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"energy_tracker/internal/models"
	"energy_tracker/internal/repository"
)

// memProfiles keeps profile sections as JSON, like the SQLite repo does.
type memProfiles struct {
	docs    map[string][]byte
	loadErr error
}

func newMemProfiles() *memProfiles { return &memProfiles{docs: map[string][]byte{}} }

func sectionKey(accountID int, section string) string {
	return fmt.Sprintf("%d/%s", accountID, section)
}

func (m *memProfiles) SaveSection(_ context.Context, accountID int, section string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.docs[sectionKey(accountID, section)] = b
	return nil
}

func (m *memProfiles) LoadSection(_ context.Context, accountID int, section string, dst any) (bool, error) {
	if m.loadErr != nil {
		return false, m.loadErr
	}
	b, ok := m.docs[sectionKey(accountID, section)]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

type memAppliances struct {
	items []models.Appliance
}

func (m *memAppliances) Add(_ context.Context, a models.Appliance) (int, error) {
	a.ID = len(m.items) + 1
	m.items = append(m.items, a)
	return a.ID, nil
}

func (m *memAppliances) List(_ context.Context, accountID int) ([]models.Appliance, error) {
	var out []models.Appliance
	for _, a := range m.items {
		if a.AccountID == accountID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAppliances) Delete(_ context.Context, accountID, id int) error {
	for i, a := range m.items {
		if a.ID == id && a.AccountID == accountID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memGoals struct {
	items   []models.Goal
	updates map[int]float64
}

func (m *memGoals) Add(_ context.Context, g models.Goal) (int, error) {
	g.ID = len(m.items) + 1
	m.items = append(m.items, g)
	return g.ID, nil
}

func (m *memGoals) List(_ context.Context, accountID int) ([]models.Goal, error) {
	var out []models.Goal
	for _, g := range m.items {
		if g.AccountID == accountID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *memGoals) UpdateCurrent(_ context.Context, id int, current float64, _ time.Time) error {
	if m.updates == nil {
		m.updates = map[int]float64{}
	}
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Current = current
			m.updates[id] = current
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memGoals) Delete(_ context.Context, accountID, id int) error {
	for i, g := range m.items {
		if g.ID == id && g.AccountID == accountID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memNotifications struct {
	items []models.Notification
	err   error
}

func (m *memNotifications) Append(_ context.Context, n models.Notification) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	n.ID = fmt.Sprintf("n%d", len(m.items)+1)
	m.items = append(m.items, n)
	return n.ID, nil
}

func (m *memNotifications) List(_ context.Context, accountID int) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range m.items {
		if n.AccountID == accountID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotifications) MarkRead(_ context.Context, id string) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Read = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memNotifications) Delete(_ context.Context, id string) error {
	for i, n := range m.items {
		if n.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memRepos struct {
	*repository.Repository
	profiles      *memProfiles
	appliances    *memAppliances
	goals         *memGoals
	notifications *memNotifications
}

func newMemRepos(auth repository.Authorization) memRepos {
	r := memRepos{
		profiles:      newMemProfiles(),
		appliances:    &memAppliances{},
		goals:         &memGoals{},
		notifications: &memNotifications{},
	}
	r.Repository = &repository.Repository{
		Auth:          auth,
		Profiles:      r.profiles,
		Appliances:    r.appliances,
		Goals:         r.goals,
		Notifications: r.notifications,
	}
	return r
}

func TestEnergyStore_CalculateGoalProgress(t *testing.T) {
	repos := newMemRepos(&mockAuthRepo{})
	ctx := context.Background()
	// 1 kWh/day -> 30 kWh/month
	_, _ = repos.appliances.Add(ctx, models.Appliance{AccountID: 1, Name: "Heater", Wattage: 500, UsageHours: 2})
	_, _ = repos.goals.Add(ctx, models.Goal{AccountID: 1, Type: models.GoalConsumption, Target: 40})
	_, _ = repos.goals.Add(ctx, models.Goal{AccountID: 1, Type: models.GoalCost, Target: 264})
	_, _ = repos.goals.Add(ctx, models.Goal{AccountID: 1, Type: models.GoalCarbon, Target: 0})

	store := NewEnergyStore(repos.Repository)
	snaps, err := store.CalculateGoalProgress(ctx, 1)
	if err != nil {
		t.Fatalf("CalculateGoalProgress returned error: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snaps))
	}
	if snaps[0].Current != 30 || snaps[0].Progress != 75 {
		t.Errorf("consumption snapshot = %+v", snaps[0])
	}
	// default tariff 11 -> 330 of 264
	if snaps[1].Current != 330 || snaps[1].Progress != 125 {
		t.Errorf("cost snapshot = %+v", snaps[1])
	}
	if !snaps[2].Blocked {
		t.Errorf("zero-target goal should be blocked: %+v", snaps[2])
	}
	if repos.goals.updates[1] != 30 || repos.goals.updates[2] != 330 {
		t.Errorf("expected current values persisted, got %v", repos.goals.updates)
	}
}

func TestEnergyStore_UsesProfileTariff(t *testing.T) {
	repos := newMemRepos(&mockAuthRepo{})
	ctx := context.Background()
	_, _ = repos.appliances.Add(ctx, models.Appliance{AccountID: 1, Name: "TV", Wattage: 100, UsageHours: 10})
	_ = repos.profiles.SaveSection(ctx, 1, repository.SectionLocation, models.LocationTariff{ElectricityTariff: 12.5})

	u, err := NewEnergyStore(repos.Repository).Usage(ctx, 1)
	if err != nil {
		t.Fatalf("Usage returned error: %v", err)
	}
	if u.KWh != 30 || u.Cost != 375 {
		t.Errorf("unexpected usage %+v", u)
	}
}

func TestEnergyStore_NoGoalsSkipsUsage(t *testing.T) {
	repos := newMemRepos(&mockAuthRepo{})
	repos.profiles.loadErr = errors.New("should not be read")

	snaps, err := NewEnergyStore(repos.Repository).CalculateGoalProgress(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snaps) != 0 {
		t.Fatalf("expected no snapshots, got %d", len(snaps))
	}
}

func TestEnergyStore_AddNotificationStampsAccount(t *testing.T) {
	repos := newMemRepos(&mockAuthRepo{})
	store := NewEnergyStore(repos.Repository)

	id, err := store.AddNotification(context.Background(), 4, models.Notification{Title: "t"})
	if err != nil {
		t.Fatalf("AddNotification returned error: %v", err)
	}
	list, _ := store.GetNotifications(context.Background(), 4)
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("expected stored notification for account 4, got %+v", list)
	}
}
