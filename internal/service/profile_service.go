package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"energy_tracker/internal/models"
	"energy_tracker/internal/repository"
)

const defaultHouseholdSize = 1

// ProfileService merges the account and its profile sections into one view.
type ProfileService struct {
	accounts repository.Authorization
	profiles repository.ProfileRepo
	now      func() time.Time
}

func NewProfileService(accounts repository.Authorization, profiles repository.ProfileRepo) *ProfileService {
	return &ProfileService{accounts: accounts, profiles: profiles, now: time.Now}
}

// GetProfile loads the account, then the personal, location and preference
// sections. Missing sections keep their defaults; account name and email win
// over the personal section when set.
func (s *ProfileService) GetProfile(ctx context.Context, accountID int) (models.Profile, error) {
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("load account %d: %w", accountID, err)
	}
	if acc == nil {
		return models.Profile{}, ErrUserNotFound
	}

	p := models.Profile{
		AccountID:   acc.ID,
		Username:    acc.Username,
		FullName:    acc.FullName,
		Email:       acc.Email,
		CreatedAt:   acc.CreatedAt,
		Personal:    models.UserProfile{HouseholdSize: defaultHouseholdSize},
		Location:    models.LocationTariff{ElectricityTariff: models.DefaultTariff},
		Preferences: models.DefaultPreferences(),
	}
	if _, err := s.profiles.LoadSection(ctx, accountID, repository.SectionPersonal, &p.Personal); err != nil {
		return models.Profile{}, err
	}
	if _, err := s.profiles.LoadSection(ctx, accountID, repository.SectionLocation, &p.Location); err != nil {
		return models.Profile{}, err
	}
	if _, err := s.profiles.LoadSection(ctx, accountID, repository.SectionPreferences, &p.Preferences); err != nil {
		return models.Profile{}, err
	}
	if p.Email == "" {
		p.Email = p.Personal.Email
	}
	return p, nil
}

func (s *ProfileService) SavePersonal(ctx context.Context, accountID int, in models.UserProfile) error {
	in.Surname = strings.TrimSpace(in.Surname)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.MiddleName = strings.TrimSpace(in.MiddleName)
	if in.HouseholdSize <= 0 {
		in.HouseholdSize = defaultHouseholdSize
	}
	return s.profiles.SaveSection(ctx, accountID, repository.SectionPersonal, in)
}

// SaveLocation stores the location section. A non-positive tariff is replaced
// with models.DefaultTariff.
func (s *ProfileService) SaveLocation(ctx context.Context, accountID int, in models.LocationTariff) error {
	if in.ElectricityTariff <= 0 {
		in.ElectricityTariff = models.DefaultTariff
	}
	in.UpdatedAt = s.now().UTC()
	return s.profiles.SaveSection(ctx, accountID, repository.SectionLocation, in)
}

func (s *ProfileService) SavePreferences(ctx context.Context, accountID int, in models.Preferences) error {
	return s.profiles.SaveSection(ctx, accountID, repository.SectionPreferences, in)
}

// loadTariff reads only the location section and returns its rate, or the default.
func loadTariff(ctx context.Context, profiles repository.ProfileRepo, accountID int) (float64, error) {
	var loc models.LocationTariff
	if _, err := profiles.LoadSection(ctx, accountID, repository.SectionLocation, &loc); err != nil {
		return 0, fmt.Errorf("load tariff for account %d: %w", accountID, err)
	}
	if loc.ElectricityTariff > 0 {
		return loc.ElectricityTariff, nil
	}
	return models.DefaultTariff, nil
}
