package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"energy_tracker/internal/models"
	"energy_tracker/internal/progress"
	"energy_tracker/internal/repository"
)

var (
	ErrApplianceNotFound = errors.New("appliance not found")
	ErrInvalidAppliance  = errors.New("appliance needs a name, a positive wattage and 0-24 usage hours")
)

type ApplianceService struct {
	repo repository.ApplianceRepo
}

func NewApplianceService(repo repository.ApplianceRepo) *ApplianceService {
	return &ApplianceService{repo: repo}
}

func (s *ApplianceService) AddAppliance(ctx context.Context, accountID int, a models.Appliance) (models.Appliance, error) {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" || a.Wattage <= 0 || a.UsageHours < 0 || a.UsageHours > 24 {
		return models.Appliance{}, ErrInvalidAppliance
	}
	a.AccountID = accountID
	id, err := s.repo.Add(ctx, a)
	if err != nil {
		return models.Appliance{}, fmt.Errorf("add appliance: %w", err)
	}
	a.ID = id
	return a, nil
}

func (s *ApplianceService) ListAppliances(ctx context.Context, accountID int) ([]models.Appliance, error) {
	return s.repo.List(ctx, accountID)
}

func (s *ApplianceService) DeleteAppliance(ctx context.Context, accountID, id int) error {
	if err := s.repo.Delete(ctx, accountID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrApplianceNotFound
		}
		return fmt.Errorf("delete appliance %d: %w", id, err)
	}
	return nil
}

// Breakdown is the per-appliance daily usage chart.
func (s *ApplianceService) Breakdown(ctx context.Context, accountID int) ([]progress.BreakdownEntry, error) {
	list, err := s.repo.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return progress.Breakdown(list), nil
}
