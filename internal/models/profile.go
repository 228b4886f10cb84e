package models

import (
	"strings"
	"time"
)

// DefaultTariff is the electricity rate (₱/kWh) used when none is configured.
const DefaultTariff = 11.00

// UserProfile holds the personal-information section of a profile.
type UserProfile struct {
	Surname       string `json:"surname,omitempty"`
	FirstName     string `json:"first_name,omitempty"`
	MiddleName    string `json:"middle_name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	HouseholdSize int    `json:"household_size,omitempty"`
}

// LocationTariff holds where the user lives and what they pay per kWh.
type LocationTariff struct {
	Region              string    `json:"region,omitempty"`
	Province            string    `json:"province,omitempty"`
	City                string    `json:"city,omitempty"`
	ZipCode             string    `json:"zip_code,omitempty"`
	ElectricityProvider string    `json:"electricity_provider,omitempty"`
	ElectricityTariff   float64   `json:"electricity_tariff,omitempty"` // ₱/kWh
	UpdatedAt           time.Time `json:"updated_at,omitzero"`
}

// Preferences are display and alerting settings.
type Preferences struct {
	EnergyUnit         string `json:"energy_unit,omitempty"`
	CarbonUnit         string `json:"carbon_unit,omitempty"`
	TimeFormat         string `json:"time_format,omitempty"`
	DateFormat         string `json:"date_format,omitempty"`
	DarkMode           bool   `json:"dark_mode"`
	BudgetAlerts       bool   `json:"budget_alerts"`
	GoalProgressAlerts bool   `json:"goal_progress_alerts"`
}

// DefaultPreferences mirrors the settings a fresh account starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		EnergyUnit:         "kWh",
		CarbonUnit:         "kg",
		TimeFormat:         "12h",
		DateFormat:         "MM/DD/YYYY",
		BudgetAlerts:       true,
		GoalProgressAlerts: true,
	}
}

// Profile is the merged, read-only view of an account and its profile sections.
type Profile struct {
	AccountID int       `json:"account_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Personal    UserProfile    `json:"personal"`
	Location    LocationTariff `json:"location"`
	Preferences Preferences    `json:"preferences"`
}

// DisplayName returns "First Surname", falling back to the account name and then "User".
func (p Profile) DisplayName() string {
	name := strings.TrimSpace(p.Personal.FirstName + " " + p.Personal.Surname)
	if name != "" {
		return name
	}
	if p.FullName != "" {
		return p.FullName
	}
	return "User"
}

// LocationText renders the location line shown next to the user's name.
func (p Profile) LocationText() string {
	l := p.Location
	switch {
	case l.City != "" && l.Region != "":
		return l.City + ", " + l.Province + ", " + l.Region
	case l.City != "":
		return l.City
	case l.Region != "":
		return l.Region
	case l.Province != "":
		return l.Province
	default:
		return "Set your location"
	}
}

// Tariff returns the configured electricity rate or DefaultTariff.
func (p Profile) Tariff() float64 {
	if p.Location.ElectricityTariff > 0 {
		return p.Location.ElectricityTariff
	}
	return DefaultTariff
}
