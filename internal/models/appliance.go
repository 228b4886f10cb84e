package models

import "time"

type Appliance struct {
	ID         int       `json:"id"`
	AccountID  int       `json:"account_id"`
	Name       string    `json:"name"`
	Wattage    int       `json:"wattage"`     // W
	UsageHours float64   `json:"usage_hours"` // hours per day
	Category   string    `json:"category,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DailyKWh is the appliance's energy use for one day at its configured hours.
func (a Appliance) DailyKWh() float64 {
	return float64(a.Wattage) * a.UsageHours / 1000
}
