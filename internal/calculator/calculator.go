// Package calculator holds the stateless energy calculators. Inputs that are
// missing or not numeric count as zero; nothing here returns an error.
package calculator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"energy_tracker/internal/models"
)

const (
	// GridEmissionFactor is kg CO2 per kWh used by the carbon calculator.
	GridEmissionFactor = 0.6032
	// ScenarioEmissionFactor is kg CO2 per kWh used for appliance scenarios.
	ScenarioEmissionFactor = 0.5
	// DaysPerMonth is the month length used for monthly projections.
	DaysPerMonth = 30
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Coerce turns a form value into a number. Strings are read up to the first
// non-numeric character ("12kWh" is 12); anything unreadable becomes 0.
func Coerce(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case bool:
		return 0
	case string:
		m := leadingNumber.FindString(strings.TrimSpace(x))
		if m == "" {
			return 0
		}
		p, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0
		}
		f = p
	case fmt.Stringer:
		return Coerce(x.String())
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ResolveTariff picks the first positive rate among the entered value and the
// profile rate, falling back to models.DefaultTariff.
func ResolveTariff(entered any, profileTariff float64) float64 {
	if t := Coerce(entered); t != 0 {
		return t
	}
	if profileTariff != 0 {
		return profileTariff
	}
	return models.DefaultTariff
}

type CarbonResult struct {
	ConsumptionKWh float64 `json:"consumption_kwh"`
	EmissionsKg    float64 `json:"emissions_kg"`
	Display        string  `json:"display"` // "60.32"
}

// Carbon converts consumption to kg CO2.
func Carbon(consumption any) CarbonResult {
	kwh := Coerce(consumption)
	kg := kwh * GridEmissionFactor
	return CarbonResult{ConsumptionKWh: kwh, EmissionsKg: kg, Display: fixed2(kg)}
}

type BillResult struct {
	Reading float64 `json:"reading"`
	Tariff  float64 `json:"tariff"`
	Amount  float64 `json:"amount"`
	Display string  `json:"display"` // "₱110.00"
}

// Bill estimates the bill for a meter reading.
func Bill(reading, tariff any, profileTariff float64) BillResult {
	r := Coerce(reading)
	t := ResolveTariff(tariff, profileTariff)
	amount := r * t
	return BillResult{Reading: r, Tariff: t, Amount: amount, Display: Peso(amount)}
}

type ScenarioResult struct {
	Appliance        string  `json:"appliance"`
	Hours            float64 `json:"hours"`
	Tariff           float64 `json:"tariff"`
	DailyConsumption float64 `json:"daily_consumption_kwh"`
	DailyCost        float64 `json:"daily_cost"`
	MonthlyCost      float64 `json:"monthly_cost"`
	DailyCarbon      float64 `json:"daily_carbon_kg"`

	DailyCostDisplay   string `json:"daily_cost_display"`
	MonthlyCostDisplay string `json:"monthly_cost_display"`
	DailyCarbonDisplay string `json:"daily_carbon_display"`
}

// Scenario projects the cost of running one appliance for hours per day.
func Scenario(a models.Appliance, hours, tariff any, profileTariff float64) ScenarioResult {
	h := Coerce(hours)
	t := ResolveTariff(tariff, profileTariff)

	daily := float64(a.Wattage) * h / 1000
	dailyCost := daily * t
	monthlyCost := dailyCost * DaysPerMonth
	dailyCarbon := daily * ScenarioEmissionFactor

	return ScenarioResult{
		Appliance:          a.Name,
		Hours:              h,
		Tariff:             t,
		DailyConsumption:   daily,
		DailyCost:          dailyCost,
		MonthlyCost:        monthlyCost,
		DailyCarbon:        dailyCarbon,
		DailyCostDisplay:   Peso(dailyCost),
		MonthlyCostDisplay: Peso(monthlyCost),
		DailyCarbonDisplay: fixed2(dailyCarbon) + " kg",
	}
}

// Peso formats an amount of money, e.g. "₱55.00".
func Peso(v float64) string {
	return "₱" + fixed2(v)
}

func fixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
