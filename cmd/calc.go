package main

import (
	"fmt"

	"energy_tracker/internal/calculator"
	"energy_tracker/internal/models"

	"github.com/spf13/cobra"
)

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run the energy calculators offline",
	}
	cmd.AddCommand(newCarbonCmd(), newBillCmd(), newScenarioCmd())
	return cmd
}

func newCarbonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "carbon <kwh>",
		Short: "Carbon footprint of a consumption in kWh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := calculator.Carbon(args[0])
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s kg CO2 for %s kWh\n", res.Display, formatNumber(res.ConsumptionKWh))
			return err
		},
	}
}

func newBillCmd() *cobra.Command {
	var tariff string
	cmd := &cobra.Command{
		Use:   "bill <kwh>",
		Short: "Estimated bill for a meter reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := calculator.Bill(args[0], tariff, models.DefaultTariff)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s at %s/kWh\n", res.Display, calculator.Peso(res.Tariff))
			return err
		},
	}
	cmd.Flags().StringVar(&tariff, "tariff", "", "rate per kWh (default 11.00)")
	return cmd
}

func newScenarioCmd() *cobra.Command {
	var (
		wattage int
		hours   string
		tariff  string
		name    string
	)
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Daily and monthly cost of running one appliance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if wattage <= 0 {
				return fmt.Errorf("--wattage must be positive")
			}
			a := models.Appliance{Name: name, Wattage: wattage}
			res := calculator.Scenario(a, hours, tariff, models.DefaultTariff)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s at %s h/day\n", res.Appliance, formatNumber(res.Hours))
			fmt.Fprintf(out, "daily cost:   %s\n", res.DailyCostDisplay)
			fmt.Fprintf(out, "monthly cost: %s\n", res.MonthlyCostDisplay)
			_, err := fmt.Fprintf(out, "daily carbon: %s\n", res.DailyCarbonDisplay)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "appliance", "appliance name")
	cmd.Flags().IntVar(&wattage, "wattage", 0, "appliance power in watts")
	cmd.Flags().StringVar(&hours, "hours", "0", "hours of use per day")
	cmd.Flags().StringVar(&tariff, "tariff", "", "rate per kWh (default 11.00)")
	return cmd
}

func formatNumber(v float64) string {
	return models.FormatTarget(v)
}
