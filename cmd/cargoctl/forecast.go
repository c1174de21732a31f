package main

import (
	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast upcoming expirations and usage depletion",
}

var forecastExpirationsCmd = &cobra.Command{
	Use:   "expirations",
	Short: "List items expiring within the given number of days",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		sess, err := openSession()
		if err != nil {
			return err
		}
		forecasts, err := sess.svc.ForecastExpirations(backgroundCtx, days)
		if err != nil {
			return err
		}
		printSuccess("%d item(s) expiring within %d day(s)", len(forecasts), days)
		for _, f := range forecasts {
			printStatus(f.Item.ID, "%s in %d day(s)", f.Item.Name, f.DaysUntil)
		}
		return nil
	},
}

var forecastUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "List items projected to deplete their usage budget within the given number of days",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		sess, err := openSession()
		if err != nil {
			return err
		}
		forecasts, err := sess.svc.ForecastUsageDepletion(backgroundCtx, days)
		if err != nil {
			return err
		}
		printSuccess("%d item(s) projected to deplete within %d day(s)", len(forecasts), days)
		for _, f := range forecasts {
			printStatus(f.Item.ID, "%s in %.1f day(s)", f.Item.Name, f.DaysUntilUsedUp)
		}
		return nil
	},
}

func init() {
	forecastExpirationsCmd.Flags().Int("days", 30, "forecast window in days")
	forecastUsageCmd.Flags().Int("days", 30, "forecast window in days")

	forecastCmd.AddCommand(forecastExpirationsCmd)
	forecastCmd.AddCommand(forecastUsageCmd)
}
