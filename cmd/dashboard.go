package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the dashboard statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		if err := app.Auth.FetchDashboard(ctx); err != nil {
			return err
		}

		stats := app.Store.AuthState().Dashboard.Data
		fmt.Printf("present days:     %d\n", stats.PresentDays)
		fmt.Printf("absent days:      %d\n", stats.AbsentDays)
		fmt.Printf("leaves taken:     %d\n", stats.LeavesTaken)
		fmt.Printf("leaves remaining: %d\n", stats.LeavesRemaining)
		fmt.Printf("pending leaves:   %d\n", stats.PendingLeaves)
		fmt.Printf("hours this month: %.1f\n", stats.HoursThisMonth)
		return nil
	},
}
