package cmd

import (
	"fmt"
	"time"

	"github.com/frahmantamala/employee-portal/internal/analytics"
	"github.com/spf13/cobra"
)

var (
	hoursMonth int
	hoursYear  int
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Work status and hours",
}

var statusMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Show your work-status history",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		if err := app.Analytics.FetchStatus(ctx); err != nil {
			return err
		}

		for _, entry := range app.Store.AnalyticsState().Status.Data {
			fmt.Printf("%s %s-%s [%s] %s\n",
				entry.Date.Format("2006-01-02"),
				entry.CheckIn, entry.CheckOut, entry.Status, entry.Summary)
		}
		return nil
	},
}

var statusTeamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show your team's submitted work status",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		if err := app.Analytics.FetchTeam(ctx); err != nil {
			return err
		}

		for _, member := range app.Store.AnalyticsState().Team.Data {
			fmt.Printf("%s: %s [%s]\n",
				member.EmployeeName,
				member.Entry.Date.Format("2006-01-02"),
				member.Entry.Status)
		}
		return nil
	},
}

var statusApproveCmd = &cobra.Command{
	Use:   "approve <entry-id>",
	Short: "Approve a work-status entry",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return decideStatus(args[0], true) },
}

var statusRejectCmd = &cobra.Command{
	Use:   "reject <entry-id>",
	Short: "Reject a work-status entry",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return decideStatus(args[0], false) },
}

func decideStatus(arg string, approve bool) error {
	app, err := initApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := app.opContext()
	defer cancel()

	var id int64
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil {
		return fmt.Errorf("invalid entry id %q", arg)
	}

	if err := app.Analytics.Decide(ctx, id, approve); err != nil {
		return err
	}

	verb := "rejected"
	if approve {
		verb = "approved"
	}
	fmt.Printf("entry #%d %s\n", id, verb)
	return nil
}

var statusHoursCmd = &cobra.Command{
	Use:   "hours",
	Short: "Show the monthly hours report",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		dto := analytics.HoursQueryDTO{Month: hoursMonth, Year: hoursYear}
		if err := app.Analytics.FetchHours(ctx, dto); err != nil {
			return err
		}

		report := app.Store.AnalyticsState().Hours.Data
		fmt.Printf("%d/%d: %.1f hours over %d working days (%.1f overtime)\n",
			report.Month, report.Year, report.TotalHours, report.WorkingDays, report.Overtime)
		return nil
	},
}

func init() {
	now := time.Now()
	statusHoursCmd.Flags().IntVar(&hoursMonth, "month", int(now.Month()), "report month")
	statusHoursCmd.Flags().IntVar(&hoursYear, "year", now.Year(), "report year")

	statusCmd.AddCommand(statusMineCmd)
	statusCmd.AddCommand(statusTeamCmd)
	statusCmd.AddCommand(statusApproveCmd)
	statusCmd.AddCommand(statusRejectCmd)
	statusCmd.AddCommand(statusHoursCmd)
}
