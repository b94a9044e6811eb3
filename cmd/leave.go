package cmd

import (
	"fmt"
	"time"

	"github.com/frahmantamala/employee-portal/internal/leave"
	"github.com/spf13/cobra"
)

var (
	leaveCategory string
	leaveType     string
	leaveStart    string
	leaveEnd      string
	leaveReason   string
	rejectReason  string
)

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Leave requests",
}

var leaveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your leave requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		if err := app.Leave.FetchLeaves(ctx); err != nil {
			return err
		}

		for _, req := range app.Store.LeaveState().List.Data {
			fmt.Printf("#%d %s %s to %s [%s] %s\n",
				req.ID, req.LeaveType,
				req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"),
				req.Status, req.Reason)
		}
		return nil
	},
}

var leaveAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Submit a leave request",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		start, err := time.Parse("2006-01-02", leaveStart)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		end := start
		if leaveEnd != "" {
			end, err = time.Parse("2006-01-02", leaveEnd)
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}
		}

		dto := leave.AddLeaveDTO{
			Category:  leaveCategory,
			LeaveType: leaveType,
			StartDate: start,
			EndDate:   end,
			Reason:    leaveReason,
		}
		if err := app.Leave.AddLeave(ctx, dto); err != nil {
			return err
		}

		fmt.Printf("leave request #%d submitted\n", app.Store.LeaveState().Add.Data.ID)
		return nil
	},
}

var leaveApproveCmd = &cobra.Command{
	Use:   "approve <leave-id>",
	Short: "Approve a pending leave request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid leave id %q", args[0])
		}

		if err := app.Leave.Approve(ctx, id); err != nil {
			return err
		}
		fmt.Printf("leave #%d approved\n", id)
		return nil
	},
}

var leaveRejectCmd = &cobra.Command{
	Use:   "reject <leave-id>",
	Short: "Reject a pending leave request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid leave id %q", args[0])
		}

		dto := leave.RejectLeaveDTO{Reason: rejectReason}
		if err := app.Leave.Reject(ctx, id, dto); err != nil {
			return err
		}
		fmt.Printf("leave #%d rejected\n", id)
		return nil
	},
}

var leaveEmployeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "List employees with leave requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		if err := app.Leave.FetchEmployees(ctx); err != nil {
			return err
		}

		for _, emp := range app.Store.LeaveState().Employees.Data {
			fmt.Printf("%s (#%d): %d pending\n", emp.EmployeeName, emp.EmployeeID, emp.PendingCount)
		}
		return nil
	},
}

func init() {
	leaveAddCmd.Flags().StringVar(&leaveCategory, "category", "", "leave category")
	leaveAddCmd.Flags().StringVar(&leaveType, "type", "single_day", "half_day, single_day or multi_day")
	leaveAddCmd.Flags().StringVar(&leaveStart, "start", "", "start date (YYYY-MM-DD)")
	leaveAddCmd.Flags().StringVar(&leaveEnd, "end", "", "end date (YYYY-MM-DD, multi day only)")
	leaveAddCmd.Flags().StringVar(&leaveReason, "reason", "", "reason for the leave")
	leaveRejectCmd.Flags().StringVar(&rejectReason, "reason", "", "rejection reason")

	leaveCmd.AddCommand(leaveListCmd)
	leaveCmd.AddCommand(leaveAddCmd)
	leaveCmd.AddCommand(leaveApproveCmd)
	leaveCmd.AddCommand(leaveRejectCmd)
	leaveCmd.AddCommand(leaveEmployeesCmd)
}
