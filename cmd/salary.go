package cmd

import (
	"fmt"
	"time"

	"github.com/frahmantamala/employee-portal/internal/salary"
	"github.com/spf13/cobra"
)

var (
	salaryMonth int
	salaryYear  int
)

var salaryCmd = &cobra.Command{
	Use:   "salary",
	Short: "Salary slips and annual package",
}

var salarySlipCmd = &cobra.Command{
	Use:   "slip",
	Short: "Fetch a salary slip and generate its document",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		dto := salary.SlipQueryDTO{Month: salaryMonth, Year: salaryYear}
		if err := app.Salary.FetchSlip(ctx, dto); err != nil {
			return err
		}

		path, err := app.Salary.GenerateSlipDocument()
		if err != nil {
			return err
		}

		slip := app.Store.SalaryState().Slip.Data
		fmt.Printf("net pay %d %s, document written to %s\n", slip.NetPay, slip.Currency, path)
		return nil
	},
}

var salaryPackageCmd = &cobra.Command{
	Use:   "package",
	Short: "Fetch the annual package, falling back through earlier years",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		if err := app.Salary.FetchAnnualPackage(ctx, salaryYear, salary.DefaultYearsBack); err != nil {
			return err
		}

		path, err := app.Salary.GeneratePackageDocument()
		if err != nil {
			return err
		}

		pkg := app.Store.SalaryState().Package.Data
		fmt.Printf("annual package %d: gross %d, net %d %s, document at %s\n",
			pkg.Year, pkg.GrossAnnual, pkg.NetAnnual, pkg.Currency, path)
		return nil
	},
}

func init() {
	now := time.Now()
	salarySlipCmd.Flags().IntVar(&salaryMonth, "month", int(now.Month()), "slip month")
	salarySlipCmd.Flags().IntVar(&salaryYear, "year", now.Year(), "slip year")
	salaryPackageCmd.Flags().IntVar(&salaryYear, "year", now.Year(), "package year to start from")

	salaryCmd.AddCommand(salarySlipCmd)
	salaryCmd.AddCommand(salaryPackageCmd)
}
