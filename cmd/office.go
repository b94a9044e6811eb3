package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var officeCmd = &cobra.Command{
	Use:   "office",
	Short: "List company offices",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		if err := app.Office.FetchOffices(ctx); err != nil {
			return err
		}

		for _, office := range app.Store.OfficeState().List.Data {
			fmt.Printf("#%d %s: %s, %s\n", office.ID, office.Name, office.Address, office.City)
		}
		return nil
	},
}
