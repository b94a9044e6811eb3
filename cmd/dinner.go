package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dinnerItemID int64

var dinnerCmd = &cobra.Command{
	Use:   "dinner",
	Short: "Dinner menu and selection",
}

var dinnerMenuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show today's dinner menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		if err := app.Dinner.FetchMenu(ctx); err != nil {
			return err
		}

		menu := app.Store.DinnerState().Menu.Data
		fmt.Printf("menu for %s (%s), select before %s\n",
			menu.Date.Format("2006-01-02"), menu.MealType,
			menu.Deadline.Format("15:04"))
		for _, item := range menu.Items {
			kind := "non-veg"
			if item.IsVeg {
				kind = "veg"
			}
			fmt.Printf("  #%d %s (%s)\n", item.ID, item.Name, kind)
		}
		return nil
	},
}

var dinnerSelectCmd = &cobra.Command{
	Use:   "select <veg|non_veg>",
	Short: "Toggle a meal side and store the selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		if err := app.Dinner.Toggle(args[0]); err != nil {
			return err
		}
		if dinnerItemID > 0 {
			app.Dinner.SelectItem(dinnerItemID)
		}

		if err := app.Dinner.StoreSelection(ctx); err != nil {
			return err
		}

		sel := app.Store.DinnerState().Selection
		fmt.Printf("selection stored: veg=%v non_veg=%v item=%d\n", sel.Veg, sel.NonVeg, sel.FoodItemID)
		return nil
	},
}

func init() {
	dinnerSelectCmd.Flags().Int64Var(&dinnerItemID, "item", 0, "food item id")

	dinnerCmd.AddCommand(dinnerMenuCmd)
	dinnerCmd.AddCommand(dinnerSelectCmd)
}
