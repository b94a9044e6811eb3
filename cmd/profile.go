package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the logged-in user's details",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		if err := app.Auth.FetchProfile(ctx); err != nil {
			return err
		}

		user := app.Store.AuthState().Profile.Data
		fmt.Printf("name:  %s\n", user.Name)
		fmt.Printf("email: %s\n", user.Email)
		fmt.Printf("role:  %s\n", user.RoleName)
		if user.Phone != "" {
			fmt.Printf("phone: %s\n", user.Phone)
		}
		if user.JoiningDate != nil {
			fmt.Printf("joined: %s\n", user.JoiningDate.Format("2006-01-02"))
		}
		return nil
	},
}
