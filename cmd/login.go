package cmd

import (
	"fmt"

	"github.com/frahmantamala/employee-portal/internal/auth"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the portal",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, cancel := app.opContext()
		defer cancel()

		dto := auth.LoginDTO{Email: loginEmail, Password: loginPassword}
		if err := app.Auth.Login(ctx, dto); err != nil {
			return err
		}

		state := app.Store.AuthState()
		fmt.Printf("logged in as %s\n", state.Session.CurrentUser.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.Auth.Logout(); err != nil {
			return err
		}

		fmt.Println("logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "portal email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "portal password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
