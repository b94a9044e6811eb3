package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/frahmantamala/employee-portal/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Employee Portal",
	Long:  `Client for the employee portal: leaves, attendance, dinner and salary documents.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*internal.Config, error) {
	// environment-only configuration for packaged installs
	if os.Getenv("PORTAL_ENV") == "production" {
		cfg := internal.LoadConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("PORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return &cfg, nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(dinnerCmd)
	rootCmd.AddCommand(salaryCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(officeCmd)
}
