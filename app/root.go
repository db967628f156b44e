// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agency-admin",
	Short: "agency-admin is the back-office API of the influencer marketing agency",
	Long: `agency-admin is the back-office API of the influencer marketing agency.
It serves platform settings, CMS content, campaigns, influencers, brands
and payments to the admin dashboard.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory holding main.toml")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the config")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Enable dev mode")
}

var (
	configPath string // Path to the configuration directory
	envFile    string // Path to an optional .env file
	devMode    bool
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
