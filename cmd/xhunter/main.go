// Package main implements the xhunter CLI for searching the platform and creating Spaces
// from an exported browser session.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/x-hunter/internal/config"
)

var (
	// envPath is the .env file loaded before the environment is read
	envPath string
	version = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "xhunter",
	Short: "Search posts and profiles, and create Spaces, with an exported session",
	Long: `xhunter runs authenticated searches against the platform's search timeline and
creates live-audio Spaces, using cookies exported from a logged-in browser.

The cookie file is read from COOKIES_PATH (default cookies.json).`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envPath)
		if err != nil {
			return err
		}
		slog.SetLogLoggerLevel(cfg.LogLevel)
		appConfig = cfg
		return nil
	},
}

// appConfig is set by the root command before any subcommand runs.
var appConfig *config.Config

func init() {
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "Path of the .env file (ENV_PATH overrides)")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(spaceCmd)
}
