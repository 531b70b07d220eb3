// Package cmd - marketdesk CLI commands
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wonny/marketdesk/internal/client"
	"github.com/wonny/marketdesk/internal/pkg/config"
)

var (
	// Common flags
	cfgFile string
	apiURL  string
	verbose bool

	dashCfg *config.DashboardConfig
)

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:   "marketdesk",
	Short: "marketdesk - market data dashboard CLI",
	Long: `marketdesk - market data dashboard CLI

Usage:
    go run ./cmd/marketdesk [command]

Commands:
    dashboard                 - Terminal dashboard (charts + live feed)
    quote <symbol>            - Latest price stats for a symbol
    search <query>            - Search symbols by ticker or name
    feed                      - Random sample of headlines or analyst ratings
    seed                      - Create and fill a demo SQLite database
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command, cancelling its context on SIGINT/SIGTERM
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "dashboard config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(seedCmd)
}

// initConfig loads .env, then the dashboard config
func initConfig() error {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine, environment variables still apply
		if verbose {
			fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
		}
	}

	cfg, err := config.LoadDashboard(cfgFile)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	dashCfg = cfg

	if verbose {
		fmt.Fprintf(os.Stderr, "API: %s\n", cfg.APIBaseURL)
	}
	return nil
}

func newClient() *client.Client {
	return client.New(dashCfg.APIBaseURL, dashCfg.RequestTimeout)
}
