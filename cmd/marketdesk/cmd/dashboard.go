package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wonny/marketdesk/internal/pkg/logger"
	"github.com/wonny/marketdesk/internal/tui"
)

var themeName string

// dashboardCmd starts the terminal dashboard
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Terminal dashboard",
	Long: `Starts the terminal dashboard: ETF, stock and crypto charts with
quick-select presets, plus live analyst ratings and headlines.

Examples:
  go run ./cmd/marketdesk dashboard
  go run ./cmd/marketdesk dashboard --theme light --api-url http://localhost:8000`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVar(&themeName, "theme", "", "dark or light (overrides config)")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	// The dashboard owns the terminal
	logger.Discard()

	name := dashCfg.Theme
	if themeName != "" {
		name = themeName
	}
	theme, err := tui.ThemeByName(name)
	if err != nil {
		return err
	}

	model, err := tui.NewModel(cmd.Context(), tui.Deps{
		Fetcher: newClient(),
		Config:  dashCfg,
		Theme:   theme,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
