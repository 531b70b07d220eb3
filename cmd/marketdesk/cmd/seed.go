package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/marketdesk/internal/domain/market"
	"github.com/wonny/marketdesk/internal/infra/database/sqlite"
)

var (
	seedPath string
	seedEnd  string
)

// seedCmd fills a SQLite database with demo data
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create and fill a demo SQLite database",
	Long: fmt.Sprintf(`Creates the schema and writes demo symbols, %d days of bars per symbol
and sample headlines/analyst ratings. Point the API at it with
DB_DRIVER=sqlite SQLITE_PATH=<path>.

Examples:
  go run ./cmd/marketdesk seed
  go run ./cmd/marketdesk seed --sqlite /tmp/demo.db --end 2024-03-29`, sqlite.DemoDays),
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedPath, "sqlite", "data/marketdesk.db", "SQLite database path")
	seedCmd.Flags().StringVar(&seedEnd, "end", "", "last bar date YYYY-MM-DD (default today)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	end := time.Now().UTC()
	if seedEnd != "" {
		d, err := market.ParseDate(seedEnd)
		if err != nil {
			return err
		}
		end = d.Time
	}

	db, err := sqlite.Open(cmd.Context(), seedPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SeedDemo(cmd.Context(), end); err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	fmt.Printf("Seeded %s (%d days ending %s)\n", seedPath, sqlite.DemoDays, market.NewDate(end))
	return nil
}
