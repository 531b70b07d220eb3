package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/wonny/marketdesk/internal/dashboard"
	"github.com/wonny/marketdesk/internal/domain/market"
)

var (
	quoteClass string
	quoteBars  int
)

// quoteCmd prints the latest stats of a symbol
var quoteCmd = &cobra.Command{
	Use:   "quote <symbol>",
	Short: "Latest price stats for a symbol",
	Long: `Prints the latest open/close/high/low and the change over the stored history.
Without --class the symbol is looked up in any asset class.

Examples:
  go run ./cmd/marketdesk quote AAPL
  go run ./cmd/marketdesk quote SPY --class etf --bars 5
  go run ./cmd/marketdesk quote btc --class crypto`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&quoteClass, "class", "", "asset class: stock, etf or crypto")
	quoteCmd.Flags().IntVar(&quoteBars, "bars", 0, "also print the last N bars")
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c := newClient()

	var (
		symbol string
		class  market.AssetClass
		bars   []market.PriceBar
	)

	if quoteClass == "" {
		data, err := c.MarketData(ctx, market.NormalizeSymbol(args[0]))
		if err != nil {
			return err
		}
		symbol, class, bars = data.Symbol, data.AssetClass, data.Data
	} else {
		parsed, err := market.ParseAssetClass(quoteClass)
		if err != nil {
			return fmt.Errorf("invalid --class %q: %w", quoteClass, err)
		}
		w := dashboard.NewChartWidget(parsed, c)
		state := w.Load(ctx, args[0])
		if state.Status == dashboard.StatusError {
			return errors.New(state.Error)
		}
		symbol, class, bars = state.Symbol, parsed, state.Data.Data
	}

	stats, ok := dashboard.NewStats(bars)
	if !ok {
		return errors.New("No data found for this " + class.Label())
	}

	title := lipgloss.NewStyle().Bold(true)
	fmt.Println(title.Render(fmt.Sprintf("%s (%s) - Latest Data (%s)", symbol, class.Label(), stats.Date)))
	if stats.Change != nil {
		fmt.Printf("Change over %d days: %s\n", len(bars), stats.Change)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Open", "Close", "High", "Low", "Volume").
		Row("$"+stats.Open, "$"+stats.Close, "$"+stats.High, "$"+stats.Low, fmt.Sprintf("%d", stats.Volume))
	fmt.Println(t)

	if quoteBars > 0 {
		fmt.Println(barsTable(bars, quoteBars))
	}
	return nil
}

func barsTable(bars []market.PriceBar, n int) *table.Table {
	if n < len(bars) {
		bars = bars[len(bars)-n:]
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Open", "High", "Low", "Close", "Volume")
	for _, b := range bars {
		t.Row(
			b.Date.String(),
			b.Open.StringFixed(2),
			b.High.StringFixed(2),
			b.Low.StringFixed(2),
			b.Close.StringFixed(2),
			fmt.Sprintf("%d", b.Volume),
		)
	}
	return t
}
