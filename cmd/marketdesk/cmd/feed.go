package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/wonny/marketdesk/internal/domain/news"
)

var (
	feedAnalyst bool
	feedLimit   int
)

// feedCmd prints a random sample of a news feed
var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Random sample of headlines or analyst ratings",
	Long: `Prints a random sample of partner headlines, or analyst ratings with --analyst.

Examples:
  go run ./cmd/marketdesk feed
  go run ./cmd/marketdesk feed --analyst --limit 10`,
	Args: cobra.NoArgs,
	RunE: runFeed,
}

func init() {
	feedCmd.Flags().BoolVar(&feedAnalyst, "analyst", false, "analyst ratings instead of headlines")
	feedCmd.Flags().IntVar(&feedLimit, "limit", 0, "sample size (default from config)")
}

func runFeed(cmd *cobra.Command, args []string) error {
	feed := news.FeedHeadlines
	if feedAnalyst {
		feed = news.FeedAnalystRatings
	}
	limit := feedLimit
	if limit == 0 {
		limit = dashCfg.FeedLimit
	}

	items, err := newClient().Feed(cmd.Context(), feed, limit)
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Stock", "Headline", "Publisher", "Date")
	for _, item := range items {
		publisher := ""
		if item.Publisher != nil {
			publisher = *item.Publisher
		}
		t.Row(item.Stock, item.Headline, publisher, item.Date.String())
	}
	fmt.Println(t)
	return nil
}
