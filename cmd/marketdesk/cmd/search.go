package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var searchLimit int

// searchCmd searches symbols
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search symbols by ticker or name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := newClient().SearchSymbols(cmd.Context(), strings.Join(args, " "), searchLimit)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No symbols found")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Symbol", "Name", "Class", "Exchange")
		for _, m := range results {
			exchange := ""
			if m.ListingExchange != nil {
				exchange = *m.ListingExchange
			}
			t.Row(m.Symbol, m.Name(), string(m.AssetClass), exchange)
		}
		fmt.Println(t)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum results")
}
