package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wonny/marketdesk/internal/dashboard"
	"github.com/wonny/marketdesk/internal/domain/market"
	"github.com/wonny/marketdesk/internal/domain/news"
)

func (m *Model) renderTabs() string {
	t := m.theme
	parts := []string{t.Title.Render("marketdesk") + "  "}
	for i, class := range tabs {
		style := t.TabInactive
		if i == m.tab {
			style = t.TabActive
		}
		parts = append(parts, style.Render(tabLabel(class)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func tabLabel(class market.AssetClass) string {
	switch class {
	case market.AssetClassETF:
		return "ETF"
	case market.AssetClassCrypto:
		return "Crypto"
	default:
		return "Stock"
	}
}

func panelTitle(class market.AssetClass) string {
	switch class {
	case market.AssetClassETF:
		return "ETF Market Data Chart"
	case market.AssetClassCrypto:
		return "Cryptocurrency Market Data"
	default:
		return "Stock Market Data"
	}
}

func (m *Model) renderChartPanel(width, height int) string {
	t := m.theme
	inner := width - 4 // border and padding
	state := m.widget().Snapshot()

	var b strings.Builder
	b.WriteString(t.Title.Render(panelTitle(m.class())))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if state.Status == dashboard.StatusLoading {
		b.WriteString("  " + m.spinner.View() + t.MutedText.Render(" Loading "+state.Pending+"..."))
	}
	b.WriteString("\n")
	b.WriteString(m.renderPopular(inner))
	b.WriteString("\n")

	if state.Status == dashboard.StatusError && state.Error != "" {
		b.WriteString(t.Error.Render(state.Error))
		b.WriteString("\n")
	}

	used := strings.Count(b.String(), "\n")
	if state.HasData() {
		// Stats card takes 4 lines
		chartHeight := height - 2 - used - 4
		b.WriteString(t.Value.Render(state.Symbol))
		if state.Data.CryptoSymbol != "" {
			b.WriteString(t.MutedText.Render(" (" + state.Data.CryptoSymbol + ")"))
		}
		b.WriteString("\n")
		b.WriteString(renderLineChart(t, dashboard.NewSeries(state.Data.Data), inner, chartHeight))
		b.WriteString("\n")
		b.WriteString(renderStats(t, state.Data.Data))
	} else if state.Status == dashboard.StatusIdle {
		b.WriteString(t.MutedText.Render("Enter a symbol or pick a popular one to view historical market data"))
	}

	return t.Panel.
		Width(width - 2).
		Height(height - 2).
		Render(b.String())
}

func (m *Model) renderPopular(width int) string {
	t := m.theme
	class := m.class()
	presets := dashboard.PresetsFor(m.cfg, class)
	summaries := m.summaries[class]

	entries := make([]string, 0, len(presets))
	for i, p := range presets {
		keyLabel := fmt.Sprintf("%d", (i+1)%10)
		entry := t.PresetKey.Render(keyLabel) + " " + p.Name
		if i < len(summaries) {
			s := summaries[i]
			switch {
			case s.Loaded && s.Stats.Change != nil:
				entry += " " + changeStyle(t, s.Stats.Change).Render(s.Stats.Change.Percent+"%")
			case s.Loaded:
				entry += " " + t.MutedText.Render("$"+s.Stats.Close)
			default:
				entry += " " + t.MutedText.Render("-")
			}
		}
		entries = append(entries, entry)
	}

	header := t.Label.Render("Popular " + tabLabel(class) + ":")
	return lipgloss.NewStyle().Width(width).Render(header + " " + strings.Join(entries, "  "))
}

func renderStats(t Theme, bars []market.PriceBar) string {
	stats, ok := dashboard.NewStats(bars)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(t.Title.Render(fmt.Sprintf("Latest Data (%s)", stats.Date)))
	if stats.Change != nil {
		b.WriteString("  " + changeStyle(t, stats.Change).Render(stats.Change.String()))
	}
	b.WriteString("\n")

	cells := []struct{ label, value string }{
		{"Open", "$" + stats.Open},
		{"Close", "$" + stats.Close},
		{"High", "$" + stats.High},
		{"Low", "$" + stats.Low},
		{"Volume", fmt.Sprintf("%d", stats.Volume)},
	}
	rendered := make([]string, len(cells))
	for i, c := range cells {
		rendered[i] = lipgloss.JoinVertical(lipgloss.Left,
			t.Label.Render(c.label),
			t.Value.Render(c.value),
		)
		rendered[i] = lipgloss.NewStyle().PaddingRight(3).Render(rendered[i])
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	return b.String()
}

func changeStyle(t Theme, c *dashboard.Change) lipgloss.Style {
	if c.Positive {
		return t.Up
	}
	return t.Down
}

func (m *Model) renderFeedPanel(state dashboard.FeedState, width, height int) string {
	t := m.theme
	inner := width - 4

	title := "Market Headlines"
	empty := "No headlines available"
	if state.Feed == news.FeedAnalystRatings {
		title = "Analyst Ratings"
		empty = "No analyst ratings available"
	}

	var b strings.Builder
	b.WriteString(t.Title.Render(title))
	b.WriteString("\n")

	switch {
	case state.Loading:
		b.WriteString(t.MutedText.Render("Loading..."))
	case state.Error != "" && len(state.Items) == 0:
		b.WriteString(t.Error.Render(state.Error))
	case len(state.Items) == 0:
		b.WriteString(t.MutedText.Render(empty))
	default:
		if state.Error != "" {
			b.WriteString(t.Error.Render(truncate(state.Error, inner)))
			b.WriteString("\n")
		}
		// Two lines per item
		maxItems := (height - 3) / 2
		for i, item := range state.Items {
			if i >= maxItems {
				break
			}
			b.WriteString(t.Value.Render(truncate("• "+item.Headline, inner)))
			b.WriteString("\n")
			b.WriteString(t.MutedText.Render(truncate("  "+itemMeta(item), inner)))
			if i < len(state.Items)-1 && i < maxItems-1 {
				b.WriteString("\n")
			}
		}
	}

	return t.Panel.
		Width(width - 2).
		Height(height - 2).
		Render(b.String())
}

func itemMeta(item news.Item) string {
	parts := []string{item.Stock}
	if item.Publisher != nil && *item.Publisher != "" {
		parts = append(parts, *item.Publisher)
	}
	if !item.Date.IsZero() {
		parts = append(parts, item.Date.Format("Jan 2, 2006"))
	}
	return strings.Join(parts, " · ")
}

func (m *Model) renderStatusBar() string {
	t := m.theme
	help := make([]string, 0, len(m.keys.help()))
	for _, b := range m.keys.help() {
		h := b.Help()
		help = append(help, t.StatusKey.Render(h.Key)+t.StatusBar.UnsetPadding().Render(" "+h.Desc))
	}
	return t.StatusBar.Width(m.width).Render(strings.Join(help, " │ "))
}

func truncate(s string, width int) string {
	if width < 4 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
