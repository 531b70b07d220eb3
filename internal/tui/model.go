package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wonny/marketdesk/internal/client"
	"github.com/wonny/marketdesk/internal/dashboard"
	"github.com/wonny/marketdesk/internal/domain/market"
	"github.com/wonny/marketdesk/internal/domain/news"
	"github.com/wonny/marketdesk/internal/pkg/config"
)

// tabs in display order
var tabs = []market.AssetClass{
	market.AssetClassETF,
	market.AssetClassStock,
	market.AssetClassCrypto,
}

// Fetcher is the API surface the dashboard needs; *client.Client implements it
type Fetcher interface {
	dashboard.HistoryFetcher
	dashboard.FeedFetcher
}

// Deps holds everything the root model is built from
type Deps struct {
	Fetcher Fetcher
	Config  *config.DashboardConfig
	Theme   Theme
}

type chartResultMsg struct {
	req  dashboard.Request
	hist *client.History
	err  error
}

type summariesMsg struct {
	class     market.AssetClass
	summaries []dashboard.Summary
}

type feedUpdatedMsg struct{}

// Model is the root dashboard model
type Model struct {
	ctx     context.Context
	fetcher Fetcher
	cfg     *config.DashboardConfig
	theme   Theme
	keys    keyMap

	tab       int
	input     textinput.Model
	spinner   spinner.Model
	widgets   map[market.AssetClass]*dashboard.ChartWidget
	summaries map[market.AssetClass][]dashboard.Summary

	ratings   *dashboard.LiveFeed
	headlines *dashboard.LiveFeed
	pollers   []*dashboard.Poller[[]news.Item]
	feedWake  chan struct{}
	closed    bool

	width  int
	height int
	ready  bool
}

// NewModel creates the root model. Feed pollers start in Init and stop in Close.
func NewModel(ctx context.Context, deps Deps) (*Model, error) {
	m := &Model{
		ctx:       ctx,
		fetcher:   deps.Fetcher,
		cfg:       deps.Config,
		theme:     deps.Theme,
		keys:      defaultKeyMap(),
		widgets:   make(map[market.AssetClass]*dashboard.ChartWidget, len(tabs)),
		summaries: make(map[market.AssetClass][]dashboard.Summary, len(tabs)),
		ratings:   dashboard.NewLiveFeed(news.FeedAnalystRatings, deps.Config.FeedLimit),
		headlines: dashboard.NewLiveFeed(news.FeedHeadlines, deps.Config.FeedLimit),
		feedWake:  make(chan struct{}, 1),
	}
	if m.theme.Name == "" {
		m.theme = DarkTheme()
	}

	for _, class := range tabs {
		m.widgets[class] = dashboard.NewChartWidget(class, deps.Fetcher)
	}

	for _, feed := range []*dashboard.LiveFeed{m.ratings, m.headlines} {
		p, err := dashboard.NewFeedPoller(feed, deps.Fetcher, deps.Config.PollInterval, m.wake)
		if err != nil {
			return nil, fmt.Errorf("create %s poller: %w", feed.Snapshot().Feed.Label(), err)
		}
		m.pollers = append(m.pollers, p)
	}

	m.input = textinput.New()
	m.input.CharLimit = 20
	m.input.Width = 32
	m.input.Focus()
	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.applyTab()

	return m, nil
}

// Init starts the feed pollers and loads the first tab's presets
func (m *Model) Init() tea.Cmd {
	for _, p := range m.pollers {
		// Start only fails on a restarted poller
		_ = p.Start(m.ctx)
	}
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.waitForFeed(),
		m.loadSummaries(m.class()),
	)
}

// Close stops the pollers. Safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	for _, p := range m.pollers {
		p.Stop()
	}
	close(m.feedWake)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			return m, m.switchTab(1)
		case key.Matches(msg, m.keys.PrevTab):
			return m, m.switchTab(-1)
		case key.Matches(msg, m.keys.Submit):
			cmd := m.submit(m.input.Value())
			return m, cmd
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadSummaries(m.class())
		case key.Matches(msg, m.keys.ToggleTheme):
			m.theme = m.theme.Toggle()
			return m, nil
		case key.Matches(msg, m.keys.QuickSelect) && m.input.Value() == "":
			if cmd, ok := m.quickSelect(presetIndex(msg.String())); ok {
				return m, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case chartResultMsg:
		if w, ok := m.widgets[msg.req.Class]; ok {
			w.Complete(msg.req, msg.hist, msg.err)
		}
		return m, nil

	case summariesMsg:
		m.summaries[msg.class] = msg.summaries
		return m, nil

	case feedUpdatedMsg:
		return m, m.waitForFeed()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) class() market.AssetClass {
	return tabs[m.tab]
}

func (m *Model) widget() *dashboard.ChartWidget {
	return m.widgets[m.class()]
}

func (m *Model) switchTab(delta int) tea.Cmd {
	m.tab = (m.tab + delta + len(tabs)) % len(tabs)
	m.applyTab()
	if _, ok := m.summaries[m.class()]; ok {
		return nil
	}
	return m.loadSummaries(m.class())
}

func (m *Model) applyTab() {
	m.input.Reset()
	m.input.Placeholder = placeholder(m.class())
}

// submit starts a chart request for raw. Blank input is rejected by the widget.
func (m *Model) submit(raw string) tea.Cmd {
	w := m.widget()
	req, ok := w.Begin(raw)
	if !ok {
		return nil
	}
	m.input.SetValue(req.Symbol)
	m.input.CursorEnd()

	ctx := m.ctx
	return func() tea.Msg {
		hist, err := w.Fetch(ctx, req)
		return chartResultMsg{req: req, hist: hist, err: err}
	}
}

func (m *Model) quickSelect(i int) (tea.Cmd, bool) {
	presets := dashboard.PresetsFor(m.cfg, m.class())
	if i < 0 || i >= len(presets) {
		return nil, false
	}
	return m.submit(presets[i].Symbol), true
}

func (m *Model) loadSummaries(class market.AssetClass) tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	presets := dashboard.PresetsFor(m.cfg, class)
	return func() tea.Msg {
		return summariesMsg{
			class:     class,
			summaries: dashboard.LoadSummaries(ctx, fetcher, class, presets),
		}
	}
}

// wake is the poller callback; it must not block
func (m *Model) wake(dashboard.FeedState) {
	select {
	case m.feedWake <- struct{}{}:
	default:
	}
}

func (m *Model) waitForFeed() tea.Cmd {
	wake := m.feedWake
	return func() tea.Msg {
		if _, ok := <-wake; !ok {
			return nil
		}
		return feedUpdatedMsg{}
	}
}

// View renders the dashboard
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Layout:
	// ┌──────────── tabs ────────────┐
	// │ chart form + chart │ ratings │
	// │ + stats            ├─────────┤
	// │                    │ news    │
	// └────────────────────┴─────────┘
	leftWidth := m.width * 3 / 5
	rightWidth := m.width - leftWidth
	bodyHeight := m.height - 2 // tabs and status bar

	feedHeight := bodyHeight / 2
	left := m.renderChartPanel(leftWidth, bodyHeight)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderFeedPanel(m.ratings.Snapshot(), rightWidth, feedHeight),
		m.renderFeedPanel(m.headlines.Snapshot(), rightWidth, bodyHeight-feedHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.renderStatusBar(),
	)
}

func placeholder(class market.AssetClass) string {
	switch class {
	case market.AssetClassETF:
		return "Enter ETF Symbol (e.g., SPY)"
	case market.AssetClassCrypto:
		return "Enter Crypto Symbol (e.g., BTC or BTC-USD)"
	default:
		return "Enter stock symbol (e.g., AAPL)"
	}
}
