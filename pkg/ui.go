package pkg

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// controllerState is the interaction controller's explicit state. At
// most one country-detail fetch triple may be in flight; activations
// arriving while loading are dropped.
type controllerState int

const (
	stateIdle controllerState = iota
	stateLoading
)

// Screen line where the first rank row is drawn. Mouse hit testing maps
// a click's Y coordinate back to a rank row index relative to this.
const rankTopLine = 4

const detailRows = 8

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	deathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	panelStyle  = lipgloss.NewStyle().PaddingRight(3)
)

type summaryMsg struct {
	summary *Summary
	err     error
}

// detailMsg joins the three parallel per-country fetches. It is
// delivered only after all of them have resolved.
type detailMsg struct {
	slug      string
	deaths    []SeriesPoint
	recovered []SeriesPoint
	confirmed []SeriesPoint
	err       error
}

type snapshotMsg struct {
	path string
	err  error
}

// Model is the dashboard: rank list, world counters, per-country detail
// lists and the confirmed-cases chart, driven by the bubbletea event
// loop.
type Model struct {
	client *Client
	cfg    Config
	chart  *Chart
	spin   spinner.Model

	state   controllerState
	summary *Summary
	// ranked is the render-time identity map: the record at index i is
	// the one drawn on rank row i, so an input event carrying a row
	// index resolves to a country slug without inspecting the markup.
	ranked []SummaryRecord
	totals WorldTotals

	cursor       int
	selectedSlug string
	selectedName string

	deaths         []SeriesPoint
	recovered      []SeriesPoint
	deathsTotal    int64
	hasDeaths      bool
	recoveredTotal int64
	hasRecovered   bool

	status string
	width  int
	height int
}

// NewModel builds the dashboard model around an API client.
func NewModel(client *Client, cfg Config) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	return Model{
		client: client,
		cfg:    cfg,
		chart:  NewChart(cfg.ChartWindow),
		spin:   sp,
		state:  stateIdle,
		width:  100,
		height: 40,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchSummaryCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.visibleRank())-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			return m.activate(m.cursor)
		case "r":
			if m.state != stateIdle {
				return m, nil
			}
			m.status = "refreshing summary"
			return m, m.fetchSummaryCmd()
		case "s":
			return m, m.snapshotCmd()
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			row := msg.Y - rankTopLine
			if row >= 0 && row < len(m.visibleRank()) {
				m.cursor = row
				return m.activate(row)
			}
		}
		return m, nil

	case summaryMsg:
		if msg.err != nil {
			log.Err(msg.err).Msg("Failed to fetch global summary")
			m.status = "summary fetch failed: " + msg.err.Error()
			return m, nil
		}
		m.summary = msg.summary
		records := FilterBySlug(msg.summary.Countries, m.cfg.Countries)
		m.ranked = RankByConfirmed(records)
		m.totals = SumTotals(records)
		if m.selectedSlug != "" {
			if record, ok := GroupBySlug(records)[m.selectedSlug]; ok {
				m.selectedName = record.Country
			}
		}
		if m.cursor >= len(m.ranked) {
			m.cursor = 0
		}
		m.status = ""
		return m, nil

	case detailMsg:
		return m.applyDetail(msg)

	case snapshotMsg:
		if msg.err != nil {
			log.Err(msg.err).Str("path", msg.path).Msg("Chart snapshot failed")
			m.status = "snapshot failed: " + msg.err.Error()
		} else {
			m.status = "chart written to " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// activate starts the detail fetch triple for the rank row at idx. It
// is the single entry point guarded by the controller state: while a
// triple is outstanding every further activation is ignored.
func (m Model) activate(idx int) (tea.Model, tea.Cmd) {
	if m.state != stateIdle {
		log.Debug().Str("country", m.selectedSlug).Msg("Ignoring activation while loading")
		return m, nil
	}
	visible := m.visibleRank()
	if idx < 0 || idx >= len(visible) {
		return m, nil
	}
	record := visible[idx]

	m.deaths = nil
	m.recovered = nil
	m.hasDeaths = false
	m.hasRecovered = false
	m.selectedSlug = record.Slug
	m.selectedName = record.Country
	m.state = stateLoading
	m.status = ""
	log.Info().Str("country", record.Slug).Msg("Fetching country detail")
	return m, tea.Batch(m.spin.Tick, m.fetchDetailCmd(record.Slug))
}

// applyDetail renders the joined triple: deaths list, deaths counter,
// recovered list, recovered counter, then the chart, in that order. The
// controller returns to idle on every exit path so a failed fetch never
// wedges the dashboard.
func (m Model) applyDetail(msg detailMsg) (tea.Model, tea.Cmd) {
	m.state = stateIdle
	if msg.err != nil {
		log.Err(msg.err).Str("country", msg.slug).Msg("Country detail fetch failed")
		m.status = "detail fetch failed: " + msg.err.Error()
		return m, nil
	}
	m.deaths = NewestFirst(msg.deaths)
	m.deathsTotal, m.hasDeaths = LatestCases(msg.deaths)
	m.recovered = NewestFirst(msg.recovered)
	m.recoveredTotal, m.hasRecovered = LatestCases(msg.recovered)
	m.chart.Render(msg.confirmed)
	return m, nil
}

func (m Model) fetchSummaryCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		summary, err := client.Summary(context.Background())
		return summaryMsg{summary: summary, err: err}
	}
}

// fetchDetailCmd issues the three status fetches concurrently and joins
// them into a single message.
func (m Model) fetchDetailCmd(slug string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		g, ctx := errgroup.WithContext(context.Background())
		var deaths, recovered, confirmed []SeriesPoint
		g.Go(func() error {
			var err error
			deaths, err = client.CountrySeries(ctx, slug, StatusDeaths)
			return err
		})
		g.Go(func() error {
			var err error
			recovered, err = client.CountrySeries(ctx, slug, StatusRecovered)
			return err
		})
		g.Go(func() error {
			var err error
			confirmed, err = client.CountrySeries(ctx, slug, StatusConfirmed)
			return err
		})
		if err := g.Wait(); err != nil {
			return detailMsg{slug: slug, err: err}
		}
		return detailMsg{slug: slug, deaths: deaths, recovered: recovered, confirmed: confirmed}
	}
}

func (m Model) snapshotCmd() tea.Cmd {
	ch, path := m.chart, m.cfg.SnapshotPath
	return func() tea.Msg {
		return snapshotMsg{path: path, err: ch.WritePNG(path)}
	}
}

// visibleRank returns the rank rows currently drawn, top first.
func (m Model) visibleRank() []SummaryRecord {
	limit := len(m.ranked)
	if m.cfg.RankLimit > 0 && m.cfg.RankLimit < limit {
		limit = m.cfg.RankLimit
	}
	if avail := m.height - rankTopLine - 2; avail > 0 && avail < limit {
		limit = avail
	}
	return m.ranked[:limit]
}

func (m Model) View() string {
	var sb strings.Builder

	header := titleStyle.Render("COVID-19 dashboard")
	if m.summary != nil {
		header += dimStyle.Render("  updated " + m.summary.Date.Local().Format("Jan 2 2006 15:04"))
	}
	sb.WriteString(header + "\n")
	sb.WriteString(fmt.Sprintf("world  confirmed %s  deaths %s  recovered %s\n",
		countStyle.Render(fmtCount(m.totals.Confirmed)),
		deathStyle.Render(fmtCount(m.totals.Deaths)),
		okStyle.Render(fmtCount(m.totals.Recovered))))
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("Cases by country") + "\n")

	visible := m.visibleRank()
	if len(visible) == 0 {
		sb.WriteString(dimStyle.Render("loading summary...") + "\n")
	}
	for i, record := range visible {
		row := fmt.Sprintf("%9s  %s", fmtCount(record.TotalConfirmed), record.Country)
		if i == m.cursor {
			row = cursorStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		sb.WriteString(row + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.detailView())
	sb.WriteString("\n")
	sb.WriteString(m.chart.View() + "\n")

	help := dimStyle.Render("enter/click: country detail  r: refresh  s: snapshot  q: quit")
	if m.status != "" {
		help = warnStyle.Render(m.status) + "  " + help
	}
	sb.WriteString(help + "\n")
	return sb.String()
}

// detailView draws the two per-country lists side by side. While the
// fetch triple is outstanding both panes show the spinner instead.
func (m Model) detailView() string {
	name := m.selectedName
	if name == "" {
		name = "select a country"
	}
	if m.state == stateLoading {
		loading := m.spin.View() + dimStyle.Render("loading "+name+"...")
		return lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Render(titleStyle.Render("Deaths")+"\n"+loading),
			titleStyle.Render("Recovered")+"\n"+loading)
	}
	deaths := m.listPane("Deaths", m.deaths, m.deathsTotal, m.hasDeaths, deathStyle)
	recovered := m.listPane("Recovered", m.recovered, m.recoveredTotal, m.hasRecovered, okStyle)
	return lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(deaths), recovered)
}

func (m Model) listPane(kind string, points []SeriesPoint, total int64, hasTotal bool, style lipgloss.Style) string {
	var sb strings.Builder
	title := titleStyle.Render(kind)
	if m.selectedName != "" {
		if hasTotal {
			title += dimStyle.Render(fmt.Sprintf(" · %s total ", m.selectedName)) + style.Render(fmtCount(total))
		} else {
			title += dimStyle.Render(fmt.Sprintf(" · %s: no data", m.selectedName))
		}
	}
	sb.WriteString(title + "\n")
	if len(points) == 0 {
		sb.WriteString(dimStyle.Render("—"))
		return sb.String()
	}
	rows := points
	if len(rows) > detailRows {
		rows = rows[:detailRows]
	}
	for _, p := range rows {
		count := style.Render(fmt.Sprintf("%9s", fmtCount(p.Cases)))
		sb.WriteString(fmt.Sprintf("%s  %s\n", count, p.Date.Format("Jan 2, 2006")))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func fmtCount(n int64) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	}
	if n >= 10_000 {
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return strconv.FormatInt(n, 10)
}
