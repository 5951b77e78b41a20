// Package tui provides the interactive Bubble Tea browser for a fee ledger.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bookfees/internal/cli"
	"github.com/theirongolddev/bookfees/internal/config"
	"github.com/theirongolddev/bookfees/internal/model"
	"github.com/theirongolddev/bookfees/internal/pipeline"
	"github.com/theirongolddev/bookfees/internal/tui/components"
	"github.com/theirongolddev/bookfees/internal/tui/theme"
)

// LoadFunc reads the loan records of one input table.
type LoadFunc func(path string) ([]model.LoanRecord, error)

// LedgerLoadedMsg is sent when the input table has been read and aggregated.
type LedgerLoadedMsg struct {
	Patrons  []model.PatronFees
	Summary  model.ReportSummary
	LoadTime time.Duration
	Err      error
}

// App is the root Bubble Tea model.
type App struct {
	path string
	load LoadFunc

	// Data
	patrons  []model.PatronFees
	summary  model.ReportSummary
	loaded   bool
	loadTime time.Duration
	err      error

	// UI state
	width    int
	height   int
	sortBy   string
	showHelp bool
	table    table.Model
	spinner  spinner.Model
}

const (
	minTerminalWidth = 50

	// Rows taken by cards, table header and status bar.
	chromeHeight   = 9
	minTableHeight = 3
)

// NewApp creates a browser for the table at path. sortBy is config.SortByID
// or config.SortByFees.
func NewApp(path, sortBy string, load LoadFunc) App {
	t := theme.Active

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Accent)

	tbl := table.New(
		table.WithColumns(columns(60)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Accent).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(t.TextPrimary).
		Background(t.Selected).
		Bold(false)
	tbl.SetStyles(styles)

	if sortBy != config.SortByFees {
		sortBy = config.SortByID
	}

	return App{
		path:    path,
		load:    load,
		sortBy:  sortBy,
		table:   tbl,
		spinner: sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(loadLedgerCmd(a.path, a.load), a.spinner.Tick)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.table.SetColumns(columns(msg.Width))
		h := msg.Height - chromeHeight
		if h < minTableHeight {
			h = minTableHeight
		}
		a.table.SetHeight(h)
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" || key == "q" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "s":
			if a.sortBy == config.SortByID {
				a.sortBy = config.SortByFees
			} else {
				a.sortBy = config.SortByID
			}
			a.applySort()
			return a, nil
		case "r":
			a.loaded = false
			a.err = nil
			return a, tea.Batch(loadLedgerCmd(a.path, a.load), a.spinner.Tick)
		}

		var cmd tea.Cmd
		a.table, cmd = a.table.Update(msg)
		return a, cmd

	case LedgerLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.err = msg.Err
		if msg.Err != nil {
			return a, nil
		}
		a.patrons = msg.Patrons
		a.summary = msg.Summary
		a.applySort()
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

// applySort reorders the ledger rows for the current sort key and keeps the
// cursor on the same patron.
func (a *App) applySort() {
	var selected string
	if row := a.table.SelectedRow(); row != nil {
		selected = row[0]
	}

	if a.sortBy == config.SortByFees {
		pipeline.SortByFees(a.patrons)
	} else {
		pipeline.SortByID(a.patrons)
	}

	rows := make([]table.Row, len(a.patrons))
	cursor := 0
	for i, p := range a.patrons {
		rows[i] = patronRow(p)
		if p.PatronID == selected {
			cursor = i
		}
	}
	a.table.SetRows(rows)
	a.table.SetCursor(cursor)
}

func patronRow(p model.PatronFees) table.Row {
	return table.Row{
		p.PatronID,
		strconv.Itoa(p.Loans),
		strconv.Itoa(p.LateLoans),
		strconv.Itoa(p.DaysLate),
		cli.FormatFee(p.LateFees),
	}
}

func columns(width int) []table.Column {
	const numeric = 10
	idWidth := width - 4*numeric - 12
	if idWidth < 12 {
		idWidth = 12
	}
	return []table.Column{
		{Title: "Patron", Width: idWidth},
		{Title: "Loans", Width: numeric},
		{Title: "Late", Width: numeric},
		{Title: "Days", Width: numeric},
		{Title: "Fees", Width: numeric},
	}
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.err != nil {
		return a.viewError()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	t := theme.Active
	msg := fmt.Sprintf("Terminal too narrow (%d cols, need %d)", a.width, minTerminalWidth)
	return lipgloss.NewStyle().Foreground(t.Warn).Render(msg)
}

func (a App) viewLoading() string {
	t := theme.Active
	text := lipgloss.NewStyle().Foreground(t.TextMuted).Render("Reading " + a.path)
	return "\n  " + a.spinner.View() + " " + text + "\n"
}

func (a App) viewError() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.Error).Bold(true).Render("Could not build the fee ledger")
	body := lipgloss.NewStyle().Foreground(t.TextPrimary).Width(a.width - 4).Render(a.err.Error())
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("[r]etry  [q]uit")
	return "\n  " + title + "\n\n  " + body + "\n\n  " + hint + "\n"
}

func (a App) viewHelp() string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	bindings := []struct{ key, desc string }{
		{"j/k, up/down", "move"},
		{"g/G", "first / last patron"},
		{"s", "toggle sort (patron id / fees)"},
		{"r", "reload input"},
		{"?", "close help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, kb := range bindings {
		b.WriteString("  ")
		b.WriteString(keyStyle.Render(fmt.Sprintf("%-14s", kb.key)))
		b.WriteString(descStyle.Render(kb.desc))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) viewMain() string {
	s := a.summary
	cards := components.MetricCardRow([]components.Metric{
		{Label: "Records", Value: cli.FormatNumber(int64(s.Records))},
		{Label: "Patrons", Value: cli.FormatNumber(int64(s.Patrons))},
		{Label: "Late loans", Value: cli.FormatNumber(int64(s.LateLoans))},
		{Label: "Total fees", Value: cli.FormatFee(s.TotalFees)},
	}, a.width)

	info := fmt.Sprintf("sorted by %s  %s", a.sortBy, a.loadTime.Round(time.Millisecond))
	status := components.RenderStatusBar(a.width, "[s]ort  [r]eload  [?]help  [q]uit", info)

	return lipgloss.JoinVertical(lipgloss.Left, cards, a.table.View(), status)
}

func loadLedgerCmd(path string, load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		records, err := load(path)
		if err != nil {
			return LedgerLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}

		ledger := pipeline.Aggregate(records)
		return LedgerLoadedMsg{
			Patrons:  ledger.Patrons(),
			Summary:  ledger.Summary(),
			LoadTime: time.Since(start),
		}
	}
}
