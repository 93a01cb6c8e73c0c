package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ecoreport/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ecoreport/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ecoreport/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ecoreport/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/render"
)

// chromeHeight is the number of lines used around the table:
// tabs, blank line, blank line, status bar.
const chromeHeight = 4

// App is the report browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides the pipeline and the request.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keys   *keymap.KeyMap
	help   help.Model
	status *status.Bar
	table  table.Model

	// results holds the outcome of the last run, in request order.
	results []domain.ReportResult

	// active is the index of the displayed report.
	active int

	// err holds a failure that stopped the whole run.
	err error

	// loading is true while the pipeline runs.
	loading bool

	// width and height are terminal dimensions.
	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new report browser.
func NewApp(ports *Ports, s *styles.Styles) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	t := table.New(table.WithFocused(true))
	t.SetStyles(table.Styles{
		Header:   s.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(s.Theme().Border),
		Cell:     s.Cell,
		Selected: s.Selected.Padding(0),
	})

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		styles:  s,
		keys:    km,
		help:    help.New(),
		status:  status.NewBar(s, km),
		table:   t,
		loading: true,
		width:   80,
		height:  24,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It starts the first pipeline run.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("ecoreport"),
		a.runPipeline(),
	)
}

// runPipeline returns a command that executes the pipeline off the UI loop.
func (a *App) runPipeline() tea.Cmd {
	ctx, ports := a.ctx, a.ports
	return func() tea.Msg {
		summary, err := ports.Pipeline.Run(ctx, ports.Files, ports.Reports)
		return messages.RunCompleted{Summary: summary, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.RunRequested:
		a.loading = true
		a.status.SetState(status.StateLoading)
		return a, a.runPipeline()

	case messages.RunCompleted:
		a.applyRun(msg)
		return a, nil

	case messages.ReportSelected:
		a.selectReport(msg.Index)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		a.resizeTable()
		return a, nil

	case key.Matches(msg, a.keys.Reload):
		if a.loading {
			return a, nil
		}
		return a, func() tea.Msg { return messages.RunRequested{} }

	case key.Matches(msg, a.keys.NextReport):
		if len(a.results) > 0 {
			a.selectReport((a.active + 1) % len(a.results))
		}
		return a, nil

	case key.Matches(msg, a.keys.PrevReport):
		if len(a.results) > 0 {
			a.selectReport((a.active - 1 + len(a.results)) % len(a.results))
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(msg)
	a.updatePosition()
	return a, cmd
}

// applyRun stores a pipeline outcome and refreshes the view.
func (a *App) applyRun(msg messages.RunCompleted) {
	a.loading = false
	a.err = nil

	switch {
	case errors.Is(msg.Err, domain.ErrNoData):
		a.results = nil
		a.status.SetState(status.StateReady)
		a.status.SetMessage("No data to process.")
	case msg.Err != nil:
		a.err = msg.Err
		a.results = nil
		a.status.SetState(status.StateError)
		a.status.SetMessage(msg.Err.Error())
	default:
		a.results = msg.Summary.Results
		a.status.SetState(status.StateReady)
		a.status.SetMessage(fmt.Sprintf("%d countries, %d records from %d files",
			msg.Summary.Countries, msg.Summary.Records, msg.Summary.Files))
	}

	active := a.active
	if active >= len(a.results) {
		active = 0
	}
	a.selectReport(active)
}

// selectReport makes report i the active tab and loads its rows.
func (a *App) selectReport(i int) {
	if i < 0 || i >= len(a.results) {
		a.active = 0
		a.table.SetRows(nil)
		a.table.SetColumns(nil)
		a.updatePosition()
		return
	}
	a.active = i
	res := a.results[i]

	rows := make([]table.Row, 0, len(res.Rows))
	widths := make([]int, len(res.Columns))
	for c, col := range res.Columns {
		widths[c] = lipgloss.Width(col)
	}
	for _, r := range res.Rows {
		row := make(table.Row, len(res.Columns))
		for c, col := range res.Columns {
			row[c] = render.FormatCell(r[col])
			widths[c] = max(widths[c], lipgloss.Width(row[c]))
		}
		rows = append(rows, row)
	}

	columns := make([]table.Column, len(res.Columns))
	for c, col := range res.Columns {
		columns[c] = table.Column{Title: col, Width: widths[c]}
	}

	// Columns first: rows are rendered against the current columns.
	a.table.SetRows(nil)
	a.table.SetColumns(columns)
	a.table.SetRows(rows)
	a.table.GotoTop()
	a.updatePosition()
}

func (a *App) updatePosition() {
	rows := len(a.table.Rows())
	if rows == 0 {
		a.status.SetPosition(0, 0)
		return
	}
	a.status.SetPosition(a.table.Cursor()+1, rows)
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.status.SetWidth(width)
	a.help.Width = width
	a.resizeTable()
}

func (a *App) resizeTable() {
	h := a.height - chromeHeight - lipgloss.Height(a.help.View(a.keys))
	if h < 3 {
		h = 3
	}
	a.table.SetHeight(h)
	a.table.SetWidth(a.width)
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.tabsView())
	b.WriteString("\n\n")
	b.WriteString(a.bodyView())
	b.WriteString("\n\n")
	if a.help.ShowAll {
		b.WriteString(a.help.View(a.keys))
		b.WriteString("\n")
	}
	b.WriteString(a.status.View())

	return b.String()
}

func (a *App) tabsView() string {
	if len(a.results) == 0 {
		return a.styles.Title.Render("ecoreport")
	}

	tabs := make([]string, len(a.results))
	for i, res := range a.results {
		label := res.Name
		switch {
		case i == a.active:
			tabs[i] = a.styles.Selected.Render(label)
		case res.Failed():
			tabs[i] = a.styles.Error.Padding(0, 1).Render(label)
		default:
			tabs[i] = a.styles.Muted.Padding(0, 1).Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) bodyView() string {
	switch {
	case a.loading:
		return a.styles.Muted.Render("Loading reports...")
	case a.err != nil:
		return a.styles.Error.Render(a.err.Error())
	case len(a.results) == 0:
		return a.styles.Muted.Render("No data to process.")
	}

	res := a.results[a.active]
	switch {
	case res.Failed():
		return a.styles.Error.Render(fmt.Sprintf("Error generating report %s: %v", res.Name, res.Err))
	case res.IsEmpty():
		return a.styles.Warning.Render(fmt.Sprintf("Report %s has no data.", res.Name))
	}
	return a.table.View()
}

// Active returns the index of the displayed report.
func (a *App) Active() int {
	return a.active
}

// Results returns the results of the last run.
func (a *App) Results() []domain.ReportResult {
	return a.results
}

// Err returns the error that stopped the last run, if any.
func (a *App) Err() error {
	return a.err
}

// Loading reports whether a pipeline run is in progress.
func (a *App) Loading() bool {
	return a.loading
}

// Cursor returns the selected table row.
func (a *App) Cursor() int {
	return a.table.Cursor()
}
