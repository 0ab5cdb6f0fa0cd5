package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dealscope/prospector/pkg/prospect"
	"dealscope/prospector/pkg/prospect/query"
	"dealscope/prospector/pkg/viewstate"
)

// minStep is how far + and - move the combined score minimum.
const minStep = 10

// Records supplies the current prospect list.
type Records interface {
	Records() []prospect.Prospect
}

// ReloadFunc reloads the dataset behind Records.
type ReloadFunc func(ctx context.Context) error

// Options configures a Model.
type Options struct {
	Dataset  Records
	Store    *viewstate.Store
	Pipeline *query.Pipeline

	// Reload is called by the reload key. Nil disables reloading.
	Reload ReloadFunc

	// IndustryLimit caps the industry picker. Zero lists every industry.
	IndustryLimit int

	// LoadErr is the error of the initial load, shown on start.
	LoadErr error
}

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeColumns
	modeIndustries
)

type pickerItem struct {
	id    string
	label string
}

// reloadedMsg reports the outcome of a reload started by the reload key.
type reloadedMsg struct {
	err error
}

// Model is the bubbletea model of the prospect browser.
type Model struct {
	dataset       Records
	store         *viewstate.Store
	pipeline      *query.Pipeline
	reload        ReloadFunc
	industryLimit int

	view     query.View
	rows     []query.Row
	groupIdx int

	mode   mode
	items  []pickerItem
	cursor int

	table  table.Model
	search textinput.Model
	help   help.Model
	keys   keyMap
	styles Styles

	status string
	err    error
	width  int
	height int
}

// New creates a browser over the given dataset and session store.
func New(opts Options) Model {
	if opts.Store == nil {
		opts.Store = viewstate.NewStore(viewstate.Default())
	}
	if opts.Pipeline == nil {
		opts.Pipeline = query.NewPipeline()
	}

	km := table.DefaultKeyMap()
	km.GotoTop = key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "go to start"))
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(15),
		table.WithKeyMap(km),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(colorBorder)
	ts.Selected = ts.Selected.Bold(true).Foreground(lipgloss.Color("#101F38")).Background(colorExcellent)
	t.SetStyles(ts)

	si := textinput.New()
	si.Placeholder = "company, contact, title or industry"
	si.Prompt = "/ "
	si.CharLimit = 100
	si.Width = 40
	si.SetValue(opts.Store.Snapshot().Search)

	m := Model{
		dataset:       opts.Dataset,
		store:         opts.Store,
		pipeline:      opts.Pipeline,
		reload:        opts.Reload,
		industryLimit: opts.IndustryLimit,
		table:         t,
		search:        si,
		help:          help.New(),
		keys:          defaultKeyMap(),
		styles:        DefaultStyles(),
		err:           opts.LoadErr,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-16, 5))
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
		} else {
			m.err = nil
			m.status = fmt.Sprintf("Reloaded %d prospects", len(m.records()))
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeColumns, modeIndustries:
			return m.updatePicker(msg), nil
		default:
			return m.updateBrowse(msg)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.NextGroup):
		m.moveGroup(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevGroup):
		m.moveGroup(-1)
		return m, nil
	case key.Matches(msg, m.keys.GroupBy):
		m.dispatch(viewstate.SetGroupBy(nextGroupBy(m.store.Snapshot().GroupBy)))
		m.groupIdx = 0
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Columns):
		m.openPicker(modeColumns)
		return m, nil
	case key.Matches(msg, m.keys.Industries):
		m.openPicker(modeIndustries)
		return m, nil
	case key.Matches(msg, m.keys.Rate):
		if row, ok := m.SelectedRow(); ok {
			stars := int(msg.String()[0] - '0')
			m.dispatch(viewstate.SetRating(row.Key, stars))
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.RaiseMin):
		m.dispatch(viewstate.SetMin(viewstate.ScoreCombined, m.store.Snapshot().Scores.Combined.Min+minStep))
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.LowerMin):
		m.dispatch(viewstate.SetMin(viewstate.ScoreCombined, m.store.Snapshot().Scores.Combined.Min-minStep))
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.ClearFilter):
		m.dispatch(viewstate.ClearFilters())
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if m.reload == nil {
			return m, nil
		}
		m.status = "Reloading..."
		reload := m.reload
		return m, func() tea.Msg {
			return reloadedMsg{err: reload(context.Background())}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.dispatch(viewstate.SetSearch(""))
		m.refresh()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.store.Snapshot().Search {
		m.dispatch(viewstate.SetSearch(m.search.Value()))
		m.groupIdx = 0
		m.refresh()
	}
	return m, cmd
}

func (m Model) updatePicker(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Close), msg.String() == "q":
		m.mode = modeBrowse
	case msg.Type == tea.KeyUp || msg.String() == "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case msg.Type == tea.KeyDown || msg.String() == "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor >= len(m.items) {
			break
		}
		id := m.items[m.cursor].id
		if m.mode == modeColumns {
			m.dispatch(viewstate.ToggleColumn(id))
		} else {
			m.dispatch(viewstate.ToggleIndustry(id))
		}
		m.refresh()
	}
	return m
}

func (m *Model) openPicker(md mode) {
	m.mode = md
	m.cursor = 0
	m.items = nil
	if md == modeColumns {
		for _, id := range prospect.ToggleableColumns() {
			if f, ok := prospect.LookupField(id); ok {
				m.items = append(m.items, pickerItem{id: id, label: f.Label})
			}
		}
		return
	}
	for _, ind := range query.TopIndustries(m.records(), m.industryLimit) {
		m.items = append(m.items, pickerItem{id: ind, label: ind})
	}
}

func (m *Model) dispatch(actions ...viewstate.Action) {
	if _, err := m.store.Dispatch(actions...); err != nil {
		m.err = err
		return
	}
	m.err = nil
}

func (m *Model) moveGroup(delta int) {
	n := len(m.view.Groups)
	if n == 0 {
		return
	}
	m.groupIdx = (m.groupIdx + delta + n) % n
	m.fillTable()
}

func (m *Model) records() []prospect.Prospect {
	if m.dataset == nil {
		return nil
	}
	return m.dataset.Records()
}

// refresh re-runs the pipeline for the current state and rebuilds the table.
func (m *Model) refresh() {
	m.view = m.pipeline.Run(context.Background(), m.records(), m.store.Snapshot())
	if m.groupIdx >= len(m.view.Groups) {
		m.groupIdx = 0
	}

	cols := make([]table.Column, 0, len(m.view.Columns))
	for _, id := range m.view.Columns {
		f, ok := prospect.LookupField(id)
		if !ok {
			continue
		}
		cols = append(cols, table.Column{Title: f.Label, Width: columnWidth(f)})
	}
	// Rows must match the column count before SetColumns re-renders.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.fillTable()
}

func (m *Model) fillTable() {
	m.rows = nil
	if len(m.view.Groups) > 0 {
		m.rows = query.ProjectAll(m.view.Groups[m.groupIdx].Prospects, m.view.Columns, m.store.Snapshot().Ratings)
	}
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		cells := make(table.Row, len(r.Cells))
		for j, c := range r.Cells {
			cells[j] = c.Value
		}
		rows[i] = cells
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func columnWidth(f prospect.Field) int {
	switch f.Kind {
	case prospect.KindRating:
		return 7
	case prospect.KindScore, prospect.KindCount:
		return max(len(f.Label), 6)
	}
	switch f.ID {
	case prospect.FieldCompanyName, prospect.FieldFullName, prospect.FieldLinkedInJobTitle:
		return 24
	}
	return max(len(f.Label), 16)
}

func nextGroupBy(g viewstate.GroupBy) viewstate.GroupBy {
	switch g {
	case viewstate.GroupNone:
		return viewstate.GroupCombined
	case viewstate.GroupCombined:
		return viewstate.GroupBoomer
	case viewstate.GroupBoomer:
		return viewstate.GroupIndustry
	default:
		return viewstate.GroupNone
	}
}

// View returns the current derived view.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("M&A Prospects"))
	b.WriteString("\n")
	b.WriteString(m.statsView())
	b.WriteString("\n")

	switch m.mode {
	case modeSearch:
		b.WriteString(m.search.View())
		b.WriteString("\n")
	default:
		if s := m.store.Snapshot().Search; s != "" {
			b.WriteString(m.styles.Muted.Render("search: " + s))
			b.WriteString("\n")
		}
	}

	switch m.mode {
	case modeColumns, modeIndustries:
		b.WriteString(m.pickerView())
	default:
		b.WriteString(m.groupHeader())
		b.WriteString("\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(m.detailView())
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Muted.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statsView() string {
	s := m.view.Stats
	card := func(label, value string, style lipgloss.Style) string {
		return m.styles.Card.Render(m.styles.CardLabel.Render(label) + "\n" + style.Render(value))
	}
	plain := lipgloss.NewStyle().Bold(true)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Prospects", fmt.Sprintf("%d of %d", s.Total, m.view.Total), plain),
		card("Avg Combined", fmt.Sprintf("%.1f", s.AvgCombined), TierStyle(prospect.ScoreTier(s.AvgCombined))),
		card("Avg Boomer", fmt.Sprintf("%.1f", s.AvgBoomer), TierStyle(prospect.ScoreTier(s.AvgBoomer))),
		card("Avg Burnout", fmt.Sprintf("%.1f", s.AvgBurnout), TierStyle(prospect.ScoreTier(s.AvgBurnout))),
		card("Active filters", fmt.Sprintf("%d", m.view.ActiveFilters), plain),
	)
}

func (m Model) groupHeader() string {
	if len(m.view.Groups) == 0 {
		return m.styles.Muted.Render("No prospects match the current filters.")
	}
	g := m.view.Groups[m.groupIdx]
	if len(g.Prospects) == 0 {
		return m.styles.Muted.Render(g.Label + " (0): no prospects match the current filters.")
	}
	header := m.styles.Group.Render(fmt.Sprintf("%s (%d)", g.Label, len(g.Prospects)))
	if len(m.view.Groups) > 1 {
		header += m.styles.Muted.Render(fmt.Sprintf("  group %d of %d", m.groupIdx+1, len(m.view.Groups)))
	}
	return header
}

func (m Model) detailView() string {
	row, ok := m.SelectedRow()
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", m.styles.Group.Render(string(row.Key)), prospect.Stars(row.Rating))
	if row.DecisionMakerStatus != "" {
		fmt.Fprintf(&b, "%s%s\n", m.styles.Label.Render("Decision Maker"), row.DecisionMakerStatus)
	}
	for _, c := range row.Cells {
		if c.Tier == "" {
			continue
		}
		fmt.Fprintf(&b, "%s%s\n", m.styles.Label.Render(c.Label), TierStyle(c.Tier).Render(c.Value))
	}
	for _, url := range []string{row.CompanyURL, row.ProfileURL} {
		if url == "" {
			continue
		}
		b.WriteString(m.styles.Muted.Render(url))
		b.WriteString("\n")
	}
	return m.styles.Detail.Render(b.String()) + "\n"
}

func (m Model) pickerView() string {
	title := "Columns"
	state := m.store.Snapshot()
	if m.mode == modeIndustries {
		title = "Industries"
	}

	var b strings.Builder
	b.WriteString(m.styles.Group.Render(title))
	b.WriteString("\n")
	if len(m.items) == 0 {
		b.WriteString(m.styles.Muted.Render("(none)"))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		checked := state.HasIndustry(item.id)
		if m.mode == modeColumns {
			checked = state.IsVisible(item.id)
		}
		box := "[ ]"
		if checked {
			box = m.styles.Checked.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", box, item.label)
		if i == m.cursor {
			line = m.styles.Cursor.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// SelectedRow returns the projected row under the table cursor.
func (m Model) SelectedRow() (query.Row, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return query.Row{}, false
	}
	return m.rows[i], true
}

// CurrentView returns the view last derived from the store.
func (m Model) CurrentView() query.View {
	return m.view
}

// Run starts the browser on the alternate screen and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
