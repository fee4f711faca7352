package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/tablestate/internal/records"
	"github.com/rshade/tablestate/internal/table"
)

// BrowseModel is the Bubble Tea model for interactively paging, searching,
// and selecting records.
type BrowseModel struct {
	ctrl    *table.Controller[records.Record]
	columns []string

	state     ViewState
	cursor    int
	textInput textinput.Model

	width  int
	height int
}

// NewBrowseModel creates a model over ctrl. Columns are taken from the full
// source so they stay stable while filters change.
func NewBrowseModel(ctrl *table.Controller[records.Record]) *BrowseModel {
	return &BrowseModel{
		ctrl:      ctrl,
		columns:   records.Columns(ctrl.Filters().Source()),
		state:     ViewStateList,
		textInput: newSearchInput(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search records..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	return ti
}

// Controller returns the table the model drives.
func (m *BrowseModel) Controller() *table.Controller[records.Record] {
	return m.ctrl
}

// Cursor returns the highlighted row index on the current page.
func (m *BrowseModel) Cursor() int {
	return m.cursor
}

// State returns the current view state.
func (m *BrowseModel) State() ViewState {
	return m.state
}

// Init initializes the model.
func (m *BrowseModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		return m, nil
	}

	switch m.state {
	case ViewStateSearch:
		return m.handleSearchInput(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	default:
		return m, nil
	}
}

func (m *BrowseModel) handleSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter:
			m.state = ViewStateList
			m.textInput.Blur()
			m.ctrl.SetFilter(records.SearchKey, strings.TrimSpace(m.textInput.Value()))
			m.cursor = 0
			return m, nil
		case keyEsc:
			m.state = ViewStateList
			m.textInput.Blur()
			m.textInput.SetValue(m.currentSearch())
			return m, nil
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *BrowseModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	pages := m.ctrl.Pages()
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyNext, keyRight:
		pages.NextPage()
		m.cursor = 0
	case keyPrev, keyLeft:
		pages.PreviousPage()
		m.cursor = 0
	case keyFirst:
		pages.FirstPage()
		m.cursor = 0
	case keyLast:
		pages.LastPage()
		m.cursor = 0
	case keyUp, keyK:
		if m.cursor > 0 {
			m.cursor--
		}
	case keyDown, keyJ:
		if m.cursor < len(m.ctrl.Rows())-1 {
			m.cursor++
		}
	case keySpace:
		if rows := m.ctrl.Rows(); m.cursor < len(rows) {
			m.ctrl.ToggleRow(rows[m.cursor].ID())
		}
	case keyPage:
		view := m.ctrl.View()
		m.ctrl.SelectPage(!view.PageAllSelected)
	case keyMatching:
		view := m.ctrl.View()
		m.ctrl.SelectMatching(!view.MatchingAllSelected)
	case keyClear:
		m.ctrl.Selection().ClearSelection()
	case keyReset:
		m.ctrl.ResetFilters()
		m.textInput.SetValue(m.currentSearch())
		m.cursor = 0
	case keySlash:
		m.state = ViewStateSearch
		m.textInput.SetValue(m.currentSearch())
		m.textInput.CursorEnd()
		return m, m.textInput.Focus()
	}
	return m, nil
}

func (m *BrowseModel) currentSearch() string {
	return m.ctrl.Filters().Filters().String(records.SearchKey)
}

// View renders the current view.
func (m *BrowseModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	view := m.ctrl.View()
	p := message.NewPrinter(language.English)

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Records"))
	sb.WriteString("\n\n")

	if len(view.Rows) == 0 {
		sb.WriteString(mutedStyle.Render("No records match the current filters."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.renderRows(view))
	}

	sb.WriteString("\n")
	if view.Meta.TotalItems == 0 {
		sb.WriteString(labelStyle.Render("Showing 0 of 0 records"))
	} else {
		sb.WriteString(labelStyle.Render(p.Sprintf("Showing %d-%d of %d records",
			view.Meta.FirstItem, view.Meta.LastItem, view.Meta.TotalItems)))
	}
	sb.WriteString("\n")
	sb.WriteString(renderPageWindow(view.Meta.VisiblePages, view.Meta.CurrentPage))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render(p.Sprintf("Selected: %d", view.SelectedCount)))
	if len(view.ActiveFilters) > 0 {
		sb.WriteString(labelStyle.Render("  Filters: " + strings.Join(view.ActiveFilters, ", ")))
	}
	sb.WriteString("\n")

	if m.state == ViewStateSearch {
		sb.WriteString("\nSearch: " + m.textInput.View() + "\n")
	}

	sb.WriteString(mutedStyle.Render(
		"\n[n/p] Page  [g/G] First/Last  [space] Toggle  [a] Page  [A] Matching  [c] Clear  [/] Search  [r] Reset  [q] Quit"))
	return sb.String()
}

// colWidthLimit splits the terminal width evenly between the columns.
func (m *BrowseModel) colWidthLimit() int {
	n := len(m.columns)
	if n == 0 {
		return maxColWidth
	}
	avail := (m.width - rowPrefixWidth - colGap*(n-1)) / n
	return min(max(avail, minColWidth), maxColWidth)
}

// visibleRange returns the rows that fit the terminal height, centered on
// the cursor when the page is taller than the window.
func (m *BrowseModel) visibleRange(total int) (int, int) {
	budget := max(m.height-chromeLines, minVisibleRows)
	if m.state == ViewStateSearch {
		budget = max(budget-2, minVisibleRows)
	}
	if total <= budget {
		return 0, total
	}
	start := min(max(m.cursor-budget/2, 0), total-budget)
	return start, start + budget
}

// renderRows renders the page as fixed-width columns with a checkbox per row.
func (m *BrowseModel) renderRows(view table.View[records.Record]) string {
	limit := m.colWidthLimit()
	widths := make([]int, len(m.columns))
	for i, c := range m.columns {
		widths[i] = min(len(c), limit)
		for _, r := range view.Rows {
			widths[i] = max(widths[i], min(len([]rune(r.Field(c))), limit))
		}
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true)
	cursorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	header := make([]string, len(m.columns))
	for i, c := range m.columns {
		header[i] = pad(strings.ToUpper(c), widths[i])
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("      " + strings.Join(header, "  ")))
	sb.WriteString("\n")

	sel := m.ctrl.Selection()
	start, end := m.visibleRange(len(view.Rows))
	for i := start; i < end; i++ {
		r := view.Rows[i]
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		box := "[ ]"
		if sel.IsSelected(r.ID()) {
			box = "[x]"
		}
		cells := make([]string, len(m.columns))
		for j, c := range m.columns {
			cells[j] = pad(r.Field(c), widths[j])
		}
		line := marker + box + " " + strings.Join(cells, "  ")
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderPageWindow renders 1-based page numbers with the current one
// highlighted.
func renderPageWindow(pages []int, current int) string {
	highlight := lipgloss.NewStyle().Bold(true).Foreground(ColorHighlight)
	parts := make([]string, len(pages))
	for i, n := range pages {
		if n == current {
			parts[i] = highlight.Render(fmt.Sprintf("[%d]", n))
		} else {
			parts[i] = fmt.Sprintf(" %d ", n)
		}
	}
	return "Pages: " + strings.Join(parts, "")
}

// pad truncates s to width runes or right-pads it with spaces.
func pad(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) > width {
		if width > 3 {
			return string(r[:width-3]) + "..."
		}
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
