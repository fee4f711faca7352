package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/rshade/tablestate/internal/pagination"
	"github.com/rshade/tablestate/internal/records"
	"github.com/rshade/tablestate/internal/table"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// maxCellWidth truncates long cell values in table output.
const maxCellWidth = 40

// renderPageTable renders the current page as an aligned table followed by
// the summary, page window, filter, and selection lines.
func renderPageTable(w io.Writer, view table.View[records.Record], isSelected func(id string) bool) error {
	p := message.NewPrinter(language.English)

	if len(view.Rows) == 0 {
		fmt.Fprintln(w, "No records match the current filters.")
	} else {
		cols := records.Columns(view.Rows)
		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

		header := make([]string, 0, len(cols)+1)
		rule := make([]string, 0, len(cols)+1)
		header = append(header, "SEL")
		rule = append(rule, "---")
		for _, c := range cols {
			header = append(header, strings.ToUpper(c))
			rule = append(rule, strings.Repeat("-", len(c)))
		}
		fmt.Fprintln(tw, strings.Join(header, "\t"))
		fmt.Fprintln(tw, strings.Join(rule, "\t"))

		for _, r := range view.Rows {
			cells := make([]string, 0, len(cols)+1)
			cells = append(cells, checkbox(isSelected(r.ID())))
			for _, c := range cols {
				cells = append(cells, cellValue(r[c]))
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("flushing table writer: %w", err)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryLine(p, view.Meta))
	fmt.Fprintln(w, pageWindowLine(view.Meta))
	if len(view.ActiveFilters) > 0 {
		fmt.Fprintln(w, filterLine(view))
	}
	fmt.Fprintln(w, selectionLine(p, view))
	return nil
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// cellValue stringifies a field for table output, truncating long values.
func cellValue(v any) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		s = fmt.Sprint(v)
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > maxCellWidth {
		s = string(r[:maxCellWidth-3]) + "..."
	}
	return s
}

// summaryLine renders "Showing 26-50 of 1,234 records (page 2 of 50)".
func summaryLine(p *message.Printer, meta pagination.Meta) string {
	if meta.TotalItems == 0 {
		return "Showing 0 of 0 records"
	}
	return p.Sprintf("Showing %d-%d of %d records (page %d of %d)",
		meta.FirstItem, meta.LastItem, meta.TotalItems, meta.CurrentPage, meta.TotalPages)
}

// pageWindowLine renders the visible page numbers with the current page in
// brackets, e.g. "Pages: < 1 [2] 3 4 5 >".
func pageWindowLine(meta pagination.Meta) string {
	var b strings.Builder
	b.WriteString("Pages:")
	if meta.HasPrevious {
		b.WriteString(" <")
	}
	for _, n := range meta.VisiblePages {
		if n == meta.CurrentPage {
			fmt.Fprintf(&b, " [%d]", n)
		} else {
			fmt.Fprintf(&b, " %d", n)
		}
	}
	if meta.HasNext {
		b.WriteString(" >")
	}
	return b.String()
}

func filterLine(view table.View[records.Record]) string {
	parts := make([]string, 0, len(view.ActiveFilters))
	for _, key := range view.ActiveFilters {
		parts = append(parts, key+"="+cellValue(view.Filters[key]))
	}
	return "Filters: " + strings.Join(parts, ", ")
}

// selectionLine reports the selection count and the page's tri-state.
func selectionLine(p *message.Printer, view table.View[records.Record]) string {
	return p.Sprintf("Selected: %d (page: %s, matching: %s)",
		view.SelectedCount,
		triState(view.PageAllSelected, view.PageIndeterminate),
		triState(view.MatchingAllSelected, view.MatchingIndeterminate))
}

func triState(all, some bool) string {
	switch {
	case all:
		return "all"
	case some:
		return "some"
	default:
		return "none"
	}
}

// renderPageJSON writes the page as indented JSON.
func renderPageJSON(w io.Writer, out pageOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// renderPageYAML writes the page as YAML.
func renderPageYAML(w io.Writer, out pageOutput) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return encoder.Close()
}
