package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/rshade/tablestate/internal/config"
	"github.com/rshade/tablestate/internal/logging"
	"github.com/rshade/tablestate/internal/pagination"
	"github.com/rshade/tablestate/internal/records"
	"github.com/rshade/tablestate/internal/table"
)

// PageFlags holds the flags for the page command.
type PageFlags struct {
	DataFlags

	Page           int
	SelectMatching bool
	Output         string
}

// NewPageCmd creates the page command, which prints one page of filtered
// records together with the page window and selection state.
func NewPageCmd() *cobra.Command {
	var flags PageFlags

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Print one page of filtered records",
		Long: `Load records from one or more JSON or YAML files, apply filters, and print
a single page along with the page-number window and selection state.

Filter values are compared case-insensitively. A value of "all" disables a filter.`,
		Example: `  # Second page, 10 rows per page
  tablestate page --data orders.yaml --page 2 --page-size 10

  # Active customers whose fields mention "berlin", as JSON
  tablestate page --data customers.json --filter status=active --search berlin --output json

  # Select two records and show whether the page is fully selected
  tablestate page --data customers.json --select c-1 --select c-2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executePage(cmd, flags)
		},
	}

	flags.Bind(cmd)
	cmd.Flags().IntVar(&flags.Page, "page", pagination.DefaultPage, "1-based page number (clamped to the last page)")
	cmd.Flags().BoolVar(&flags.SelectMatching, "select-matching", false, "select every record that matches the filters")
	cmd.Flags().StringVar(&flags.Output, "output", "", "Output format: table, json, yaml (default from config)")

	return cmd
}

// executePage handles the page command logic.
func executePage(cmd *cobra.Command, flags PageFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	output := flags.Output
	if output == "" {
		output = configFromContext(ctx).Output.DefaultFormat
	}
	if !slices.Contains([]string{config.FormatTable, config.FormatJSON, config.FormatYAML}, output) {
		return fmt.Errorf("%w: %s", ErrUnsupportedOutput, output)
	}

	params := flags.params(ctx, flags.Page)
	ctrl, err := flags.buildController(ctx, params)
	if err != nil {
		return err
	}

	ctrl.Pages().GoToPage(params.ZeroBasedPage())
	if flags.SelectMatching {
		ctrl.SelectMatching(true)
	}

	view := ctrl.View()
	log.Debug().
		Ctx(ctx).
		Str("component", "cli").
		Str("operation", "page_rendered").
		Int("page", view.Meta.CurrentPage).
		Int("total_pages", view.Meta.TotalPages).
		Int("selected", view.SelectedCount).
		Msg("page rendered")

	switch output {
	case config.FormatJSON:
		return renderPageJSON(cmd.OutOrStdout(), newPageOutput(ctrl, view))
	case config.FormatYAML:
		return renderPageYAML(cmd.OutOrStdout(), newPageOutput(ctrl, view))
	default:
		return renderPageTable(cmd.OutOrStdout(), view, ctrl.Selection().IsSelected)
	}
}

// pageOutput is the JSON and YAML document for one page.
type pageOutput struct {
	Rows       []records.Record `json:"rows"       yaml:"rows"`
	Pagination pagination.Meta  `json:"pagination" yaml:"pagination"`
	Filters    map[string]any   `json:"filters"    yaml:"filters"`
	Active     []string         `json:"active_filters" yaml:"active_filters"`
	Selection  selectionOutput  `json:"selection"  yaml:"selection"`
}

// selectionOutput summarizes selection state for machine-readable output.
type selectionOutput struct {
	Count                 int      `json:"count"                  yaml:"count"`
	IDs                   []string `json:"ids"                    yaml:"ids"`
	PageAllSelected       bool     `json:"page_all_selected"      yaml:"page_all_selected"`
	PageIndeterminate     bool     `json:"page_indeterminate"     yaml:"page_indeterminate"`
	MatchingAllSelected   bool     `json:"matching_all_selected"  yaml:"matching_all_selected"`
	MatchingIndeterminate bool     `json:"matching_indeterminate" yaml:"matching_indeterminate"`
}

func newPageOutput(ctrl *table.Controller[records.Record], view table.View[records.Record]) pageOutput {
	rows := view.Rows
	if rows == nil {
		rows = []records.Record{}
	}
	active := view.ActiveFilters
	if active == nil {
		active = []string{}
	}
	ids := ctrl.Selection().GetSelectedIDs()
	if ids == nil {
		ids = []string{}
	}
	return pageOutput{
		Rows:       rows,
		Pagination: view.Meta,
		Filters:    view.Filters,
		Active:     active,
		Selection: selectionOutput{
			Count:                 view.SelectedCount,
			IDs:                   ids,
			PageAllSelected:       view.PageAllSelected,
			PageIndeterminate:     view.PageIndeterminate,
			MatchingAllSelected:   view.MatchingAllSelected,
			MatchingIndeterminate: view.MatchingIndeterminate,
		},
	}
}
