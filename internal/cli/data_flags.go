package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/rshade/tablestate/internal/filter"
	"github.com/rshade/tablestate/internal/logging"
	"github.com/rshade/tablestate/internal/pagination"
	"github.com/rshade/tablestate/internal/records"
	"github.com/rshade/tablestate/internal/table"
)

// Usage errors.
var (
	// ErrNoData is returned when no --data flag was given.
	ErrNoData = errors.New("at least one --data file is required")
	// ErrUnsupportedOutput is returned for an --output other than table, json, or yaml.
	ErrUnsupportedOutput = errors.New("unsupported output format")
)

// DataFlags holds the flags shared by commands that build a table from
// record files.
type DataFlags struct {
	Data    []string
	Filters []string
	Search  string

	PageSize        int
	MaxVisiblePages int
	Select          []string
}

// Bind registers the flags on cmd.
func (f *DataFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.Data, "data", nil, "JSON or YAML record file (repeatable)")
	cmd.Flags().StringArrayVar(&f.Filters, "filter", nil, "filter as key=value (repeatable, 'all' disables)")
	cmd.Flags().StringVar(&f.Search, "search", "", "case-insensitive text matched against every field")
	cmd.Flags().IntVar(&f.PageSize, "page-size", 0, "rows per page (default from config)")
	cmd.Flags().IntVar(&f.MaxVisiblePages, "max-visible-pages", 0, "page numbers shown in the window (default from config)")
	cmd.Flags().StringArrayVar(&f.Select, "select", nil, "record id to select (repeatable)")
}

// params resolves pagination flags against the configured defaults.
func (f *DataFlags) params(ctx context.Context, page int) pagination.Params {
	cfg := configFromContext(ctx)
	p := pagination.Params{
		Page:            page,
		PageSize:        cfg.Table.PageSize,
		MaxVisiblePages: cfg.Table.MaxVisiblePages,
	}
	if f.PageSize != 0 {
		p.PageSize = f.PageSize
	}
	if f.MaxVisiblePages != 0 {
		p.MaxVisiblePages = f.MaxVisiblePages
	}
	return p
}

// criteria builds the filter criteria from --filter and --search.
func (f *DataFlags) criteria() (filter.Criteria, error) {
	crit, err := records.ParseFilterFlags(f.Filters)
	if err != nil {
		return nil, err
	}
	if f.Search != "" {
		crit[records.SearchKey] = f.Search
	}
	return crit, nil
}

// buildController loads the record files and applies filters and selection.
// The baseline is empty, so flag criteria count as active filters.
func (f *DataFlags) buildController(
	ctx context.Context,
	params pagination.Params,
) (*table.Controller[records.Record], error) {
	if len(f.Data) == 0 {
		return nil, ErrNoData
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	crit, err := f.criteria()
	if err != nil {
		return nil, err
	}

	rows, err := records.Load(ctx, f.Data...)
	if err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	ctrl := table.NewController(rows, table.Options[records.Record]{
		Initial:         filter.Criteria{},
		Predicate:       records.Match,
		GetItemID:       records.GetID,
		PageSize:        params.PageSize,
		MaxVisiblePages: params.MaxVisiblePages,
		InitialSelected: f.Select,
		Logger:          log,
	})
	if len(crit) > 0 {
		ctrl.UpdateFilters(crit)
	}

	log.Debug().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "build_table").
		Int("records", len(rows)).
		Int("matching", len(ctrl.Matching())).
		Strs("active_filters", ctrl.Filters().ActiveFilters()).
		Msg("table built")
	return ctrl, nil
}
