// Package table composes the filter, pagination, and selection engines into
// a single table: source rows are filtered, the filtered rows are paged, and
// selection is tracked by id independently of both.
//
// The engines never reference each other; the Controller wires them so that
// the paged dataset always equals the filtered view and any change to the
// filters or the source returns to the first page. Resyncing is lazy: a
// mutation only marks pagination stale, and the next read through the
// controller re-runs the predicate. A panicking predicate therefore surfaces
// from that read, not from the mutation.
package table

import (
	"github.com/rs/zerolog"

	"github.com/rshade/tablestate/internal/filter"
	"github.com/rshade/tablestate/internal/pagination"
	"github.com/rshade/tablestate/internal/selection"
)

// Options configures a Controller.
type Options[T any] struct {
	// Initial is the filter baseline.
	Initial filter.Criteria

	// Predicate narrows the source; nil shows every row.
	Predicate filter.Predicate[T]

	// GetItemID identifies rows for selection. Required.
	GetItemID selection.IDFunc[T]

	PageSize        int
	MaxVisiblePages int
	InitialSelected []string

	// OnFiltersChange is called after every filter mutation. Reads made
	// through the controller from inside it see the resynced pagination.
	OnFiltersChange filter.ChangeFunc

	// Logger defaults to a disabled logger when nil.
	Logger *zerolog.Logger
}

// View is a snapshot of everything a renderer needs for one frame.
type View[T any] struct {
	Rows                  []T
	State                 pagination.State
	Info                  pagination.Info
	Meta                  pagination.Meta
	Filters               filter.Criteria
	ActiveFilters         []string
	SelectedCount         int
	PageAllSelected       bool
	PageIndeterminate     bool
	MatchingAllSelected   bool
	MatchingIndeterminate bool
}

// Controller owns one engine of each kind for a table of T.
type Controller[T any] struct {
	filters   *filter.Engine[T]
	pages     *pagination.Engine[T]
	selection *selection.Engine[T]

	// stale is set by filter or source changes and cleared by sync.
	stale           bool
	staleOperation  string
	onFiltersChange filter.ChangeFunc
	logger          zerolog.Logger
}

// NewController builds a controller over source.
func NewController[T any](source []T, opts Options[T]) *Controller[T] {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	c := &Controller[T]{
		onFiltersChange: opts.OnFiltersChange,
		logger:          logger.With().Str("component", "table").Logger(),
	}

	c.filters = filter.New(opts.Initial, opts.Predicate,
		filter.WithOnChange(c.filtersChanged),
		filter.WithLogger(logger),
	)
	c.filters.SetSource(source)

	pageOpts := pagination.Params{
		PageSize:        opts.PageSize,
		MaxVisiblePages: opts.MaxVisiblePages,
	}.Options()
	pageOpts = append(pageOpts, pagination.WithLogger(logger))
	c.pages = pagination.New(c.filters.FilteredData(), pageOpts...)

	c.selection = selection.New(opts.GetItemID,
		selection.WithInitialSelected(opts.InitialSelected...),
		selection.WithLogger(logger),
	)
	return c
}

// Filters exposes the filter engine. Mutations made through it mark
// pagination stale; it resyncs on the next controller read.
func (c *Controller[T]) Filters() *filter.Engine[T] {
	return c.filters
}

// Pages exposes the pagination engine for navigation, resynced with the
// filtered view.
func (c *Controller[T]) Pages() *pagination.Engine[T] {
	c.sync()
	return c.pages
}

// Selection exposes the selection engine.
func (c *Controller[T]) Selection() *selection.Engine[T] {
	return c.selection
}

// SetSource replaces the unfiltered rows and returns to the first page.
// Selected ids are kept even if their rows disappear.
func (c *Controller[T]) SetSource(items []T) {
	c.filters.SetSource(items)
	c.markStale("set_source")
}

// SetFilter sets one filter field.
func (c *Controller[T]) SetFilter(key string, value any) {
	c.filters.SetFilter(key, value)
}

// UpdateFilters merges partial into the filters.
func (c *Controller[T]) UpdateFilters(partial filter.Criteria) {
	c.filters.UpdateFilters(partial)
}

// ResetFilters restores the filter baseline.
func (c *Controller[T]) ResetFilters() {
	c.filters.ResetFilters()
}

// Rows returns the rows on the current page.
func (c *Controller[T]) Rows() []T {
	c.sync()
	return c.pages.PaginatedData()
}

// Matching returns every row that passes the filters, across all pages.
func (c *Controller[T]) Matching() []T {
	return c.filters.FilteredData()
}

// SelectPage selects or deselects every row on the current page.
func (c *Controller[T]) SelectPage(selected bool) {
	c.selection.HandleSelectAll(selected, c.Rows())
}

// SelectMatching selects or deselects every row matching the filters.
func (c *Controller[T]) SelectMatching(selected bool) {
	c.selection.HandleSelectAll(selected, c.Matching())
}

// ToggleRow flips the selection of a single row id.
func (c *Controller[T]) ToggleRow(id string) {
	c.selection.ToggleItem(id)
}

// SelectedRows returns the selected rows among the unfiltered source.
func (c *Controller[T]) SelectedRows() []T {
	return c.selection.SelectedIn(c.filters.Source())
}

// View captures the current frame.
func (c *Controller[T]) View() View[T] {
	rows := c.Rows()
	matching := c.Matching()
	info := c.pages.Info()
	state := c.pages.State()

	return View[T]{
		Rows:                  rows,
		State:                 state,
		Info:                  info,
		Meta:                  pagination.NewMeta(state, info),
		Filters:               c.filters.Filters(),
		ActiveFilters:         c.filters.ActiveFilters(),
		SelectedCount:         c.selection.GetSelectedCount(),
		PageAllSelected:       c.selection.IsAllSelected(rows),
		PageIndeterminate:     c.selection.IsIndeterminate(rows),
		MatchingAllSelected:   c.selection.IsAllSelected(matching),
		MatchingIndeterminate: c.selection.IsIndeterminate(matching),
	}
}

func (c *Controller[T]) filtersChanged(filters filter.Criteria) {
	// pages is nil until NewController returns.
	if c.pages == nil {
		return
	}
	c.markStale("filters_changed")
	if c.onFiltersChange != nil {
		c.onFiltersChange(filters)
	}
}

func (c *Controller[T]) markStale(operation string) {
	c.stale = true
	c.staleOperation = operation
}

// sync resyncs pagination if a filter or source change is pending. If the
// predicate panics the controller stays stale, so the next read retries.
func (c *Controller[T]) sync() {
	if !c.stale {
		return
	}
	data := c.filters.FilteredData()
	c.stale = false
	c.pages.SetData(data)
	c.pages.ResetToFirstPage()
	c.logger.Debug().
		Str("operation", c.staleOperation).
		Int("matching", len(data)).
		Int("total_pages", c.pages.TotalPages()).
		Msg("pagination resynced")
}
