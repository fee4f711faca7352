package pagination

import (
	"github.com/rs/zerolog"
)

// Engine defaults.
const (
	DefaultPageSize        = 25
	MinPageSize            = 1
	DefaultMaxVisiblePages = 5
)

// State is the mutable pagination state. CurrentPage is 0-based.
type State struct {
	CurrentPage int `json:"current_page" yaml:"current_page"`
	PageSize    int `json:"page_size"    yaml:"page_size"`
	TotalItems  int `json:"total_items"  yaml:"total_items"`
}

// Info is derived from State and never set directly.
// EndIndex is inclusive and is -1 when there are no items.
type Info struct {
	TotalPages   int   `json:"total_pages"   yaml:"total_pages"`
	StartIndex   int   `json:"start_index"   yaml:"start_index"`
	EndIndex     int   `json:"end_index"     yaml:"end_index"`
	HasPrevious  bool  `json:"has_previous"  yaml:"has_previous"`
	HasNext      bool  `json:"has_next"      yaml:"has_next"`
	VisiblePages []int `json:"visible_pages" yaml:"visible_pages"`
}

// ChangeFunc receives the state after each transition that changed it.
type ChangeFunc func(state State)

// Option configures an Engine.
type Option func(*settings)

type settings struct {
	pageSize        int
	maxVisiblePages int
	onChange        ChangeFunc
	logger          zerolog.Logger
}

// WithPageSize sets the initial page size. Values below MinPageSize are ignored.
func WithPageSize(n int) Option {
	return func(s *settings) {
		if n >= MinPageSize {
			s.pageSize = n
		}
	}
}

// WithMaxVisiblePages bounds the page-number window. Values below 1 are ignored.
func WithMaxVisiblePages(n int) Option {
	return func(s *settings) {
		if n >= 1 {
			s.maxVisiblePages = n
		}
	}
}

// WithOnChange registers a callback fired synchronously when the state changes.
func WithOnChange(fn ChangeFunc) Option {
	return func(s *settings) {
		s.onChange = fn
	}
}

// WithLogger sets the logger used for debug tracing of transitions.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// Engine owns the page index and size for one dataset.
type Engine[T any] struct {
	data    []T
	counted bool
	state   State
	dataRev uint64
	memo    pageMemo[T]

	maxVisiblePages int
	onChange        ChangeFunc
	logger          zerolog.Logger
}

type pageMemo[T any] struct {
	valid    bool
	page     int
	pageSize int
	dataRev  uint64
	data     []T
}

// New creates an Engine over data.
func New[T any](data []T, opts ...Option) *Engine[T] {
	e := newEngine[T](opts)
	e.data = data
	e.state.TotalItems = len(data)
	return e
}

// NewWithCount creates an Engine that only knows the number of items.
// PaginatedData is always empty for such an engine.
func NewWithCount[T any](totalItems int, opts ...Option) *Engine[T] {
	e := newEngine[T](opts)
	e.counted = true
	e.state.TotalItems = max(totalItems, 0)
	return e
}

func newEngine[T any](opts []Option) *Engine[T] {
	s := settings{
		pageSize:        DefaultPageSize,
		maxVisiblePages: DefaultMaxVisiblePages,
		logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	return &Engine[T]{
		state:           State{PageSize: s.pageSize},
		maxVisiblePages: s.maxVisiblePages,
		onChange:        s.onChange,
		logger:          s.logger.With().Str("component", "pagination").Logger(),
	}
}

// State returns a copy of the current state.
func (e *Engine[T]) State() State {
	return e.state
}

// TotalPages returns ceil(TotalItems / PageSize), or 0 when there are no items.
func (e *Engine[T]) TotalPages() int {
	return CalculateTotalPages(e.state.TotalItems, e.state.PageSize)
}

// Info derives boundaries, navigation flags, and the page window.
func (e *Engine[T]) Info() Info {
	total := e.TotalPages()
	start := e.state.CurrentPage * e.state.PageSize
	end := min(start+e.state.PageSize-1, e.state.TotalItems-1)

	return Info{
		TotalPages:   total,
		StartIndex:   start,
		EndIndex:     end,
		HasPrevious:  e.state.CurrentPage > 0,
		HasNext:      e.state.CurrentPage < total-1,
		VisiblePages: VisiblePages(e.state.CurrentPage, total, e.maxVisiblePages),
	}
}

// VisiblePages returns the bounded window of page indices around the current page.
func (e *Engine[T]) VisiblePages() []int {
	return VisiblePages(e.state.CurrentPage, e.TotalPages(), e.maxVisiblePages)
}

// PaginatedData returns the items in [StartIndex, EndIndex]. The result shares
// backing storage with the dataset and is cached until page, size, or data change.
func (e *Engine[T]) PaginatedData() []T {
	if e.memo.valid && e.memo.page == e.state.CurrentPage &&
		e.memo.pageSize == e.state.PageSize && e.memo.dataRev == e.dataRev {
		return e.memo.data
	}

	var page []T
	if !e.counted && len(e.data) > 0 {
		start := min(e.state.CurrentPage*e.state.PageSize, len(e.data))
		end := min(start+e.state.PageSize, len(e.data))
		page = e.data[start:end:end]
	}
	if page == nil {
		page = []T{}
	}

	e.memo = pageMemo[T]{
		valid:    true,
		page:     e.state.CurrentPage,
		pageSize: e.state.PageSize,
		dataRev:  e.dataRev,
		data:     page,
	}
	return page
}

// NextPage moves forward one page unless already on the last page.
func (e *Engine[T]) NextPage() {
	if !e.Info().HasNext {
		return
	}
	e.setPage(e.state.CurrentPage+1, "next_page")
}

// PreviousPage moves back one page unless already on the first page.
func (e *Engine[T]) PreviousPage() {
	if e.state.CurrentPage <= 0 {
		return
	}
	e.setPage(e.state.CurrentPage-1, "previous_page")
}

// GoToPage jumps to page n, clamped to [0, max(TotalPages-1, 0)].
func (e *Engine[T]) GoToPage(n int) {
	e.setPage(e.clamp(n), "go_to_page")
}

// FirstPage jumps to page 0.
func (e *Engine[T]) FirstPage() {
	e.setPage(0, "first_page")
}

// LastPage jumps to the last page, or page 0 when there are no pages.
func (e *Engine[T]) LastPage() {
	e.setPage(max(e.TotalPages()-1, 0), "last_page")
}

// ResetToFirstPage returns to page 0. Callers use it after the upstream
// dataset changes, e.g. when filters are applied.
func (e *Engine[T]) ResetToFirstPage() {
	e.setPage(0, "reset_to_first_page")
}

// SetPageSize replaces the page size and always returns to page 0.
// Values below MinPageSize are raised to MinPageSize.
func (e *Engine[T]) SetPageSize(n int) {
	prev := e.state
	e.state.PageSize = max(n, MinPageSize)
	e.state.CurrentPage = 0
	e.logger.Debug().
		Str("operation", "set_page_size").
		Int("requested", n).
		Int("page_size", e.state.PageSize).
		Int("total_pages", e.TotalPages()).
		Msg("page size changed")
	e.notify(prev)
}

// SetData replaces the dataset. The current page is clamped to the new last page.
func (e *Engine[T]) SetData(data []T) {
	prev := e.state
	e.data = data
	e.counted = false
	e.dataRev++
	e.state.TotalItems = len(data)
	e.state.CurrentPage = e.clamp(e.state.CurrentPage)
	e.logger.Debug().
		Str("operation", "set_data").
		Int("total_items", e.state.TotalItems).
		Int("current_page", e.state.CurrentPage).
		Msg("dataset replaced")
	e.notify(prev)
}

// SetTotalItems switches the engine to count-only mode with n items.
func (e *Engine[T]) SetTotalItems(n int) {
	prev := e.state
	e.data = nil
	e.counted = true
	e.dataRev++
	e.state.TotalItems = max(n, 0)
	e.state.CurrentPage = e.clamp(e.state.CurrentPage)
	e.notify(prev)
}

func (e *Engine[T]) clamp(page int) int {
	last := max(e.TotalPages()-1, 0)
	return min(max(page, 0), last)
}

func (e *Engine[T]) setPage(page int, operation string) {
	prev := e.state
	e.state.CurrentPage = page
	e.logger.Debug().
		Str("operation", operation).
		Int("from", prev.CurrentPage).
		Int("to", page).
		Msg("page changed")
	e.notify(prev)
}

func (e *Engine[T]) notify(prev State) {
	if e.onChange != nil && prev != e.state {
		e.onChange(e.state)
	}
}
