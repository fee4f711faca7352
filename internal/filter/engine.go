package filter

import (
	"github.com/rs/zerolog"
)

// Predicate narrows items to those matching filters. It must be pure.
type Predicate[T any] func(items []T, filters Criteria) []T

// ChangeFunc receives the complete criteria after every mutation.
type ChangeFunc func(filters Criteria)

// Option configures an Engine.
type Option func(*settings)

type settings struct {
	onChange ChangeFunc
	logger   zerolog.Logger
}

// WithOnChange registers a callback fired synchronously after each mutation.
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

// Engine owns the current filter criteria for one table.
type Engine[T any] struct {
	initial   Criteria
	current   Criteria
	predicate Predicate[T]
	source    []T

	// revisions bump on every mutation so the memo never compares criteria.
	filtersRev uint64
	sourceRev  uint64
	memo       filterMemo[T]

	onChange ChangeFunc
	logger   zerolog.Logger
}

type filterMemo[T any] struct {
	valid      bool
	filtersRev uint64
	sourceRev  uint64
	data       []T
}

// New creates an Engine with the given baseline. predicate may be nil, in
// which case FilteredData returns the source unchanged.
func New[T any](initial Criteria, predicate Predicate[T], opts ...Option) *Engine[T] {
	s := settings{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}

	return &Engine[T]{
		initial:   initial.Clone(),
		current:   initial.Clone(),
		predicate: predicate,
		onChange:  s.onChange,
		logger:    s.logger.With().Str("component", "filter").Logger(),
	}
}

// Filters returns a copy of the current criteria.
func (e *Engine[T]) Filters() Criteria {
	return e.current.Clone()
}

// Initial returns a copy of the baseline captured at construction.
func (e *Engine[T]) Initial() Criteria {
	return e.initial.Clone()
}

// SetFilter replaces a single field, leaving all others intact.
func (e *Engine[T]) SetFilter(key string, value any) {
	next := e.current.Clone()
	next[key] = value
	e.apply(next, "set_filter")
}

// UpdateFilters shallow-merges partial into the current criteria.
func (e *Engine[T]) UpdateFilters(partial Criteria) {
	next := e.current.Clone()
	for k, v := range partial {
		next[k] = v
	}
	e.apply(next, "update_filters")
}

// ResetFilters restores the baseline regardless of prior mutations.
func (e *Engine[T]) ResetFilters() {
	e.apply(e.initial.Clone(), "reset_filters")
}

// ClearFilter restores a single field to its baseline value.
func (e *Engine[T]) ClearFilter(key string) {
	next := e.current.Clone()
	if v, ok := e.initial[key]; ok {
		next[key] = v
	} else {
		delete(next, key)
	}
	e.apply(next, "clear_filter")
}

// HasActiveFilters reports whether any field differs from the baseline.
func (e *Engine[T]) HasActiveFilters() bool {
	return !e.current.Equal(e.initial)
}

// ActiveFilters returns the sorted keys whose values differ from the baseline.
func (e *Engine[T]) ActiveFilters() []string {
	return e.current.Diff(e.initial)
}

// SetSource replaces the collection the predicate is applied to.
func (e *Engine[T]) SetSource(items []T) {
	e.source = items
	e.sourceRev++
	e.logger.Debug().
		Str("operation", "set_source").
		Int("items", len(items)).
		Msg("source replaced")
}

// Source returns the current source collection.
func (e *Engine[T]) Source() []T {
	return e.source
}

// FilteredData returns predicate(source, filters). The result is cached until
// the criteria or the source change. A panicking predicate propagates to the
// caller and leaves the cache untouched.
func (e *Engine[T]) FilteredData() []T {
	if e.memo.valid && e.memo.filtersRev == e.filtersRev && e.memo.sourceRev == e.sourceRev {
		return e.memo.data
	}

	data := e.source
	if e.predicate != nil {
		data = e.predicate(e.source, e.current.Clone())
	}

	e.memo = filterMemo[T]{
		valid:      true,
		filtersRev: e.filtersRev,
		sourceRev:  e.sourceRev,
		data:       data,
	}
	e.logger.Debug().
		Str("operation", "filtered_data").
		Int("before", len(e.source)).
		Int("after", len(data)).
		Msg("applied filters")
	return data
}

func (e *Engine[T]) apply(next Criteria, operation string) {
	e.current = next
	e.filtersRev++
	e.logger.Debug().
		Str("operation", operation).
		Strs("active", e.ActiveFilters()).
		Msg("filters changed")
	if e.onChange != nil {
		e.onChange(next.Clone())
	}
}
