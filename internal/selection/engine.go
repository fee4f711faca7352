// Package selection tracks which items of a table are selected, by id, across
// pages and filtered views.
//
// The engine stores only identifiers. Aggregate queries take the item list to
// evaluate against as an explicit argument, so ids selected on one page stay
// selected and are reported correctly against any other overlapping list.
package selection

import (
	"maps"
	"slices"

	"github.com/rs/zerolog"
)

// IDFunc extracts the identity of an item. It must be pure.
type IDFunc[T any] func(item T) string

// ChangeFunc receives the selected count after each transition that changed it.
type ChangeFunc func(count int)

// Option configures an Engine.
type Option func(*settings)

type settings struct {
	initial  []string
	onChange ChangeFunc
	logger   zerolog.Logger
}

// WithInitialSelected seeds the selection set.
func WithInitialSelected(ids ...string) Option {
	return func(s *settings) {
		s.initial = append(s.initial, ids...)
	}
}

// WithOnChange registers a callback fired synchronously when the set changes.
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

// Engine owns a set of selected item ids.
type Engine[T any] struct {
	getItemID IDFunc[T]
	selected  map[string]struct{}
	onChange  ChangeFunc
	logger    zerolog.Logger
}

// New creates an Engine using getItemID for item identity.
func New[T any](getItemID IDFunc[T], opts ...Option) *Engine[T] {
	s := settings{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}

	e := &Engine[T]{
		getItemID: getItemID,
		selected:  make(map[string]struct{}, len(s.initial)),
		onChange:  s.onChange,
		logger:    s.logger.With().Str("component", "selection").Logger(),
	}
	for _, id := range s.initial {
		e.selected[id] = struct{}{}
	}
	return e
}

// HandleSelectItem adds id when selected is true and removes it otherwise.
func (e *Engine[T]) HandleSelectItem(id string, selected bool) {
	before := len(e.selected)
	if selected {
		e.selected[id] = struct{}{}
	} else {
		delete(e.selected, id)
	}
	e.changed(before, "select_item")
}

// ToggleItem flips the selection state of id.
func (e *Engine[T]) ToggleItem(id string) {
	e.HandleSelectItem(id, !e.IsSelected(id))
}

// HandleSelectAll adds every id in items when selected is true. Otherwise it
// removes exactly those ids, leaving ids selected from other lists untouched.
func (e *Engine[T]) HandleSelectAll(selected bool, items []T) {
	before := len(e.selected)
	for _, item := range items {
		id := e.getItemID(item)
		if selected {
			e.selected[id] = struct{}{}
		} else {
			delete(e.selected, id)
		}
	}
	e.changed(before, "select_all")
}

// ClearSelection empties the set.
func (e *Engine[T]) ClearSelection() {
	before := len(e.selected)
	clear(e.selected)
	e.changed(before, "clear_selection")
}

// Retain drops every selected id that does not belong to items and returns
// how many were removed.
func (e *Engine[T]) Retain(items []T) int {
	keep := make(map[string]struct{}, len(items))
	for _, item := range items {
		keep[e.getItemID(item)] = struct{}{}
	}

	before := len(e.selected)
	maps.DeleteFunc(e.selected, func(id string, _ struct{}) bool {
		_, ok := keep[id]
		return !ok
	})
	e.changed(before, "retain")
	return before - len(e.selected)
}

// IsSelected reports whether id is in the set.
func (e *Engine[T]) IsSelected(id string) bool {
	_, ok := e.selected[id]
	return ok
}

// GetSelectedCount returns the size of the set.
func (e *Engine[T]) GetSelectedCount() int {
	return len(e.selected)
}

// GetSelectedIDs returns the selected ids in ascending order.
func (e *Engine[T]) GetSelectedIDs() []string {
	return slices.Sorted(maps.Keys(e.selected))
}

// SelectedItems returns a copy of the selection set.
func (e *Engine[T]) SelectedItems() map[string]struct{} {
	return maps.Clone(e.selected)
}

// SelectedIn returns the items whose ids are selected, in input order.
func (e *Engine[T]) SelectedIn(items []T) []T {
	var out []T
	for _, item := range items {
		if e.IsSelected(e.getItemID(item)) {
			out = append(out, item)
		}
	}
	return out
}

// IsAllSelected reports whether items is non-empty and every id is selected.
func (e *Engine[T]) IsAllSelected(items []T) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if !e.IsSelected(e.getItemID(item)) {
			return false
		}
	}
	return true
}

// IsIndeterminate reports whether some, but not all, ids of items are selected.
func (e *Engine[T]) IsIndeterminate(items []T) bool {
	n := e.countIn(items)
	return n > 0 && n < len(items)
}

func (e *Engine[T]) countIn(items []T) int {
	n := 0
	for _, item := range items {
		if e.IsSelected(e.getItemID(item)) {
			n++
		}
	}
	return n
}

// changed notifies when the set size moved. Membership can only change
// together with the size for these operations.
func (e *Engine[T]) changed(before int, operation string) {
	after := len(e.selected)
	if after == before {
		return
	}
	e.logger.Debug().
		Str("operation", operation).
		Int("before", before).
		Int("after", after).
		Msg("selection changed")
	if e.onChange != nil {
		e.onChange(after)
	}
}
