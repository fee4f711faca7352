// Package filter holds filter criteria for a table and derives the filtered view
// of a source collection.
//
// An Engine captures an initial baseline of named criteria at construction and
// tracks every mutation against it:
//   - SetFilter / UpdateFilters / ResetFilters / ClearFilter mutate the criteria
//     and fire the change callback with the complete resulting criteria
//   - HasActiveFilters compares each key by value against the baseline
//   - FilteredData applies the caller's Predicate to the current source and is
//     recomputed only when the criteria or the source change
//
// Engines are synchronous and not safe for concurrent use.
package filter
