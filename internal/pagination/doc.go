// Package pagination turns a dataset length, a page size, and a current page
// into consistent navigation state and a sliced view.
//
// This package contains:
//   - Engine: page index/size state, navigation operations, and the sliced page
//   - Info: derived totals, slice boundaries, navigation flags, and the
//     bounded window of page numbers to render
//   - Params: CLI flag parsing and validation for page-based navigation
//   - Meta: 1-based response metadata for rendered pages
//
// Every navigation operation is total: out-of-range requests clamp to the
// nearest valid page instead of failing.
package pagination
