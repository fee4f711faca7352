package pagination

import (
	"errors"
	"fmt"
)

// Flag validation limits.
const (
	DefaultPage        = 1
	MinPage            = 1
	MaxPageSize        = 1000
	MaxVisiblePagesCap = 50
)

// Common validation errors.
var (
	ErrInvalidPage            = errors.New("page must be >= 1")
	ErrInvalidPageSize        = errors.New("page-size must be between 1 and 1000")
	ErrInvalidMaxVisiblePages = errors.New("max-visible-pages must be between 1 and 50")
)

// Params holds CLI pagination flags. Page is 1-based; zero values mean
// "use the default".
type Params struct {
	// Page is the 1-based page number requested by the user.
	Page int

	// PageSize is the number of rows per page.
	PageSize int

	// MaxVisiblePages bounds the page-number window.
	MaxVisiblePages int
}

// NewParams creates Params with default values.
func NewParams() *Params {
	return &Params{
		Page:            DefaultPage,
		PageSize:        DefaultPageSize,
		MaxVisiblePages: DefaultMaxVisiblePages,
	}
}

// Validate checks that every set flag is within bounds.
func (p Params) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < 0 || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if p.MaxVisiblePages < 0 || p.MaxVisiblePages > MaxVisiblePagesCap {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxVisiblePages, p.MaxVisiblePages)
	}
	return nil
}

// ZeroBasedPage converts the 1-based Page flag to an engine page index.
func (p Params) ZeroBasedPage() int {
	if p.Page < MinPage {
		return 0
	}
	return p.Page - 1
}

// Options converts the flags to engine options. Zero values are skipped so
// engine defaults apply.
func (p Params) Options() []Option {
	var opts []Option
	if p.PageSize > 0 {
		opts = append(opts, WithPageSize(p.PageSize))
	}
	if p.MaxVisiblePages > 0 {
		opts = append(opts, WithMaxVisiblePages(p.MaxVisiblePages))
	}
	return opts
}
