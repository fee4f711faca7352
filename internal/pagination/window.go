package pagination

// halfWindowDivisor is used to center the page window on the current page.
const halfWindowDivisor = 2

// CalculateTotalPages returns the number of pages needed for totalItems.
// Returns 0 when there are no items or the page size is not positive.
func CalculateTotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	pages := totalItems / pageSize
	if totalItems%pageSize > 0 {
		pages++
	}
	return pages
}

// VisiblePages returns at most maxVisible ascending page indices centered on
// current. Near either end the window is shifted so it stays full.
// When totalPages <= maxVisible every page index is returned.
func VisiblePages(current, totalPages, maxVisible int) []int {
	if totalPages <= 0 {
		return []int{}
	}
	if maxVisible < 1 {
		maxVisible = 1
	}
	current = min(max(current, 0), totalPages-1)

	size := min(maxVisible, totalPages)

	// Center the current page, biasing leftover slots to the right.
	from := current - (size-1)/halfWindowDivisor
	if from < 0 {
		from = 0
	}
	if from+size > totalPages {
		from = totalPages - size
	}

	pages := make([]int, size)
	for i := range pages {
		pages[i] = from + i
	}
	return pages
}
