package pagination

// Meta contains 1-based metadata about a rendered page.
type Meta struct {
	CurrentPage  int   `json:"current_page"  yaml:"current_page"`
	PageSize     int   `json:"page_size"     yaml:"page_size"`
	TotalPages   int   `json:"total_pages"   yaml:"total_pages"`
	TotalItems   int   `json:"total_items"   yaml:"total_items"`
	FirstItem    int   `json:"first_item"    yaml:"first_item"`
	LastItem     int   `json:"last_item"     yaml:"last_item"`
	HasPrevious  bool  `json:"has_previous"  yaml:"has_previous"`
	HasNext      bool  `json:"has_next"      yaml:"has_next"`
	VisiblePages []int `json:"visible_pages" yaml:"visible_pages"`
}

// NewMeta converts engine state to 1-based metadata for display.
// FirstItem and LastItem are 0 when there are no items.
func NewMeta(state State, info Info) Meta {
	meta := Meta{
		CurrentPage:  state.CurrentPage + 1,
		PageSize:     state.PageSize,
		TotalPages:   info.TotalPages,
		TotalItems:   state.TotalItems,
		HasPrevious:  info.HasPrevious,
		HasNext:      info.HasNext,
		VisiblePages: make([]int, len(info.VisiblePages)),
	}
	for i, p := range info.VisiblePages {
		meta.VisiblePages[i] = p + 1
	}
	if state.TotalItems > 0 && info.EndIndex >= info.StartIndex {
		meta.FirstItem = info.StartIndex + 1
		meta.LastItem = info.EndIndex + 1
	}
	return meta
}

// Meta returns display metadata for the current page.
func (e *Engine[T]) Meta() Meta {
	return NewMeta(e.state, e.Info())
}
