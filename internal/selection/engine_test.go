package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tablestate/internal/selection"
)

type row struct {
	ID   string
	Name string
}

func rowID(r row) string { return r.ID }

func rows(ids ...string) []row {
	out := make([]row, len(ids))
	for i, id := range ids {
		out[i] = row{ID: id, Name: "row " + id}
	}
	return out
}

func TestEngine_EmptyListAggregates(t *testing.T) {
	e := selection.New[row](rowID, selection.WithInitialSelected("1", "2"))

	assert.False(t, e.IsAllSelected(nil))
	assert.False(t, e.IsAllSelected([]row{}))
	assert.False(t, e.IsIndeterminate(nil))
	assert.False(t, e.IsIndeterminate([]row{}))
}

func TestEngine_HandleSelectItem(t *testing.T) {
	e := selection.New[row](rowID)

	e.HandleSelectItem("a", true)
	e.HandleSelectItem("a", true)
	assert.Equal(t, 1, e.GetSelectedCount(), "selecting twice is idempotent")
	assert.True(t, e.IsSelected("a"))

	e.HandleSelectItem("a", false)
	e.HandleSelectItem("a", false)
	assert.Equal(t, 0, e.GetSelectedCount())
	assert.False(t, e.IsSelected("a"))
}

func TestEngine_ToggleItem(t *testing.T) {
	e := selection.New[row](rowID)

	e.ToggleItem("x")
	assert.True(t, e.IsSelected("x"))
	e.ToggleItem("x")
	assert.False(t, e.IsSelected("x"))
}

func TestEngine_HandleSelectAll(t *testing.T) {
	items := rows("1", "2", "3")
	e := selection.New[row](rowID)

	e.HandleSelectAll(true, items)
	assert.True(t, e.IsAllSelected(items))
	assert.False(t, e.IsIndeterminate(items))
	assert.Equal(t, 3, e.GetSelectedCount())

	e.HandleSelectAll(false, items)
	assert.False(t, e.IsAllSelected(items))
	assert.False(t, e.IsIndeterminate(items))
	assert.Zero(t, e.GetSelectedCount())
}

func TestEngine_HandleSelectAllPreservesOtherLists(t *testing.T) {
	page1 := rows("1", "2")
	page2 := rows("3", "4")
	e := selection.New[row](rowID)

	e.HandleSelectAll(true, page1)
	e.HandleSelectAll(true, page2)
	assert.Equal(t, []string{"1", "2", "3", "4"}, e.GetSelectedIDs())

	e.HandleSelectAll(false, page2)
	assert.Equal(t, []string{"1", "2"}, e.GetSelectedIDs(), "deselect-all only removes ids from the given list")
	assert.True(t, e.IsAllSelected(page1))
}

func TestEngine_Indeterminate(t *testing.T) {
	tests := []struct {
		name              string
		selected          []string
		items             []row
		wantAll           bool
		wantIndeterminate bool
	}{
		{name: "none selected", items: rows("1", "2", "3")},
		{name: "one of three", selected: []string{"2"}, items: rows("1", "2", "3"), wantIndeterminate: true},
		{name: "two of three", selected: []string{"1", "3"}, items: rows("1", "2", "3"), wantIndeterminate: true},
		{name: "all three", selected: []string{"1", "2", "3"}, items: rows("1", "2", "3"), wantAll: true},
		{name: "superset selected", selected: []string{"1", "2", "3", "9"}, items: rows("1", "2"), wantAll: true},
		{name: "only unrelated ids", selected: []string{"7", "8"}, items: rows("1", "2")},
		{name: "different list overlap", selected: []string{"1"}, items: rows("1", "4"), wantIndeterminate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := selection.New[row](rowID, selection.WithInitialSelected(tt.selected...))
			assert.Equal(t, tt.wantAll, e.IsAllSelected(tt.items))
			assert.Equal(t, tt.wantIndeterminate, e.IsIndeterminate(tt.items))
		})
	}
}

func TestEngine_CrossViewSelection(t *testing.T) {
	e := selection.New[row](rowID)

	e.HandleSelectItem("1", true)
	other := rows("1", "4")
	assert.True(t, e.IsIndeterminate(other))
	assert.False(t, e.IsAllSelected(other))

	e.HandleSelectAll(true, other)
	assert.True(t, e.IsAllSelected(other))
	assert.True(t, e.IsIndeterminate(rows("1", "2", "4")))
}

func TestEngine_ClearSelection(t *testing.T) {
	e := selection.New[row](rowID, selection.WithInitialSelected("a", "b", "c"))
	require.Equal(t, 3, e.GetSelectedCount())

	e.ClearSelection()
	assert.Zero(t, e.GetSelectedCount())
	assert.Empty(t, e.GetSelectedIDs())
}

func TestEngine_SelectedItemsIsCopy(t *testing.T) {
	e := selection.New[row](rowID, selection.WithInitialSelected("a"))

	set := e.SelectedItems()
	set["b"] = struct{}{}
	delete(set, "a")

	assert.True(t, e.IsSelected("a"))
	assert.False(t, e.IsSelected("b"))
}

func TestEngine_SelectedIn(t *testing.T) {
	e := selection.New[row](rowID, selection.WithInitialSelected("3", "1", "stale"))

	got := e.SelectedIn(rows("1", "2", "3"))
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestEngine_Retain(t *testing.T) {
	e := selection.New[row](rowID, selection.WithInitialSelected("1", "2", "stale-1", "stale-2"))

	removed := e.Retain(rows("1", "2", "3"))
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"1", "2"}, e.GetSelectedIDs())

	assert.Zero(t, e.Retain(rows("1", "2")))
}

func TestEngine_OnChange(t *testing.T) {
	var counts []int
	e := selection.New[row](rowID, selection.WithOnChange(func(n int) {
		counts = append(counts, n)
	}))

	e.HandleSelectItem("1", true)
	e.HandleSelectItem("1", true) // unchanged
	e.HandleSelectAll(true, rows("1", "2", "3"))
	e.HandleSelectAll(false, rows("9")) // unchanged
	e.ClearSelection()
	e.ClearSelection() // unchanged

	assert.Equal(t, []int{1, 3, 0}, counts)
}
