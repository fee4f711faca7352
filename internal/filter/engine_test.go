package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tablestate/internal/filter"
)

type product struct {
	ID       int
	Status   string
	Category string
}

func byStatusAndCategory(items []product, f filter.Criteria) []product {
	var out []product
	for _, it := range items {
		if s := f.String("status"); s != "" && it.Status != s {
			continue
		}
		if c := f.String("category"); c != "" && it.Category != c {
			continue
		}
		out = append(out, it)
	}
	return out
}

func baseline() filter.Criteria {
	return filter.Criteria{"status": "", "category": "", "search": ""}
}

func TestEngine_HasActiveFilters(t *testing.T) {
	e := filter.New[product](baseline(), nil)
	assert.False(t, e.HasActiveFilters(), "fresh engine has no active filters")

	e.SetFilter("status", "active")
	assert.True(t, e.HasActiveFilters())
	assert.Equal(t, []string{"status"}, e.ActiveFilters())

	e.SetFilter("status", "")
	assert.False(t, e.HasActiveFilters(), "setting a field back to its baseline value deactivates it")

	e.UpdateFilters(filter.Criteria{"category": "electronics", "search": "tv"})
	assert.True(t, e.HasActiveFilters())
	assert.Equal(t, []string{"category", "search"}, e.ActiveFilters())

	e.ResetFilters()
	assert.False(t, e.HasActiveFilters())
	assert.Empty(t, e.ActiveFilters())
}

func TestEngine_HasActiveFilters_NewKeys(t *testing.T) {
	e := filter.New[product](filter.Criteria{"status": "all"}, nil)

	e.SetFilter("owner", nil)
	assert.False(t, e.HasActiveFilters(), "nil value for an unknown key equals absence")

	e.SetFilter("owner", "me")
	assert.True(t, e.HasActiveFilters())

	e.ClearFilter("owner")
	assert.False(t, e.HasActiveFilters())
	_, present := e.Filters()["owner"]
	assert.False(t, present, "clearing a key absent from the baseline removes it")
}

func TestEngine_SetFilterPreservesOtherFields(t *testing.T) {
	e := filter.New[product](filter.Criteria{"status": "all", "page": 3, "flag": true}, nil)

	e.SetFilter("status", "active")

	assert.Equal(t, filter.Criteria{"status": "active", "page": 3, "flag": true}, e.Filters())
}

func TestEngine_UpdateFiltersPreservesAbsentFields(t *testing.T) {
	tests := []struct {
		name    string
		initial filter.Criteria
		partial filter.Criteria
		want    filter.Criteria
	}{
		{
			name:    "empty partial",
			initial: filter.Criteria{"a": 1, "b": "x"},
			partial: filter.Criteria{},
			want:    filter.Criteria{"a": 1, "b": "x"},
		},
		{
			name:    "one field",
			initial: filter.Criteria{"a": 1, "b": "x"},
			partial: filter.Criteria{"b": "y"},
			want:    filter.Criteria{"a": 1, "b": "y"},
		},
		{
			name:    "new field",
			initial: filter.Criteria{"a": 1},
			partial: filter.Criteria{"c": false},
			want:    filter.Criteria{"a": 1, "c": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := filter.New[product](tt.initial, nil)
			e.UpdateFilters(tt.partial)
			assert.Equal(t, tt.want, e.Filters())
		})
	}
}

func TestEngine_ResetRestoresBaseline(t *testing.T) {
	initial := filter.Criteria{"status": "all", "min": 0}
	e := filter.New[product](initial, nil)

	e.SetFilter("status", "inactive")
	e.UpdateFilters(filter.Criteria{"min": 10, "extra": "x"})
	e.ClearFilter("status")
	e.SetFilter("status", "active")
	e.ResetFilters()

	assert.Equal(t, initial, e.Filters())
	assert.True(t, e.Filters().Equal(e.Initial()))
}

func TestEngine_BaselineIsolatedFromCaller(t *testing.T) {
	initial := filter.Criteria{"status": "all"}
	e := filter.New[product](initial, nil)

	initial["status"] = "mutated"
	assert.False(t, e.HasActiveFilters())

	got := e.Filters()
	got["status"] = "mutated"
	assert.Equal(t, "all", e.Filters().String("status"))
}

func TestEngine_OnChange(t *testing.T) {
	var calls []filter.Criteria
	e := filter.New[product](filter.Criteria{"status": "", "category": ""}, nil,
		filter.WithOnChange(func(f filter.Criteria) {
			calls = append(calls, f)
		}),
	)

	e.SetFilter("status", "active")
	e.UpdateFilters(filter.Criteria{"category": "books"})
	e.ResetFilters()
	e.ClearFilter("status")

	require.Len(t, calls, 4)
	assert.Equal(t, filter.Criteria{"status": "active", "category": ""}, calls[0])
	assert.Equal(t, filter.Criteria{"status": "active", "category": "books"}, calls[1],
		"callback receives the full object, not the delta")
	assert.Equal(t, filter.Criteria{"status": "", "category": ""}, calls[2])
	assert.Equal(t, filter.Criteria{"status": "", "category": ""}, calls[3])
}

func TestEngine_FilteredData(t *testing.T) {
	items := []product{
		{ID: 1, Status: "active"},
		{ID: 2, Status: "inactive"},
		{ID: 3, Status: "active"},
	}
	e := filter.New[product](baseline(), byStatusAndCategory)
	e.SetSource(items)

	assert.Len(t, e.FilteredData(), 3)

	e.SetFilter("status", "active")
	got := e.FilteredData()
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
	assert.Len(t, items, 3, "source is not mutated")
	assert.Equal(t, 2, items[1].ID)
}

func TestEngine_FilteredDataCombinedCriteria(t *testing.T) {
	items := []product{
		{ID: 1, Status: "active", Category: "electronics"},
		{ID: 2, Status: "active", Category: "books"},
		{ID: 3, Status: "inactive", Category: "electronics"},
		{ID: 4, Status: "active", Category: "electronics"},
	}
	e := filter.New[product](baseline(), byStatusAndCategory)
	e.SetSource(items)

	e.SetFilter("status", "active")
	assert.Len(t, e.FilteredData(), 3)

	e.SetFilter("category", "electronics")
	got := e.FilteredData()
	require.Len(t, got, 2)
	assert.Equal(t, []int{1, 4}, []int{got[0].ID, got[1].ID})
}

func TestEngine_FilteredDataMemoized(t *testing.T) {
	calls := 0
	predicate := func(items []product, f filter.Criteria) []product {
		calls++
		return byStatusAndCategory(items, f)
	}
	e := filter.New[product](baseline(), predicate)
	e.SetSource([]product{{ID: 1, Status: "active"}, {ID: 2, Status: "inactive"}})

	e.FilteredData()
	e.FilteredData()
	assert.Equal(t, 1, calls, "unchanged inputs reuse the cached result")

	e.SetFilter("status", "active")
	e.FilteredData()
	assert.Equal(t, 2, calls)

	e.SetSource([]product{{ID: 3, Status: "active"}})
	got := e.FilteredData()
	assert.Equal(t, 3, calls)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}

func TestEngine_NilPredicateReturnsSource(t *testing.T) {
	items := []product{{ID: 1}, {ID: 2}}
	e := filter.New[product](baseline(), nil)
	e.SetSource(items)
	e.SetFilter("status", "active")
	assert.Equal(t, items, e.FilteredData())
}

func TestEngine_PredicatePanicPropagates(t *testing.T) {
	fail := true
	predicate := func(items []product, _ filter.Criteria) []product {
		if fail {
			panic("predicate failed")
		}
		return items
	}
	e := filter.New[product](baseline(), predicate)
	e.SetSource([]product{{ID: 1}})

	assert.PanicsWithValue(t, "predicate failed", func() { e.FilteredData() })

	fail = false
	assert.Len(t, e.FilteredData(), 1, "a failed evaluation is not cached")
}
