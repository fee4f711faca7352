package benchmarks_test

import (
	"fmt"
	"testing"

	"github.com/rshade/tablestate/internal/filter"
	"github.com/rshade/tablestate/internal/records"
	"github.com/rshade/tablestate/internal/table"
)

func makeRecords(n int) []records.Record {
	statuses := []string{"active", "inactive", "pending"}
	rows := make([]records.Record, n)
	for i := range rows {
		rows[i] = records.Record{
			"id":     fmt.Sprintf("r-%06d", i),
			"name":   fmt.Sprintf("Customer %d", i),
			"status": statuses[i%len(statuses)],
			"region": fmt.Sprintf("region-%d", i%7),
		}
	}
	return rows
}

// BenchmarkTableFilterChange measures a filter change followed by a page
// read, which re-runs the predicate and resyncs pagination.
func BenchmarkTableFilterChange(b *testing.B) {
	for _, size := range []int{1_000, 10_000, 100_000} {
		b.Run(fmt.Sprintf("records=%d", size), func(b *testing.B) {
			ctrl := table.NewController(makeRecords(size), table.Options[records.Record]{
				Initial:   filter.Criteria{},
				Predicate: records.Match,
				GetItemID: records.GetID,
			})
			statuses := []string{"active", "inactive", "pending", "all"}

			b.ResetTimer()
			for i := range b.N {
				ctrl.SetFilter("status", statuses[i%len(statuses)])
				_ = ctrl.Rows()
			}
		})
	}
}

// BenchmarkTablePageNavigation measures paging through memoized filtered data.
func BenchmarkTablePageNavigation(b *testing.B) {
	ctrl := table.NewController(makeRecords(100_000), table.Options[records.Record]{
		Initial:   filter.Criteria{"status": "active"},
		Predicate: records.Match,
		GetItemID: records.GetID,
	})
	pages := ctrl.Pages()

	b.ResetTimer()
	for range b.N {
		pages.NextPage()
		if !pages.Info().HasNext {
			pages.FirstPage()
		}
		_ = ctrl.View()
	}
}

// BenchmarkSelectMatching measures selecting and clearing every matching row.
func BenchmarkSelectMatching(b *testing.B) {
	ctrl := table.NewController(makeRecords(50_000), table.Options[records.Record]{
		Initial:   filter.Criteria{},
		Predicate: records.Match,
		GetItemID: records.GetID,
	})

	b.ResetTimer()
	for range b.N {
		ctrl.SelectMatching(true)
		ctrl.SelectMatching(false)
	}
}
