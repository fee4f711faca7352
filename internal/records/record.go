// Package records loads flat business records from JSON or YAML files and
// provides the predicate used to filter them by named criteria.
package records

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/cases"

	"github.com/rshade/tablestate/internal/filter"
)

// Field names with special meaning.
const (
	FieldID   = "id"
	SearchKey = "search"
	AllValue  = "all"
)

// ErrInvalidFilter is returned for filter flags that are not key=value.
var ErrInvalidFilter = errors.New("invalid filter: use key=value (e.g. status=active)")

// Record is one flat row keyed by field name.
type Record map[string]any

// ID returns the record's id field as a string.
func (r Record) ID() string {
	return cast.ToString(r[FieldID])
}

// Field returns the named field as a string.
func (r Record) Field(name string) string {
	return cast.ToString(r[name])
}

// GetID is a selection.IDFunc for records.
func GetID(r Record) string {
	return r.ID()
}

// Match keeps the records satisfying every active criterion. The search key
// matches a case-insensitive substring of any field; every other key requires
// a case-insensitive match of that field. Empty, nil, and "all" values are
// inactive.
func Match(items []Record, filters filter.Criteria) []Record {
	fold := cases.Fold()

	type clause struct {
		key   string
		value string
	}
	var clauses []clause
	search := ""
	for key, raw := range filters {
		value := strings.TrimSpace(cast.ToString(raw))
		if raw == nil || value == "" || strings.EqualFold(value, AllValue) {
			continue
		}
		if key == SearchKey {
			search = fold.String(value)
			continue
		}
		clauses = append(clauses, clause{key: key, value: fold.String(value)})
	}

	if search == "" && len(clauses) == 0 {
		return items
	}

	out := make([]Record, 0, len(items))
	for _, r := range items {
		if search != "" && !matchesSearch(r, search, fold) {
			continue
		}
		ok := true
		for _, c := range clauses {
			if fold.String(r.Field(c.key)) != c.value {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, r)
		}
	}
	return out
}

func matchesSearch(r Record, query string, fold cases.Caser) bool {
	for _, v := range r {
		if strings.Contains(fold.String(cast.ToString(v)), query) {
			return true
		}
	}
	return false
}

// ParseFilterFlags parses key=value pairs into criteria. Later pairs win.
func ParseFilterFlags(flags []string) (filter.Criteria, error) {
	out := filter.Criteria{}
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidFilter, f)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// Columns returns the union of field names with id first and the rest sorted.
func Columns(rows []Record) []string {
	seen := map[string]bool{}
	for _, r := range rows {
		for k := range r {
			seen[k] = true
		}
	}

	var cols []string
	for k := range seen {
		if k != FieldID {
			cols = append(cols, k)
		}
	}
	slices.Sort(cols)
	if seen[FieldID] {
		cols = append([]string{FieldID}, cols...)
	}
	return cols
}
