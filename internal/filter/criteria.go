package filter

import (
	"maps"
	"reflect"
	"slices"

	"github.com/spf13/cast"
)

// Criteria is a plain record of named filter values.
// A missing key is equivalent to a nil value.
type Criteria map[string]any

// Clone returns a shallow copy. Cloning nil yields an empty, non-nil Criteria.
func (c Criteria) Clone() Criteria {
	out := make(Criteria, len(c))
	maps.Copy(out, c)
	return out
}

// Get returns the raw value for key.
func (c Criteria) Get(key string) any {
	return c[key]
}

// String returns the value for key coerced to a string.
func (c Criteria) String(key string) string {
	return cast.ToString(c[key])
}

// Bool returns the value for key coerced to a bool.
func (c Criteria) Bool(key string) bool {
	return cast.ToBool(c[key])
}

// Int returns the value for key coerced to an int.
func (c Criteria) Int(key string) int {
	return cast.ToInt(c[key])
}

// Float64 returns the value for key coerced to a float64.
func (c Criteria) Float64(key string) float64 {
	return cast.ToFloat64(c[key])
}

// Equal reports whether every key holds the same value in both criteria.
func (c Criteria) Equal(other Criteria) bool {
	return len(c.Diff(other)) == 0
}

// Diff returns the sorted keys whose values differ between c and other.
func (c Criteria) Diff(other Criteria) []string {
	var keys []string
	for k, v := range c {
		if !valuesEqual(v, other[k]) {
			keys = append(keys, k)
		}
	}
	for k, v := range other {
		if _, seen := c[k]; seen {
			continue
		}
		if !valuesEqual(nil, v) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// valuesEqual compares two criteria values by value, never by identity.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		// Interface-typed fields can still hold incomparable values.
		if eq, ok := tryCompare(a, b); ok {
			return eq
		}
	}
	return reflect.DeepEqual(a, b)
}

func tryCompare(a, b any) (eq, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return a == b, true
}
