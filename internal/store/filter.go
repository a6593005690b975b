package store

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Cond is an operator condition for one filter field.
//
// Supported operators: equals, notEquals, contains, startsWith, endsWith,
// greaterThan, lessThan, between ([low, high] inclusive), in (membership
// in a list). An unrecognized operator name matches everything - this
// permissive fallback is preserved for compatibility (see DESIGN.md).
type Cond struct {
	Op    string
	Value any
}

// Filters maps field names to either a literal (loose equality) or a
// Cond. Nil values match everything.
type Filters map[string]any

func (f Filters) match(doc Document) bool {
	for field, want := range f {
		if want == nil {
			continue
		}
		have := doc[field]
		if cond, isCond := want.(Cond); isCond {
			if !cond.match(have) {
				return false
			}
			continue
		}
		if !looseEqual(have, want) {
			return false
		}
	}
	return true
}

func (c Cond) match(v any) bool {
	switch c.Op {
	case "equals":
		return looseEqual(v, c.Value)
	case "notEquals":
		return !looseEqual(v, c.Value)
	case "contains":
		return strings.Contains(foldString(v), foldString(c.Value))
	case "startsWith":
		return strings.HasPrefix(foldString(v), foldString(c.Value))
	case "endsWith":
		return strings.HasSuffix(foldString(v), foldString(c.Value))
	case "greaterThan":
		return looseCompare(v, c.Value) > 0
	case "lessThan":
		return looseCompare(v, c.Value) < 0
	case "between":
		bounds := asSlice(c.Value)
		if len(bounds) != 2 {
			return false
		}
		return looseCompare(v, bounds[0]) >= 0 && looseCompare(v, bounds[1]) <= 0
	case "in":
		for _, candidate := range asSlice(c.Value) {
			if looseEqual(v, candidate) {
				return true
			}
		}
		return false
	default:
		// Unknown operators pass. Preserved, not an endorsement.
		return true
	}
}

// looseEqual compares with numeric coercion: "5" equals 5, otherwise the
// stringified forms are compared.
func looseEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	na, aNum := toNumber(a)
	nb, bNum := toNumber(b)
	if aNum && bNum {
		return na == nb
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// looseCompare orders two values numerically when both coerce to
// numbers, lexicographically otherwise. Returns -1, 0 or 1.
func looseCompare(a, b any) int {
	na, aNum := toNumber(a)
	nb, bNum := toNumber(b)
	if aNum && bNum {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// foldString lowercases the stringified value for the substring
// operators.
func foldString(v any) string {
	return strings.ToLower(fmt.Sprint(v))
}

// asSlice widens any slice value to []any so between/in accept []string,
// []float64 and friends, not only []any.
func asSlice(v any) []any {
	if items, isAny := v.([]any); isAny {
		return items
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
