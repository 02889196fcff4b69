// Package querystr formats query parameter values shared by cache keys and
// request URLs, so both sides agree on which values are present.
package querystr

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Format renders a primitive query value. The second result is false for
// nil values and nil pointers, which are treated as "not set".
func Format(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", false
	}

	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case uint:
		return strconv.FormatUint(uint64(val), 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case fmt.Stringer:
		return val.String(), true
	}

	if rv.Kind() == reflect.Pointer {
		return Format(rv.Elem().Interface())
	}
	return fmt.Sprint(v), true
}

// Filter drops unset values and formats the rest.
func Filter(q map[string]any) map[string]string {
	out := make(map[string]string, len(q))
	for k, v := range q {
		if s, ok := Format(v); ok {
			out[k] = s
		}
	}
	return out
}

// SortedKeys returns the keys of m in lexicographic order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
