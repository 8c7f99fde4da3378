package query

import (
	"cmp"
	"reflect"
	"slices"
	"strings"
)

// FieldFunc resolves a logical field on a row. ok is false for unknown fields.
type FieldFunc func(field string) (value any, ok bool)

// Matches reports whether a row satisfies every predicate. NULL (nil) values fail every
// operator except the ones SQL would also let through, mirroring Compile.
func Matches(preds []Predicate, get FieldFunc) bool {
	for _, p := range preds {
		if !matchOne(p, get) {
			return false
		}
	}
	return true
}

func matchOne(p Predicate, get FieldFunc) bool {
	raw, ok := get(p.Field)
	if !ok {
		return false
	}
	v := normalize(raw)

	if p.Op == OpNotNull {
		return v != nil
	}
	if v == nil {
		return false
	}

	switch p.Op {
	case OpEq:
		return v == normalize(p.Value)
	case OpNeq:
		return v != normalize(p.Value)
	case OpGte:
		c, ok := compare(v, normalize(p.Value))
		return ok && c >= 0
	case OpLte:
		c, ok := compare(v, normalize(p.Value))
		return ok && c <= 0
	case OpILike:
		s, ok := v.(string)
		sub, ok2 := p.Value.(string)
		return ok && ok2 && strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	case OpIn, OpNotIn:
		values, _ := p.Value.([]any)
		found := slices.ContainsFunc(values, func(x any) bool { return normalize(x) == v })
		if p.Op == OpIn {
			return found
		}
		return !found
	}
	return false
}

// Apply filters, sorts and ranges rows the way the SQL rendering of spec would.
func Apply[T any](rows []T, spec Spec, fields func(T) FieldFunc) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if Matches(spec.Predicates, fields(r)) {
			out = append(out, r)
		}
	}

	if len(spec.Orders) > 0 {
		slices.SortStableFunc(out, func(a, b T) int {
			fa, fb := fields(a), fields(b)
			for _, o := range spec.Orders {
				va, _ := fa(o.Field)
				vb, _ := fb(o.Field)
				c := compareForSort(normalize(va), normalize(vb))
				if o.Desc {
					c = -c
				}
				if c != 0 {
					return c
				}
			}
			return 0
		})
	}

	if spec.Offset < 0 {
		spec.Offset = 0
	}
	if spec.Offset >= len(out) {
		return out[:0]
	}
	out = out[spec.Offset:]
	if spec.Limit > 0 && spec.Limit < len(out) {
		out = out[:spec.Limit]
	}
	return out
}

// normalize collapses pointers and numeric kinds so values of different Go types
// compare the way the database would compare them.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	}
	return rv.Interface()
}

func compare(a, b any) (int, bool) {
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return cmp.Compare(x, y), ok
	case string:
		y, ok := b.(string)
		return cmp.Compare(x, y), ok
	case bool:
		y, ok := b.(bool)
		return cmp.Compare(boolInt(x), boolInt(y)), ok
	}
	return 0, false
}

// compareForSort orders nil before any value, as SQLite does for ascending sorts.
func compareForSort(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	c, _ := compare(a, b)
	return c
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
