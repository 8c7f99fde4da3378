// Package query describes row filters as ordered predicate lists so the same filter
// can be compiled to SQL or evaluated against rows already in memory.
package query

type Op string

const (
	OpEq      Op = "eq"
	OpNeq     Op = "neq"
	OpIn      Op = "in"
	OpNotIn   Op = "not_in"
	OpGte     Op = "gte"
	OpLte     Op = "lte"
	OpNotNull Op = "not_null"
	OpILike   Op = "ilike" // case-insensitive substring
)

type Predicate struct {
	Field string
	Op    Op
	Value any
}

type Order struct {
	Field string
	Desc  bool
}

// Spec is an immutable filter/sort/range description. Builder methods return a copy,
// so a base spec can be extended in several directions.
type Spec struct {
	Predicates []Predicate
	Orders     []Order
	Offset     int
	Limit      int // 0 means unbounded
}

func New() Spec {
	return Spec{}
}

func (s Spec) With(p Predicate) Spec {
	n := len(s.Predicates)
	s.Predicates = append(s.Predicates[:n:n], p)
	return s
}

func (s Spec) Eq(field string, v any) Spec  { return s.With(Predicate{field, OpEq, v}) }
func (s Spec) Neq(field string, v any) Spec { return s.With(Predicate{field, OpNeq, v}) }
func (s Spec) Gte(field string, v any) Spec { return s.With(Predicate{field, OpGte, v}) }
func (s Spec) Lte(field string, v any) Spec { return s.With(Predicate{field, OpLte, v}) }

func (s Spec) In(field string, values []any) Spec {
	return s.With(Predicate{field, OpIn, values})
}

func (s Spec) NotIn(field string, values []any) Spec {
	return s.With(Predicate{field, OpNotIn, values})
}

func (s Spec) NotNull(field string) Spec {
	return s.With(Predicate{Field: field, Op: OpNotNull})
}

func (s Spec) ILike(field, substr string) Spec {
	return s.With(Predicate{field, OpILike, substr})
}

func (s Spec) OrderBy(field string, desc bool) Spec {
	n := len(s.Orders)
	s.Orders = append(s.Orders[:n:n], Order{Field: field, Desc: desc})
	return s
}

func (s Spec) Range(offset, limit int) Spec {
	s.Offset = offset
	s.Limit = limit
	return s
}

// Unpaged drops ordering and range, keeping only the predicates. Used for counts.
func (s Spec) Unpaged() Spec {
	return Spec{Predicates: s.Predicates}
}

// List converts a typed slice into the []any form taken by In and NotIn.
func List[T any](values ...T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
