package query

import (
	"fmt"
	"strings"
)

// LowerFunc names the SQL function used for case-insensitive matching. SQLite's LOWER
// folds ASCII only, so the connection registers this one with Go's Unicode rules.
const LowerFunc = "unicode_lower"

// Columns maps logical field names to SQL column expressions. Only fields present in
// the map can be filtered or ordered on.
type Columns map[string]string

// Compiled is a spec rendered as SQL clauses with positional args.
type Compiled struct {
	Where   string
	OrderBy string
	Page    string
	Args    []any
}

// Clause joins the compiled parts, each prefixed with its keyword, ready to append
// after a FROM/JOIN block.
func (c Compiled) Clause() string {
	var b strings.Builder
	if c.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(c.Where)
	}
	if c.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(c.OrderBy)
	}
	if c.Page != "" {
		b.WriteString(" ")
		b.WriteString(c.Page)
	}
	return b.String()
}

func Compile(spec Spec, cols Columns) (Compiled, error) {
	var out Compiled
	var conds []string

	for _, p := range spec.Predicates {
		col, ok := cols[p.Field]
		if !ok {
			return Compiled{}, fmt.Errorf("unknown filter field %q", p.Field)
		}

		switch p.Op {
		case OpEq:
			conds = append(conds, col+" = ?")
			out.Args = append(out.Args, p.Value)
		case OpNeq:
			conds = append(conds, col+" <> ?")
			out.Args = append(out.Args, p.Value)
		case OpGte:
			conds = append(conds, col+" >= ?")
			out.Args = append(out.Args, p.Value)
		case OpLte:
			conds = append(conds, col+" <= ?")
			out.Args = append(out.Args, p.Value)
		case OpNotNull:
			conds = append(conds, col+" IS NOT NULL")
		case OpILike:
			s, ok := p.Value.(string)
			if !ok {
				return Compiled{}, fmt.Errorf("ilike on %q needs a string, got %T", p.Field, p.Value)
			}
			conds = append(conds, LowerFunc+"("+col+") LIKE ? ESCAPE '\\'")
			out.Args = append(out.Args, "%"+escapeLike(strings.ToLower(s))+"%")
		case OpIn, OpNotIn:
			values, ok := p.Value.([]any)
			if !ok {
				return Compiled{}, fmt.Errorf("%s on %q needs a list, got %T", p.Op, p.Field, p.Value)
			}
			if len(values) == 0 {
				if p.Op == OpIn {
					conds = append(conds, "1 = 0")
				}
				continue
			}
			kw := " IN ("
			if p.Op == OpNotIn {
				kw = " NOT IN ("
			}
			conds = append(conds, col+kw+placeholders(len(values))+")")
			out.Args = append(out.Args, values...)
		default:
			return Compiled{}, fmt.Errorf("unsupported operator %q", p.Op)
		}
	}
	out.Where = strings.Join(conds, " AND ")

	orders := make([]string, 0, len(spec.Orders))
	for _, o := range spec.Orders {
		col, ok := cols[o.Field]
		if !ok {
			return Compiled{}, fmt.Errorf("unknown order field %q", o.Field)
		}
		if o.Desc {
			orders = append(orders, col+" DESC")
		} else {
			orders = append(orders, col+" ASC")
		}
	}
	out.OrderBy = strings.Join(orders, ", ")

	switch {
	case spec.Limit > 0:
		out.Page = "LIMIT ? OFFSET ?"
		out.Args = append(out.Args, spec.Limit, spec.Offset)
	case spec.Offset > 0:
		out.Page = "LIMIT -1 OFFSET ?"
		out.Args = append(out.Args, spec.Offset)
	}

	return out, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
