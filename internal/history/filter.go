package history

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Filter is a compiled CEL predicate over stored sessions.
//
// Variables: part, correct, total, accuracy (int percent), date (YYYY-MM-DD
// string) and timestamp.
type Filter struct {
	expr string
	prg  cel.Program
}

// NewFilter compiles expr. The expression must produce a bool.
func NewFilter(expr string) (*Filter, error) {
	env, err := cel.NewEnv(
		cel.Variable("part", cel.IntType),
		cel.Variable("correct", cel.IntType),
		cel.Variable("total", cel.IntType),
		cel.Variable("accuracy", cel.IntType),
		cel.Variable("date", cel.StringType),
		cel.Variable("timestamp", cel.TimestampType),
	)
	if err != nil {
		return nil, fmt.Errorf("filter env: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expr, iss.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("filter %q must be a bool expression, got %s", expr, out)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program filter %q: %w", expr, err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// Match evaluates the filter against one session of the given day.
func (f *Filter) Match(date string, s Session) (bool, error) {
	correct := s.Correct()
	total := len(s.Questions)

	out, _, err := f.prg.Eval(map[string]any{
		"part":      int64(s.Part),
		"correct":   int64(correct),
		"total":     int64(total),
		"accuracy":  int64(Percent(correct, total)),
		"date":      date,
		"timestamp": s.Time(),
	})
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q: %w", f.expr, err)
	}

	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter %q returned %T, want bool", f.expr, out.Value())
	}
	return b, nil
}

// Entry is one session together with its date key.
type Entry struct {
	Date    string
	Index   int
	Session Session
}

// Select returns the sessions of rec matching f (all sessions when f is
// nil), in ascending date order and completion order within a day.
func Select(rec Record, f *Filter) ([]Entry, error) {
	var out []Entry
	for _, date := range rec.Dates() {
		for i, s := range rec[date] {
			if f != nil {
				ok, err := f.Match(date, s)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
			}
			out = append(out, Entry{Date: date, Index: i, Session: s})
		}
	}
	return out, nil
}
