package dsl

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownField is returned when an expression reads a field the record lacks.
	ErrUnknownField = errors.New("dsl: unknown field")
	// ErrTypeMismatch is returned when a value has the wrong type for its use.
	ErrTypeMismatch = errors.New("dsl: type mismatch")
	// ErrUnknownMethod is returned for calls to methods the evaluator does not implement.
	ErrUnknownMethod = errors.New("dsl: unknown method")
)

// scope binds lambda parameters to collection elements.
type scope map[string]any

func (s scope) with(name string, v any) scope {
	out := make(scope, len(s)+1)
	for k, val := range s {
		out[k] = val
	}
	out[name] = v
	return out
}

// Evaluate applies the expression to a record. Nested objects are map[string]any and
// collections are []any, as produced by encoding/json. && and || short-circuit, so an
// error in a branch that is never reached is not reported.
func (e *Expression) Evaluate(record map[string]any) (bool, error) {
	return e.eval(record, nil)
}

func (e *Expression) eval(rec map[string]any, sc scope) (bool, error) {
	for _, g := range e.Or {
		ok, err := g.eval(rec, sc)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (g *AndGroup) eval(rec map[string]any, sc scope) (bool, error) {
	for _, u := range g.And {
		ok, err := u.eval(rec, sc)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (u *Unary) eval(rec map[string]any, sc scope) (bool, error) {
	switch {
	case u.Not != nil:
		ok, err := u.Not.eval(rec, sc)
		if err != nil {
			return false, err
		}
		return !ok, nil
	case u.Group != nil:
		return u.Group.eval(rec, sc)
	default:
		return u.Predicate.eval(rec, sc)
	}
}

func (p *Predicate) eval(rec map[string]any, sc scope) (bool, error) {
	left, err := p.Left.resolve(rec, sc)
	if err != nil {
		return false, err
	}
	if p.Op == "" {
		b, ok := left.(bool)
		if !ok {
			return false, fmt.Errorf("%w: %s is %T, not a boolean", ErrTypeMismatch, p.Left.path(), left)
		}
		return b, nil
	}
	ok, err := compare(left, p.Op, p.Right.Value())
	if err != nil {
		return false, fmt.Errorf("%s: %w", p.Left.path(), err)
	}
	return ok, nil
}

func (c *Chain) path() string {
	var b strings.Builder
	b.WriteString(c.Root)
	for _, m := range c.Members {
		b.WriteByte('.')
		b.WriteString(m.Name)
		if m.Call != nil {
			b.WriteString("()")
		}
	}
	return b.String()
}

func (c *Chain) resolve(rec map[string]any, sc scope) (any, error) {
	v, bound := sc[c.Root]
	if !bound {
		var ok bool
		if v, ok = rec[c.Root]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, c.Root)
		}
	}

	path := c.Root
	for _, m := range c.Members {
		var err error
		if m.Call == nil {
			v, err = property(v, m.Name, path)
		} else {
			v, err = call(v, m, rec, sc, path)
		}
		if err != nil {
			return nil, err
		}
		path += "." + m.Name
	}
	return v, nil
}

func property(v any, name, path string) (any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T, not an object", ErrTypeMismatch, path, v)
	}
	val, ok := obj[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, path, name)
	}
	return val, nil
}

func call(v any, m *Member, rec map[string]any, sc scope, path string) (any, error) {
	arg := m.Call.Argument
	switch m.Name {
	case "ToLower", "ToUpper", "Trim":
		if arg != nil {
			return nil, fmt.Errorf("%w: %s.%s takes no argument", ErrTypeMismatch, path, m.Name)
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s() on %T", ErrTypeMismatch, path, m.Name, v)
		}
		switch m.Name {
		case "ToLower":
			return strings.ToLower(s), nil
		case "ToUpper":
			return strings.ToUpper(s), nil
		}
		return strings.TrimSpace(s), nil

	case "Contains", "StartsWith", "EndsWith":
		if arg == nil || arg.Literal == nil {
			return nil, fmt.Errorf("%w: %s.%s needs a literal argument", ErrTypeMismatch, path, m.Name)
		}
		want := arg.Literal.Value()
		if list, ok := v.([]any); ok && m.Name == "Contains" {
			for _, item := range list {
				if eq, err := compare(item, "==", want); err == nil && eq {
					return true, nil
				}
			}
			return false, nil
		}
		s, ok := v.(string)
		sub, subOK := want.(string)
		if !ok || !subOK {
			return nil, fmt.Errorf("%w: %s.%s(%v) on %T", ErrTypeMismatch, path, m.Name, want, v)
		}
		switch m.Name {
		case "Contains":
			return strings.Contains(s, sub), nil
		case "StartsWith":
			return strings.HasPrefix(s, sub), nil
		}
		return strings.HasSuffix(s, sub), nil

	case "Any", "All":
		items, err := elements(v, path)
		if err != nil {
			return nil, err
		}
		if arg == nil {
			if m.Name == "Any" {
				return len(items) > 0, nil
			}
			return true, nil
		}
		if arg.Lambda == nil {
			return nil, fmt.Errorf("%w: %s.%s needs a lambda", ErrTypeMismatch, path, m.Name)
		}
		all := m.Name == "All"
		for _, item := range items {
			ok, err := arg.Lambda.Body.eval(rec, sc.with(arg.Lambda.Param, item))
			if err != nil {
				return nil, err
			}
			if ok != all {
				return ok, nil
			}
		}
		return all, nil

	case "Count":
		items, err := elements(v, path)
		if err != nil {
			return nil, err
		}
		return float64(len(items)), nil
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, path, m.Name)
}

func elements(v any, path string) ([]any, error) {
	switch list := v.(type) {
	case []any:
		return list, nil
	case []map[string]any:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s is %T, not a collection", ErrTypeMismatch, path, v)
}

func compare(left any, op string, right any) (bool, error) {
	if left == nil || right == nil {
		same := left == nil && right == nil
		switch op {
		case "==":
			return same, nil
		case "!=":
			return !same, nil
		}
		return false, fmt.Errorf("%w: %s on null", ErrTypeMismatch, op)
	}

	switch r := right.(type) {
	case float64:
		l, ok := number(left)
		if !ok {
			return false, fmt.Errorf("%w: %T %s number", ErrTypeMismatch, left, op)
		}
		return ordered(cmp.Compare(l, r), op), nil
	case string:
		l, ok := left.(string)
		if !ok {
			return false, fmt.Errorf("%w: %T %s string", ErrTypeMismatch, left, op)
		}
		return ordered(cmp.Compare(l, r), op), nil
	case bool:
		l, ok := left.(bool)
		if !ok {
			return false, fmt.Errorf("%w: %T %s bool", ErrTypeMismatch, left, op)
		}
		switch op {
		case "==":
			return l == r, nil
		case "!=":
			return l != r, nil
		}
		return false, fmt.Errorf("%w: %s on bool", ErrTypeMismatch, op)
	}
	return false, fmt.Errorf("%w: unsupported literal %T", ErrTypeMismatch, right)
}

func ordered(c int, op string) bool {
	switch op {
	case "==":
		return c == 0
	case "!=":
		return c != 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	}
	return false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
