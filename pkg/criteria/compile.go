package criteria

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Compile renders criteria and the static query in opts into a single DSL expression.
//
// Rendered criteria are joined with a spaced combinator (" && " or " || "). The result is
// then joined to opts.StaticQuery with the bare combinator token ("&&" or "||"). Criteria
// that render to nothing contribute no clause and no combinator.
func Compile(criteria []Criterion, opts Options) string {
	clauses := make([]string, 0, len(criteria))
	for _, c := range criteria {
		if clause := RenderCriterion(c); clause != "" {
			clauses = append(clauses, clause)
		}
	}

	token := opts.Combinator.Token()
	compiled := strings.Join(clauses, " "+token+" ")

	switch {
	case compiled == "":
		return opts.StaticQuery
	case opts.StaticQuery == "":
		return compiled
	default:
		return compiled + token + opts.StaticQuery
	}
}

// CompileFilters translates filter items and compiles them in one step.
func CompileFilters(items []FilterItem, opts Options) string {
	return Compile(Translate(items), opts)
}

// RenderCriterion renders one criterion, or returns "" when its operator is not a DSL
// operator.
func RenderCriterion(c Criterion) string {
	switch c.Operator {
	case Contains:
		return fmt.Sprintf("%s.ToLower().Contains(%s)", c.Field, renderValue(c.Value, c.IsExplicitFilter))
	case Equals, NotEqual, GreaterThan, GreaterOrEqual, LessThan, LessOrEqual:
		return fmt.Sprintf("%s %s %s", c.Field, c.Operator.Token(), renderValue(c.Value, c.IsExplicitFilter))
	case AnyTrue:
		return fmt.Sprintf("%s.Any(s => s.%s)", c.Field, renderRaw(c.Value))
	case AnyFalse:
		return fmt.Sprintf("!%s.Any(s => s.%s)", c.Field, renderRaw(c.Value))
	default:
		return ""
	}
}

// renderValue quotes strings, lower-casing them unless explicit, and leaves every other
// value bare.
func renderValue(value any, explicit bool) string {
	s, ok := value.(string)
	if !ok {
		return renderRaw(value)
	}
	if !explicit {
		s = strings.ToLower(s)
	}
	return `"` + s + `"`
}

func renderRaw(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
