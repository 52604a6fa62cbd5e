// Package criteria compiles table filter criteria into the backend query expression language.
//
// Filters arrive from list screens as {field, value, operator} triples in the UI operator
// vocabulary. They are translated to DSL operators and rendered into one predicate string
// that the backend accepts as an opaque filter argument.
//
// Example usage:
//
//	q := criteria.CompileFilters([]criteria.FilterItem{
//	    {Field: "Name", Operator: criteria.FilterContains, Value: "ABC"},
//	    {Field: "Weight", Operator: criteria.FilterGreaterThan, Value: 10},
//	}, criteria.Options{})
//	// Name.ToLower().Contains("abc") && Weight > 10
package criteria

import (
	"fmt"
	"strings"
)

// FilterOperator is the operator vocabulary emitted by table filter controls.
type FilterOperator string

const (
	FilterContains       FilterOperator = "contains"
	FilterEquals         FilterOperator = "equals"
	FilterNotEqual       FilterOperator = "notEqual"
	FilterGreaterThan    FilterOperator = "greaterThan"
	FilterGreaterOrEqual FilterOperator = "greaterOrEqual"
	FilterLessThan       FilterOperator = "lessThan"
	FilterLessOrEqual    FilterOperator = "lessOrEqual"
	FilterAnyTrue        FilterOperator = "anyTrue"
	FilterAnyFalse       FilterOperator = "anyFalse"
)

// Operator is a query DSL operator. The zero value is not a valid operator and renders
// nothing.
type Operator int

const (
	invalidOperator Operator = iota
	Contains
	Equals
	NotEqual
	GreaterThan
	GreaterOrEqual
	LessThan
	LessOrEqual
	AnyTrue
	AnyFalse
)

var operatorNames = map[Operator]string{
	Contains:       "Contains",
	Equals:         "Equals",
	NotEqual:       "NotEqual",
	GreaterThan:    "GreaterThan",
	GreaterOrEqual: "GreaterOrEqual",
	LessThan:       "LessThan",
	LessOrEqual:    "LessOrEqual",
	AnyTrue:        "AnyTrue",
	AnyFalse:       "AnyFalse",
}

// String returns the operator name.
func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Token returns the infix token of a comparison operator, or "" for operators rendered
// as method calls.
func (o Operator) Token() string {
	switch o {
	case Equals:
		return "=="
	case NotEqual:
		return "!="
	case GreaterThan:
		return ">"
	case GreaterOrEqual:
		return ">="
	case LessThan:
		return "<"
	case LessOrEqual:
		return "<="
	default:
		return ""
	}
}

// Valid reports whether o is one of the declared DSL operators.
func (o Operator) Valid() bool {
	_, ok := operatorNames[o]
	return ok
}

// Combinator joins clauses with logical AND or OR.
type Combinator int

const (
	And Combinator = iota
	Or
)

// Token returns "&&" or "||".
func (c Combinator) Token() string {
	if c == Or {
		return "||"
	}
	return "&&"
}

func (c Combinator) String() string {
	if c == Or {
		return "or"
	}
	return "and"
}

// ParseCombinator accepts "and", "or", "&&", "||" (case-insensitive). The empty string is And.
func ParseCombinator(s string) (Combinator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "and", "&&":
		return And, nil
	case "or", "||":
		return Or, nil
	default:
		return And, fmt.Errorf("criteria: unknown combinator %q", s)
	}
}

// FilterItem is a single filter emitted by a table control.
type FilterItem struct {
	Field            string         `json:"field"`
	Value            any            `json:"value"`
	Operator         FilterOperator `json:"operator"`
	IsExplicitFilter bool           `json:"isExplicitFilter,omitempty"`
}

// Criterion is a filter expressed with a DSL operator.
//
// For AnyTrue and AnyFalse, Value names the boolean sub-property tested on each element
// of the Field collection.
type Criterion struct {
	Field            string
	Operator         Operator
	Value            any
	IsExplicitFilter bool
}

// Options controls how a criteria set is compiled.
type Options struct {
	// Combinator joins the rendered criteria and the static query.
	Combinator Combinator
	// StaticQuery is a pre-built fragment appended to every compiled query.
	StaticQuery string
}
