// Package dsl parses and evaluates the backend query expression language produced by
// package criteria.
//
// The language is a small boolean predicate syntax over record fields:
//
//	Name.ToLower().Contains("abc") && Amount >= 10 || !Tags.Any(s => s.isActive)
//
// Parsing is enough to check a static query fragment before it is sent to the backend.
// Evaluate applies an expression to an in-memory record, which is how compiled filters
// are exercised without a backend.
package dsl

import (
	"fmt"
	"sort"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Number", Pattern: `-?\d+(\.\d+)?([eE][-+]?\d+)?`},
		{Name: "Keyword", Pattern: `\b(true|false|null)\b`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Operator", Pattern: `==|!=|>=|<=|&&|\|\||=>|[<>!().,]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser = participle.MustBuild[Expression](
		participle.Lexer(dslLexer),
		participle.Unquote("String"),
		participle.Elide("Whitespace"),
	)
)

// Expression is a disjunction of conjunctions.
type Expression struct {
	Or []*AndGroup `parser:"@@ ( '||' @@ )*"`
}

// AndGroup is a conjunction of unary terms.
type AndGroup struct {
	And []*Unary `parser:"@@ ( '&&' @@ )*"`
}

// Unary is a negated term, a parenthesised expression or a predicate.
type Unary struct {
	Not       *Unary      `parser:"  '!' @@"`
	Group     *Expression `parser:"| '(' @@ ')'"`
	Predicate *Predicate  `parser:"| @@"`
}

// Predicate compares a member chain with a literal. Without an operator the chain
// itself must yield a boolean.
type Predicate struct {
	Left  *Chain   `parser:"@@"`
	Op    string   `parser:"( @('==' | '!=' | '>=' | '<=' | '>' | '<')"`
	Right *Literal `parser:"  @@ )?"`
}

// Chain is a field reference followed by property accesses and method calls.
type Chain struct {
	Root    string    `parser:"@Ident"`
	Members []*Member `parser:"( '.' @@ )*"`
}

// Member is one step of a chain. Call is nil for a property access.
type Member struct {
	Name string `parser:"@Ident"`
	Call *Call  `parser:"@@?"`
}

// Call holds the argument list of a method call.
type Call struct {
	Open     string    `parser:"@'('"`
	Argument *Argument `parser:"@@? ')'"`
}

// Argument is the single argument a method accepts.
type Argument struct {
	Lambda  *Lambda  `parser:"  @@"`
	Literal *Literal `parser:"| @@"`
}

// Lambda is a predicate over the elements of a collection, as in s => s.isActive.
type Lambda struct {
	Param string      `parser:"@Ident '=>'"`
	Body  *Expression `parser:"@@"`
}

// Literal is a string, number, boolean or null constant.
type Literal struct {
	String *string  `parser:"  @String"`
	Number *float64 `parser:"| @Number"`
	Bool   *string  `parser:"| @('true' | 'false')"`
	Null   bool     `parser:"| @'null'"`
}

// Value returns the literal as a Go value: string, float64, bool or nil.
func (l *Literal) Value() any {
	switch {
	case l.String != nil:
		return *l.String
	case l.Number != nil:
		return *l.Number
	case l.Bool != nil:
		return *l.Bool == "true"
	}
	return nil
}

// Parse parses a query expression.
func Parse(input string) (*Expression, error) {
	expr, err := parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("dsl: %w", err)
	}
	return expr, nil
}

// Validate reports whether input is a well-formed query expression.
func Validate(input string) error {
	_, err := Parse(input)
	return err
}

// Fields returns the record fields the expression reads, sorted and without duplicates.
// Lambda parameters are not fields.
func (e *Expression) Fields() []string {
	seen := map[string]struct{}{}
	e.collect(seen, nil)

	fields := make([]string, 0, len(seen))
	for f := range seen {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e *Expression) collect(seen map[string]struct{}, params map[string]bool) {
	for _, g := range e.Or {
		for _, u := range g.And {
			u.collect(seen, params)
		}
	}
}

func (u *Unary) collect(seen map[string]struct{}, params map[string]bool) {
	switch {
	case u.Not != nil:
		u.Not.collect(seen, params)
	case u.Group != nil:
		u.Group.collect(seen, params)
	case u.Predicate != nil:
		u.Predicate.Left.collect(seen, params)
	}
}

func (c *Chain) collect(seen map[string]struct{}, params map[string]bool) {
	if !params[c.Root] {
		seen[c.Root] = struct{}{}
	}
	for _, m := range c.Members {
		if m.Call == nil || m.Call.Argument == nil || m.Call.Argument.Lambda == nil {
			continue
		}
		lambda := m.Call.Argument.Lambda
		inner := make(map[string]bool, len(params)+1)
		for p := range params {
			inner[p] = true
		}
		inner[lambda.Param] = true
		lambda.Body.collect(seen, inner)
	}
}
