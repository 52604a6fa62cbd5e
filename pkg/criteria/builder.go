package criteria

// Builder accumulates criteria in a fluent manner.
type Builder struct {
	criteria []Criterion
	opts     Options
}

// NewBuilder returns an empty Builder combining criteria with AND.
func NewBuilder() *Builder {
	return &Builder{}
}

// Where appends a criterion with an arbitrary operator.
func (b *Builder) Where(field string, op Operator, value any) *Builder {
	b.criteria = append(b.criteria, Criterion{Field: field, Operator: op, Value: value})
	return b
}

// Filter appends a filter item after translating its operator.
func (b *Builder) Filter(item FilterItem) *Builder {
	b.criteria = append(b.criteria, Translate([]FilterItem{item})...)
	return b
}

// Contains appends a case-insensitive substring match.
func (b *Builder) Contains(field, value string) *Builder {
	return b.Where(field, Contains, value)
}

// Equals appends an equality comparison.
func (b *Builder) Equals(field string, value any) *Builder {
	return b.Where(field, Equals, value)
}

// NotEqual appends an inequality comparison.
func (b *Builder) NotEqual(field string, value any) *Builder {
	return b.Where(field, NotEqual, value)
}

// GreaterThan appends a > comparison.
func (b *Builder) GreaterThan(field string, value any) *Builder {
	return b.Where(field, GreaterThan, value)
}

// GreaterOrEqual appends a >= comparison.
func (b *Builder) GreaterOrEqual(field string, value any) *Builder {
	return b.Where(field, GreaterOrEqual, value)
}

// LessThan appends a < comparison.
func (b *Builder) LessThan(field string, value any) *Builder {
	return b.Where(field, LessThan, value)
}

// LessOrEqual appends a <= comparison.
func (b *Builder) LessOrEqual(field string, value any) *Builder {
	return b.Where(field, LessOrEqual, value)
}

// AnyTrue appends a test that some element of the collection has property set.
func (b *Builder) AnyTrue(collection, property string) *Builder {
	return b.Where(collection, AnyTrue, property)
}

// AnyFalse appends a test that no element of the collection has property set.
func (b *Builder) AnyFalse(collection, property string) *Builder {
	return b.Where(collection, AnyFalse, property)
}

// Explicit keeps the case of the most recently added string value.
func (b *Builder) Explicit() *Builder {
	if n := len(b.criteria); n > 0 {
		b.criteria[n-1].IsExplicitFilter = true
	}
	return b
}

// Or switches the builder to combine with OR.
func (b *Builder) Or() *Builder {
	b.opts.Combinator = Or
	return b
}

// Static sets the fragment joined to the compiled criteria.
func (b *Builder) Static(query string) *Builder {
	b.opts.StaticQuery = query
	return b
}

// Criteria returns a copy of the accumulated criteria.
func (b *Builder) Criteria() []Criterion {
	out := make([]Criterion, len(b.criteria))
	copy(out, b.criteria)
	return out
}

// Options returns the compile options.
func (b *Builder) Options() Options {
	return b.opts
}

// Compile renders the accumulated criteria.
func (b *Builder) Compile() string {
	return Compile(b.criteria, b.opts)
}
