package criteria

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is used when a query does not set a page size.
	DefaultPageSize = 20
	// MaxPageSize bounds the page size sent to the backend.
	MaxPageSize = 500
)

// SortDirection orders a sort field.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Sort orders results by one field.
type Sort struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction,omitempty"`
}

// ParseSort parses "field", "field:asc" or "field:desc".
func ParseSort(s string) (Sort, error) {
	field, dir, _ := strings.Cut(strings.TrimSpace(s), ":")
	field = strings.TrimSpace(field)
	if field == "" {
		return Sort{}, fmt.Errorf("criteria: empty sort field in %q", s)
	}
	switch d := SortDirection(strings.ToLower(strings.TrimSpace(dir))); d {
	case "", Asc:
		return Sort{Field: field, Direction: Asc}, nil
	case Desc:
		return Sort{Field: field, Direction: Desc}, nil
	default:
		return Sort{}, fmt.Errorf("criteria: unknown sort direction %q", dir)
	}
}

// OrderBy renders sorts as "Field asc, Other desc". Sorts with no field are skipped.
func OrderBy(sorts []Sort) string {
	parts := make([]string, 0, len(sorts))
	for _, s := range sorts {
		if s.Field == "" {
			continue
		}
		dir := Asc
		if strings.EqualFold(string(s.Direction), string(Desc)) {
			dir = Desc
		}
		parts = append(parts, s.Field+" "+string(dir))
	}
	return strings.Join(parts, ", ")
}

// Paging selects a 1-based page.
type Paging struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Normalize fills defaults and clamps the page size.
func (p Paging) Normalize() Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PageSize <= 0:
		p.PageSize = DefaultPageSize
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	}
	return p
}

// Query bundles the filter, ordering and paging arguments of a list request.
type Query struct {
	Filters     []FilterItem `json:"filters,omitempty"`
	Combinator  Combinator   `json:"-"`
	StaticQuery string       `json:"staticQuery,omitempty"`
	Sorts       []Sort       `json:"sorts,omitempty"`
	Paging      Paging       `json:"paging"`
}

// Filter returns the compiled filter expression.
func (q Query) Filter() string {
	return CompileFilters(q.Filters, Options{Combinator: q.Combinator, StaticQuery: q.StaticQuery})
}

// WithPage returns a copy of q selecting page n.
func (q Query) WithPage(n int) Query {
	q.Paging.Page = n
	return q
}

// Variables returns the request arguments. Empty filter and orderBy are omitted.
func (q Query) Variables() map[string]any {
	p := q.Paging.Normalize()
	vars := map[string]any{
		"page":     p.Page,
		"pageSize": p.PageSize,
	}
	if f := q.Filter(); f != "" {
		vars["filter"] = f
	}
	if o := OrderBy(q.Sorts); o != "" {
		vars["orderBy"] = o
	}
	return vars
}

// Values returns the request arguments as URL query values.
func (q Query) Values() url.Values {
	p := q.Paging.Normalize()
	values := url.Values{}
	values.Set("page", strconv.Itoa(p.Page))
	values.Set("pageSize", strconv.Itoa(p.PageSize))
	if f := q.Filter(); f != "" {
		values.Set("filter", f)
	}
	if o := OrderBy(q.Sorts); o != "" {
		values.Set("orderBy", o)
	}
	return values
}
