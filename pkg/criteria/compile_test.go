package criteria

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		criteria []Criterion
		opts     Options
		expected string
	}{
		{
			name:     "empty",
			expected: "",
		},
		{
			name:     "contains lower-cases the literal",
			criteria: []Criterion{{Field: "Name", Operator: Contains, Value: "ABC"}},
			expected: `Name.ToLower().Contains("abc")`,
		},
		{
			name:     "explicit contains keeps case",
			criteria: []Criterion{{Field: "Name", Operator: Contains, Value: "ABC", IsExplicitFilter: true}},
			expected: `Name.ToLower().Contains("ABC")`,
		},
		{
			name: "or with static query",
			criteria: []Criterion{
				{Field: "A", Operator: Equals, Value: 1},
				{Field: "B", Operator: Equals, Value: 2},
			},
			opts:     Options{Combinator: Or, StaticQuery: "C > 3"},
			expected: `A == 1 || B == 2||C > 3`,
		},
		{
			name: "and with static query",
			criteria: []Criterion{
				{Field: "Code", Operator: NotEqual, Value: "x"},
			},
			opts:     Options{StaticQuery: "IsDeleted == false"},
			expected: `Code != "x"&&IsDeleted == false`,
		},
		{
			name:     "static query only",
			opts:     Options{Combinator: Or, StaticQuery: "C > 3"},
			expected: "C > 3",
		},
		{
			name: "comparison tokens",
			criteria: []Criterion{
				{Field: "W", Operator: GreaterThan, Value: 1.5},
				{Field: "W", Operator: GreaterOrEqual, Value: 2},
				{Field: "W", Operator: LessThan, Value: int64(10)},
				{Field: "W", Operator: LessOrEqual, Value: json.Number("11")},
			},
			expected: `W > 1.5 && W >= 2 && W < 10 && W <= 11`,
		},
		{
			name: "booleans are bare",
			criteria: []Criterion{
				{Field: "IsActive", Operator: Equals, Value: true},
			},
			expected: `IsActive == true`,
		},
		{
			name:     "any true",
			criteria: []Criterion{{Field: "Tags", Operator: AnyTrue, Value: "isActive"}},
			expected: `Tags.Any(s => s.isActive)`,
		},
		{
			name:     "any false",
			criteria: []Criterion{{Field: "Tags", Operator: AnyFalse, Value: "isActive"}},
			expected: `!Tags.Any(s => s.isActive)`,
		},
		{
			name: "unknown operator drops the clause and its combinator",
			criteria: []Criterion{
				{Field: "A", Operator: Equals, Value: 1},
				{Field: "B", Operator: Operator(99), Value: 2},
				{Field: "C", Operator: Equals, Value: 3},
			},
			expected: `A == 1 && C == 3`,
		},
		{
			name:     "only unknown operators with static query",
			criteria: []Criterion{{Field: "B", Operator: invalidOperator, Value: 2}},
			opts:     Options{StaticQuery: "X == 1"},
			expected: `X == 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compile(tt.criteria, tt.opts))
		})
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	criteria := []Criterion{
		{Field: "Name", Operator: Contains, Value: "Helen"},
		{Field: "Tags", Operator: AnyFalse, Value: "isArchived"},
		{Field: "Total", Operator: GreaterThan, Value: 100.25},
	}
	opts := Options{Combinator: Or, StaticQuery: "BranchId == 3"}

	first := Compile(criteria, opts)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Compile(criteria, opts))
	}
}

func TestCompileFilters(t *testing.T) {
	var items []FilterItem
	require.NoError(t, json.Unmarshal([]byte(`[
		{"field": "CustomerName", "operator": "contains", "value": "Nguyen"},
		{"field": "Weight", "operator": "greaterOrEqual", "value": 2.5},
		{"field": "Services", "operator": "anyTrue", "value": "isExpress"},
		{"field": "Code", "operator": "equals", "value": "HX-01", "isExplicitFilter": true}
	]`), &items))

	got := CompileFilters(items, Options{})
	assert.Equal(t,
		`CustomerName.ToLower().Contains("nguyen") && Weight >= 2.5 && Services.Any(s => s.isExpress) && Code == "HX-01"`,
		got)
}

func TestRenderCriterion(t *testing.T) {
	assert.Equal(t, `Note == null`, RenderCriterion(Criterion{Field: "Note", Operator: Equals}))
	assert.Equal(t, `Count != 0`, RenderCriterion(Criterion{Field: "Count", Operator: NotEqual, Value: uint8(0)}))
	assert.Empty(t, RenderCriterion(Criterion{Field: "X", Operator: invalidOperator, Value: "y"}))
}
