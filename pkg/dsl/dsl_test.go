package dsl

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-helen-express/pkg/criteria"
)

func TestParseValid(t *testing.T) {
	inputs := []string{
		`Name.ToLower().Contains("abc")`,
		`A == 1 || B == 2||C > 3`,
		`Code != "x"&&IsDeleted == false`,
		`Tags.Any(s => s.isActive)`,
		`!Tags.Any(s => s.isActive)`,
		`(A == 1 || B == 2) && C <= 3`,
		`Balance > -5.5 && Rate < 1e3`,
		`DeletedAt == null`,
		`Bills.Any(b => b.Lines.Any(l => l.Amount >= 10))`,
		`Vendor.Name.StartsWith("D")`,
		`Tags.Any()`,
		`trueName == true`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			require.NoError(t, Validate(input))
		})
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		``,
		`A ==`,
		`&& B == 1`,
		`A == 1 B`,
		`"x" == A`,
		`Tags.Any(s =>)`,
		`(A == 1`,
		`A = 1`,
		`A == B`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert.Error(t, Validate(input))
		})
	}
}

func TestParseStructure(t *testing.T) {
	expr, err := Parse(`!Tags.Any(s => s.isActive) || Name == "a" && Amount > 2`)
	require.NoError(t, err)

	require.Len(t, expr.Or, 2)
	require.Len(t, expr.Or[0].And, 1)
	require.NotNil(t, expr.Or[0].And[0].Not)

	chain := expr.Or[0].And[0].Not.Predicate.Left
	assert.Equal(t, "Tags", chain.Root)
	require.Len(t, chain.Members, 1)
	require.NotNil(t, chain.Members[0].Call)
	assert.Equal(t, "s", chain.Members[0].Call.Argument.Lambda.Param)

	require.Len(t, expr.Or[1].And, 2)
	second := expr.Or[1].And[1].Predicate
	assert.Equal(t, ">", second.Op)
	assert.Equal(t, 2.0, second.Right.Value())
}

func TestFields(t *testing.T) {
	expr, err := Parse(`Name.ToLower().Contains("a") && !Tags.Any(s => s.isActive) || Vendor.Name == "x" && Name != "b"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Tags", "Vendor"}, expr.Fields())
}

func testRecord(t *testing.T) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"Name": "Alpha Shipping",
		"Code": "X1",
		"Amount": 12.5,
		"IsDeleted": false,
		"DeletedAt": null,
		"Vendor": {"Name": "DHL"},
		"Labels": ["express", "fragile"],
		"Tags": [{"isActive": false}, {"isActive": true}]
	}`), &rec))
	rec["Count"] = 3
	return rec
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{`Name.ToLower().Contains("alpha")`, true},
		{`Name.Contains("alpha")`, false},
		{`Name.ToUpper() == "ALPHA SHIPPING"`, true},
		{`Name.StartsWith("Alpha") && Name.EndsWith("ing")`, true},
		{`Amount >= 12.5`, true},
		{`Amount > 12.5`, false},
		{`Count == 3`, true},
		{`Tags.Any(s => s.isActive)`, true},
		{`!Tags.Any(s => s.isActive)`, false},
		{`Tags.All(s => s.isActive)`, false},
		{`Tags.Count() == 2`, true},
		{`Labels.Contains("fragile")`, true},
		{`Vendor.Name == "DHL"`, true},
		{`IsDeleted == false && Code != "x"`, true},
		{`(Amount < 1 || Code == "X1") && !IsDeleted`, true},
		{`DeletedAt == null && Vendor != null`, true},
		{`Code == "X1" || Missing == 1`, true},
		{`Code > "A"`, true},
	}
	rec := testRecord(t)
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			expr, err := Parse(tt.expr)
			require.NoError(t, err)
			got, err := expr.Evaluate(rec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr error
	}{
		{`Missing == 1`, ErrUnknownField},
		{`Vendor.Missing == 1`, ErrUnknownField},
		{`Name > 1`, ErrTypeMismatch},
		{`Name`, ErrTypeMismatch},
		{`Amount.ToLower() == "x"`, ErrTypeMismatch},
		{`Name.Name == "x"`, ErrTypeMismatch},
		{`IsDeleted > false`, ErrTypeMismatch},
		{`Name.Any(s => s.x)`, ErrTypeMismatch},
		{`Name.Frobnicate()`, ErrUnknownMethod},
		{`Tags.Any(s => s.missing)`, ErrUnknownField},
	}
	rec := testRecord(t)
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			expr, err := Parse(tt.expr)
			require.NoError(t, err)
			_, err = expr.Evaluate(rec)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEvaluateCompiledCriteria(t *testing.T) {
	items := []criteria.FilterItem{
		{Field: "Name", Value: "ALPHA", Operator: criteria.FilterContains},
		{Field: "Amount", Value: 10, Operator: criteria.FilterGreaterThan},
		{Field: "Tags", Value: "isActive", Operator: criteria.FilterAnyTrue},
	}
	query := criteria.CompileFilters(items, criteria.Options{StaticQuery: `IsDeleted == false`})

	expr, err := Parse(query)
	require.NoError(t, err, query)

	ok, err := expr.Evaluate(testRecord(t))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = expr.Evaluate(map[string]any{
		"Name": "beta", "Amount": 11, "Tags": []any{}, "IsDeleted": false,
	})
	require.NoError(t, err)
	assert.False(t, ok)
}
