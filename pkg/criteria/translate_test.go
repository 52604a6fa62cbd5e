package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateOperator(t *testing.T) {
	tests := []struct {
		in   FilterOperator
		want Operator
	}{
		{FilterContains, Contains},
		{FilterEquals, Equals},
		{FilterNotEqual, NotEqual},
		{FilterGreaterThan, GreaterThan},
		{FilterGreaterOrEqual, GreaterOrEqual},
		{FilterLessThan, LessThan},
		{FilterLessOrEqual, LessOrEqual},
		{FilterAnyTrue, AnyTrue},
		{FilterAnyFalse, AnyFalse},
		// Unknown operators fall back to Contains.
		{"startsWith", Contains},
		{"", Contains},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateOperator(tt.in))
		})
	}
}

func TestTranslate(t *testing.T) {
	got := Translate([]FilterItem{
		{Field: "Name", Operator: FilterEquals, Value: "a"},
		{Field: "Tags", Operator: FilterAnyFalse, Value: "isActive", IsExplicitFilter: true},
	})

	assert.Equal(t, []Criterion{
		{Field: "Name", Operator: Equals, Value: "a"},
		{Field: "Tags", Operator: AnyFalse, Value: "isActive", IsExplicitFilter: true},
	}, got)
}

func TestOperatorMetadata(t *testing.T) {
	assert.Equal(t, "==", Equals.Token())
	assert.Equal(t, "<=", LessOrEqual.Token())
	assert.Empty(t, Contains.Token())
	assert.Empty(t, AnyTrue.Token())

	assert.True(t, AnyFalse.Valid())
	assert.False(t, Operator(0).Valid())
	assert.Equal(t, "GreaterOrEqual", GreaterOrEqual.String())
	assert.Equal(t, "Operator(42)", Operator(42).String())
}

func TestParseCombinator(t *testing.T) {
	for in, want := range map[string]Combinator{"": And, "AND": And, "&&": And, "or": Or, " || ": Or} {
		got, err := ParseCombinator(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCombinator("xor")
	assert.Error(t, err)
}
