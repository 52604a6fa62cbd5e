package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	tests := []struct {
		name     string
		build    func(*Builder) string
		expected string
	}{
		{
			name:     "empty",
			build:    func(b *Builder) string { return b.Compile() },
			expected: "",
		},
		{
			name: "contains and comparison",
			build: func(b *Builder) string {
				return b.Contains("Name", "Helen").GreaterThan("Weight", 3).Compile()
			},
			expected: `Name.ToLower().Contains("helen") && Weight > 3`,
		},
		{
			name: "explicit applies to the last criterion only",
			build: func(b *Builder) string {
				return b.Equals("Code", "AB").Explicit().Equals("Ref", "CD").Compile()
			},
			expected: `Code == "AB" && Ref == "cd"`,
		},
		{
			name: "or with static",
			build: func(b *Builder) string {
				return b.Or().
					LessThan("Price", 10).
					LessOrEqual("Weight", 0.5).
					Static("IsDeleted == false").
					Compile()
			},
			expected: `Price < 10 || Weight <= 0.5||IsDeleted == false`,
		},
		{
			name: "membership tests",
			build: func(b *Builder) string {
				return b.AnyTrue("Roles", "isAdmin").AnyFalse("Vendors", "isBlocked").Compile()
			},
			expected: `Roles.Any(s => s.isAdmin) && !Vendors.Any(s => s.isBlocked)`,
		},
		{
			name: "filter items",
			build: func(b *Builder) string {
				return b.Filter(FilterItem{Field: "Status", Operator: FilterNotEqual, Value: 4}).
					GreaterOrEqual("Total", 1).
					NotEqual("Code", "Z").
					Compile()
			},
			expected: `Status != 4 && Total >= 1 && Code != "z"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.build(NewBuilder()))
		})
	}
}

func TestBuilderCriteriaIsCopy(t *testing.T) {
	b := NewBuilder().Equals("A", 1)
	got := b.Criteria()
	got[0].Field = "changed"

	assert.Equal(t, "A", b.Criteria()[0].Field)
	assert.Equal(t, And, b.Options().Combinator)
}

func TestBuilderExplicitOnEmpty(t *testing.T) {
	assert.Empty(t, NewBuilder().Explicit().Criteria())
}
