package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	s, err := ParseSort("CreatedAt:DESC")
	require.NoError(t, err)
	assert.Equal(t, Sort{Field: "CreatedAt", Direction: Desc}, s)

	s, err = ParseSort(" Name ")
	require.NoError(t, err)
	assert.Equal(t, Sort{Field: "Name", Direction: Asc}, s)

	_, err = ParseSort(":asc")
	assert.Error(t, err)

	_, err = ParseSort("Name:sideways")
	assert.Error(t, err)
}

func TestOrderBy(t *testing.T) {
	assert.Empty(t, OrderBy(nil))
	assert.Equal(t, "Name asc, CreatedAt desc", OrderBy([]Sort{
		{Field: "Name"},
		{Field: ""},
		{Field: "CreatedAt", Direction: "DESC"},
	}))
}

func TestPagingNormalize(t *testing.T) {
	assert.Equal(t, Paging{Page: 1, PageSize: DefaultPageSize}, Paging{}.Normalize())
	assert.Equal(t, Paging{Page: 3, PageSize: MaxPageSize}, Paging{Page: 3, PageSize: 10000}.Normalize())
	assert.Equal(t, Paging{Page: 2, PageSize: 50}, Paging{Page: 2, PageSize: 50}.Normalize())
}

func TestQueryVariables(t *testing.T) {
	q := Query{
		Filters: []FilterItem{
			{Field: "Name", Operator: FilterContains, Value: "Ha"},
		},
		StaticQuery: "BranchId == 2",
		Sorts:       []Sort{{Field: "Name", Direction: Desc}},
		Paging:      Paging{Page: 2, PageSize: 25},
	}

	assert.Equal(t, map[string]any{
		"filter":   `Name.ToLower().Contains("ha")&&BranchId == 2`,
		"orderBy":  "Name desc",
		"page":     2,
		"pageSize": 25,
	}, q.Variables())

	values := q.WithPage(5).Values()
	assert.Equal(t, "5", values.Get("page"))
	assert.Equal(t, "25", values.Get("pageSize"))
	assert.Equal(t, "Name desc", values.Get("orderBy"))
	assert.Equal(t, `Name.ToLower().Contains("ha")&&BranchId == 2`, values.Get("filter"))

	// WithPage must not alter the receiver.
	assert.Equal(t, 2, q.Paging.Page)
}

func TestQueryVariablesOmitEmpty(t *testing.T) {
	vars := Query{}.Variables()
	assert.NotContains(t, vars, "filter")
	assert.NotContains(t, vars, "orderBy")
	assert.Equal(t, 1, vars["page"])
	assert.Equal(t, DefaultPageSize, vars["pageSize"])

	values := Query{}.Values()
	assert.False(t, values.Has("filter"))
	assert.False(t, values.Has("orderBy"))
}
