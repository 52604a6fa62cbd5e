package quotation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGridRoundTrip(t *testing.T) {
	zones := []Zone{
		{ID: "z2", Name: "B", Countries: []string{"US", "CA"}},
		{ID: "z1", Name: "A", Countries: []string{"VN"}},
	}
	brackets := []WeightBracket{
		{EndWeight: 0.5, ZonePrices: []ZonePrice{{ZoneID: "z1", PriceInUSD: 10}, {ZoneID: "z2", PriceInUSD: 20}}},
		{StartWeight: ptr(1), EndWeight: 5, ZonePrices: []ZonePrice{{ZoneID: "z1", PriceInUSD: 12.5}, {ZoneID: "z2", PriceInUSD: 25}}},
	}

	grid := BuildGrid(zones, brackets)
	require.Len(t, grid, 4)
	assert.Equal(t, "VN", grid[0][1].Value)
	assert.Equal(t, "US, CA", grid[0][2].Value)
	assert.Equal(t, []string{"Weight", "A", "B"}, values(grid[1]))
	assert.Equal(t, []string{"1 - 5", "12.5", "25"}, values(grid[3]))

	got, err := Parse(grid, zones)
	require.NoError(t, err)
	if diff := cmp.Diff(brackets, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildGridMissingPrice(t *testing.T) {
	zones := []Zone{{ID: "z1", Name: "A"}, {ID: "z2", Name: "B"}}
	grid := BuildGrid(zones, []WeightBracket{
		{EndWeight: 2, ZonePrices: []ZonePrice{{ZoneID: "z2", PriceInUSD: 7}}},
	})

	assert.Equal(t, []string{"2", "", "7"}, values(grid[2]))
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "comma separated",
			input: ",VN,US\nWeight,A,B\n1 - 5,10,20\n",
			want:  [][]string{{"", "VN", "US"}, {"Weight", "A", "B"}, {"1 - 5", "10", "20"}},
		},
		{
			name:  "tab separated",
			input: "\tVN, TH\tUS\nWeight\tA\tB\n0.5\t10\t20\n",
			want:  [][]string{{"", "VN, TH", "US"}, {"Weight", "A", "B"}, {"0.5", "10", "20"}},
		},
		{
			name:  "ragged rows",
			input: ",VN\nWeight,A\n3\n",
			want:  [][]string{{"", "VN"}, {"Weight", "A"}, {"3"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := ReadCSV(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, grid, len(tt.want))
			for i, row := range grid {
				assert.Equal(t, tt.want[i], values(row))
				for j, cell := range row {
					assert.Equal(t, i, cell.Row)
					assert.Equal(t, j, cell.Col)
				}
			}
		})
	}
}

func TestReadCSVThenParse(t *testing.T) {
	input := ",VN,US\nWeight,B,A\n1 - 5,20,10\n"
	grid, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	got, err := Parse(grid, testZones)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []ZonePrice{{ZoneID: "z1", PriceInUSD: 10}, {ZoneID: "z2", PriceInUSD: 20}}, got[0].ZonePrices)
}

func TestWriteCSV(t *testing.T) {
	grid := BuildGrid([]Zone{{ID: "z1", Name: "A", Countries: []string{"VN", "TH"}}}, []WeightBracket{
		{StartWeight: ptr(0), EndWeight: 1, ZonePrices: []ZonePrice{{ZoneID: "z1", PriceInUSD: 3}}},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, grid))
	assert.Equal(t, ",\"VN, TH\"\nWeight,A\n0 - 1,3\n", buf.String())

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(grid, back))
}

func values(row []Cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.Value
	}
	return out
}
