package quotation

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// WeightHeader is the label written above the weight column.
const WeightHeader = "Weight"

// BuildGrid lays brackets out as a quotation sheet that Parse reads back. Zones are
// written in name order; a zone without a price in a bracket leaves its cell empty.
func BuildGrid(zones []Zone, brackets []WeightBracket) Grid {
	sorted := SortZones(zones)
	width := len(sorted) + 1

	countries := make([]Cell, width)
	header := make([]Cell, width)
	countries[0] = Cell{Row: 0, Col: 0}
	header[0] = Cell{Row: headerRow, Col: 0, Value: WeightHeader}
	for i, zone := range sorted {
		countries[i+1] = Cell{Row: 0, Col: i + 1, Value: strings.Join(zone.Countries, ", ")}
		header[i+1] = Cell{Row: headerRow, Col: i + 1, Value: zone.Name}
	}

	grid := make(Grid, 0, len(brackets)+firstDataRow)
	grid = append(grid, countries, header)
	for b, bracket := range brackets {
		r := b + firstDataRow
		row := make([]Cell, width)
		row[0] = Cell{Row: r, Col: 0, Value: bracket.Range().Label()}

		prices := make(map[string]float64, len(bracket.ZonePrices))
		for _, zp := range bracket.ZonePrices {
			prices[zp.ZoneID] = zp.PriceInUSD
		}
		for i, zone := range sorted {
			cell := Cell{Row: r, Col: i + 1}
			if p, ok := prices[zone.ID]; ok {
				cell.Value = formatNumber(p)
			}
			row[i+1] = cell
		}
		grid = append(grid, row)
	}
	return grid
}

// ReadCSV reads a sheet exported as CSV, or pasted from a spreadsheet as tab-separated
// text. The separator is taken from the first line. Rows may have different lengths.
func ReadCSV(r io.Reader) (Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("quotation: read sheet: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	first, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Contains(first, []byte("\t")) {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("quotation: parse sheet: %w", err)
	}

	grid := make(Grid, len(records))
	for i, record := range records {
		row := make([]Cell, len(record))
		for j, value := range record {
			row[j] = Cell{Row: i, Col: j, Value: value}
		}
		grid[i] = row
	}
	return grid, nil
}

// WriteCSV writes the grid as CSV.
func WriteCSV(w io.Writer, grid Grid) error {
	writer := csv.NewWriter(w)
	for _, row := range grid {
		record := make([]string, len(row))
		for j, cell := range row {
			record[j] = cell.Value
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("quotation: write sheet: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
