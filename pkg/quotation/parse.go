package quotation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	headerRow    = 1
	firstDataRow = 2
)

// Parse reads the weight brackets of a quotation sheet.
//
// Brackets are returned in row order. Each carries one price per zone, ordered by zone
// name. Rows without any non-empty data cell, and rows whose weight label is empty, are
// skipped. A zone missing from the header row, a weight label that is not a number or a
// range of numbers, and a price that is not a number are errors. Empty price cells are 0.
func Parse(grid Grid, zones []Zone) ([]WeightBracket, error) {
	if len(grid) <= headerRow {
		return []WeightBracket{}, nil
	}

	sorted := SortZones(zones)
	columns, err := zoneColumns(grid[headerRow], sorted)
	if err != nil {
		return nil, err
	}

	brackets := make([]WeightBracket, 0, len(grid)-firstDataRow)
	for i, row := range grid {
		if !isDataRow(row) {
			continue
		}

		var label string
		if len(row) > 0 {
			label = row[0].Value
		}
		weights, ok, err := ParseWeightLabel(label)
		if err != nil {
			var wle *WeightLabelError
			if errors.As(err, &wle) {
				wle.Row = i
			}
			return nil, err
		}
		if !ok {
			continue
		}

		prices := make([]ZonePrice, len(sorted))
		for z, zone := range sorted {
			col := columns[z]
			var raw string
			if col < len(row) {
				raw = row[col].Value
			}
			price, err := parsePrice(raw)
			if err != nil {
				return nil, &PriceError{Row: i, Col: col, ZoneID: zone.ID, Value: raw}
			}
			prices[z] = ZonePrice{ZoneID: zone.ID, PriceInUSD: price}
		}

		brackets = append(brackets, WeightBracket{
			StartWeight: weights.Start,
			EndWeight:   weights.End,
			ZonePrices:  prices,
		})
	}
	return brackets, nil
}

// zoneColumns resolves the grid column holding each zone's prices. Column 0 of the header
// row is the weight header and never matches a zone. Header values are trimmed before
// matching.
func zoneColumns(header []Cell, zones []Zone) ([]int, error) {
	names := make(map[string]int, len(header))
	for col := len(header) - 1; col >= 1; col-- {
		names[strings.TrimSpace(header[col].Value)] = col
	}

	columns := make([]int, len(zones))
	for i, zone := range zones {
		col, ok := names[zone.Name]
		if !ok {
			return nil, &MissingZoneError{ZoneID: zone.ID, ZoneName: zone.Name}
		}
		columns[i] = col
	}
	return columns, nil
}

func isDataRow(row []Cell) bool {
	for _, cell := range row {
		if cell.Row >= firstDataRow && strings.TrimSpace(cell.Value) != "" {
			return true
		}
	}
	return false
}

// ParseWeightLabel reads a weight label. A label containing "-" is a range "start - end"
// whose first two segments are used; any other label is a ceiling. ok is false when the label holds no weight at all.
func ParseWeightLabel(label string) (r WeightRange, ok bool, err error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return WeightRange{}, false, nil
	}

	if !strings.Contains(label, "-") {
		end, err := parseNumber(label)
		if err != nil {
			return WeightRange{}, false, &WeightLabelError{Label: label, Reason: err.Error()}
		}
		return WeightRange{End: end}, true, nil
	}

	var segments []string
	for _, s := range strings.Split(label, "-") {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	switch len(segments) {
	case 0:
		return WeightRange{}, false, nil
	case 1:
		return WeightRange{}, false, &WeightLabelError{Label: label, Reason: "range must have a start and an end"}
	}

	start, err := parseNumber(segments[0])
	if err != nil {
		return WeightRange{}, false, &WeightLabelError{Label: label, Reason: err.Error()}
	}
	end, err := parseNumber(segments[1])
	if err != nil {
		return WeightRange{}, false, &WeightLabelError{Label: label, Reason: err.Error()}
	}
	return WeightRange{Start: &start, End: end}, true, nil
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return f, nil
}

func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return parseNumber(s)
}
