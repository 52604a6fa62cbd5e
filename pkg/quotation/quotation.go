// Package quotation converts vendor quotation sheets into weight-bracket price records.
//
// A sheet is a grid of cells. Row 0 holds the countries of each zone and is ignored when
// parsing, row 1 holds the zone names (column 0 is the weight header), and every further
// row holds a weight label in column 0 followed by one price per zone column:
//
//	          | VN, TH | US, CA
//	Weight    | A      | B
//	0.5       | 10     | 20
//	1 - 5     | 12     | 25
package quotation

import (
	"sort"
	"strconv"
)

// Cell is one value of a sheet grid.
type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// Grid is a sheet as rows of cells.
type Grid [][]Cell

// Zone is a named group of destination countries priced together.
type Zone struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Countries []string `json:"countries,omitempty"`
}

// ZonePrice is the price of a weight bracket in one zone.
type ZonePrice struct {
	ZoneID     string  `json:"zoneId"`
	PriceInUSD float64 `json:"priceInUsd"`
}

// WeightBracket is a price tier for a weight range, or for a weight ceiling when
// StartWeight is nil.
type WeightBracket struct {
	StartWeight *float64    `json:"startWeight,omitempty"`
	EndWeight   float64     `json:"endWeight"`
	ZonePrices  []ZonePrice `json:"zonePrices"`
}

// Range returns the weight range of the bracket.
func (b WeightBracket) Range() WeightRange {
	return WeightRange{Start: b.StartWeight, End: b.EndWeight}
}

// WeightRange is a parsed weight label.
type WeightRange struct {
	Start *float64
	End   float64
}

// Label renders the range the way sheets write it: "start - end", or "end" for a ceiling.
func (r WeightRange) Label() string {
	end := formatNumber(r.End)
	if r.Start == nil {
		return end
	}
	return formatNumber(*r.Start) + " - " + end
}

// SortZones returns a copy of zones ordered by name.
func SortZones(zones []Zone) []Zone {
	sorted := make([]Zone, len(zones))
	copy(sorted, zones)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
