package domain

import (
	"cmp"
	"slices"
	"strconv"
)

// Column is one (year[, period]) combination of a pivot table.
type Column struct {
	Year   int    `json:"year"`
	Period Period `json:"period,omitempty"`
}

// Label renders the column header, e.g. "2021" or "2021 15 Mar–15 Apr".
func (c Column) Label() string {
	if c.Period == PeriodNone {
		return strconv.Itoa(c.Year)
	}
	return strconv.Itoa(c.Year) + " " + string(c.Period)
}

// compareColumns orders years descending, then periods canonically.
func compareColumns(a, b Column) int {
	if a.Year != b.Year {
		return cmp.Compare(b.Year, a.Year)
	}
	return cmp.Compare(a.Period.rank(), b.Period.rank())
}

// ColumnUniverse builds the full column set for a pivot: every year present
// in counts, crossed with both periods when seasonal is set. The order never
// depends on the order combinations appear in the data.
func ColumnUniverse(counts map[GroupKey]int, seasonal bool) []Column {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for k := range counts {
		if _, ok := seen[k.Year]; ok {
			continue
		}
		seen[k.Year] = struct{}{}
		years = append(years, k.Year)
	}

	columns := make([]Column, 0, len(years)*2)
	for _, y := range years {
		if !seasonal {
			columns = append(columns, Column{Year: y})
			continue
		}
		for _, p := range periodOrder {
			columns = append(columns, Column{Year: y, Period: p})
		}
	}
	slices.SortFunc(columns, compareColumns)
	return columns
}

// PivotRow is one location with one count per table column.
type PivotRow struct {
	Location
	Name   string `json:"name,omitempty"`
	Counts []int  `json:"counts"`
}

// Total sums the row across all columns.
func (r PivotRow) Total() int {
	total := 0
	for _, c := range r.Counts {
		total += c
	}
	return total
}

// PivotTable is the wide form of grouped counts.
type PivotTable struct {
	Columns []Column   `json:"columns"`
	Rows    []PivotRow `json:"rows"`
}

// Pivot reshapes counts into one row per location and one cell per column.
// Every location present in counts gets a row, zero-filled wherever no count
// exists; counts for columns outside the universe are ignored. Rows are
// ordered by latitude then longitude so the result is independent of map
// iteration order.
func Pivot(counts map[GroupKey]int, columns []Column, names Gazetteer) PivotTable {
	index := make(map[Column]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	rows := make(map[Location][]int)
	for k, n := range counts {
		cells, ok := rows[k.Location]
		if !ok {
			cells = make([]int, len(columns))
			rows[k.Location] = cells
		}
		if i, ok := index[k.Column()]; ok {
			cells[i] += n
		}
	}

	locations := make([]Location, 0, len(rows))
	for loc := range rows {
		locations = append(locations, loc)
	}
	slices.SortFunc(locations, compareLocations)

	table := PivotTable{
		Columns: slices.Clone(columns),
		Rows:    make([]PivotRow, 0, len(locations)),
	}
	if table.Columns == nil {
		table.Columns = []Column{}
	}
	for _, loc := range locations {
		table.Rows = append(table.Rows, PivotRow{
			Location: loc,
			Name:     names.Name(loc),
			Counts:   rows[loc],
		})
	}
	return table
}

func compareLocations(a, b Location) int {
	if c := cmp.Compare(a.Lat, b.Lat); c != 0 {
		return c
	}
	return cmp.Compare(a.Lon, b.Lon)
}
