package domain

// GroupKey identifies one cell of a grouped count. Period is PeriodNone for
// counts grouped by year alone.
type GroupKey struct {
	Location
	Year   int
	Period Period
}

// Column returns the pivot column the key contributes to.
func (k GroupKey) Column() Column { return Column{Year: k.Year, Period: k.Period} }

// CountByLocation counts qualifying readings per exact location. Locations
// with no qualifying readings are absent from the result.
func CountByLocation(readings []Reading, threshold float64) map[Location]int {
	counts := make(map[Location]int)
	for _, r := range readings {
		if r.Qualifies(threshold) {
			counts[r.Location]++
		}
	}
	return counts
}

// CountByLocationYear counts qualifying readings per location and year.
func CountByLocationYear(readings []Reading, threshold float64) map[GroupKey]int {
	counts := make(map[GroupKey]int)
	for _, r := range readings {
		if r.Qualifies(threshold) {
			counts[GroupKey{Location: r.Location, Year: r.Year()}]++
		}
	}
	return counts
}

// CountByLocationYearPeriod counts qualifying readings per location, year and
// seasonal period. Readings outside every period are not counted.
func CountByLocationYearPeriod(readings []Reading, threshold float64) map[GroupKey]int {
	counts := make(map[GroupKey]int)
	for _, r := range readings {
		if !r.Qualifies(threshold) {
			continue
		}
		p, ok := PeriodOf(r.Time)
		if !ok {
			continue
		}
		counts[GroupKey{Location: r.Location, Year: r.Year(), Period: p}]++
	}
	return counts
}
