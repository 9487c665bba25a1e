package domain

import (
	"math"
	"slices"
)

// Filter returns the readings from the given year that meet the threshold,
// preserving input order. An empty result is valid.
func Filter(readings []Reading, year int, threshold float64) []Reading {
	out := make([]Reading, 0)
	for _, r := range readings {
		if r.Year() == year && r.Qualifies(threshold) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByYear returns the readings from the given year, preserving input order.
func FilterByYear(readings []Reading, year int) []Reading {
	out := make([]Reading, 0)
	for _, r := range readings {
		if r.Year() == year {
			out = append(out, r)
		}
	}
	return out
}

// FilterByThreshold returns the readings that meet the threshold regardless
// of year, preserving input order.
func FilterByThreshold(readings []Reading, threshold float64) []Reading {
	out := make([]Reading, 0)
	for _, r := range readings {
		if r.Qualifies(threshold) {
			out = append(out, r)
		}
	}
	return out
}

// Years returns the distinct years present in the readings, most recent first.
func Years(readings []Reading) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, r := range readings {
		y := r.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	slices.Sort(years)
	slices.Reverse(years)
	return years
}

// Bounds is the range a threshold selector should offer.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ThresholdBounds returns the smallest tmax across all readings and the
// largest tmax within the selected year. When the year has no readings the
// overall maximum is used instead. ok is false for an empty input.
func ThresholdBounds(readings []Reading, year int) (b Bounds, ok bool) {
	if len(readings) == 0 {
		return Bounds{}, false
	}
	b.Min = math.Inf(1)
	overallMax := math.Inf(-1)
	yearMax := math.Inf(-1)
	for _, r := range readings {
		b.Min = min(b.Min, r.Tmax)
		overallMax = max(overallMax, r.Tmax)
		if r.Year() == year {
			yearMax = max(yearMax, r.Tmax)
		}
	}
	b.Max = yearMax
	if math.IsInf(yearMax, -1) {
		b.Max = overallMax
	}
	return b, true
}
