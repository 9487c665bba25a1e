package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountByLocation(t *testing.T) {
	readings := exampleReadings(t)

	t.Run("all years", func(t *testing.T) {
		got := CountByLocation(readings, 39.5)
		assert.Equal(t, map[Location]int{{Lat: 14.0, Lon: 78.0}: 2}, got)
	})

	t.Run("year filtered first", func(t *testing.T) {
		got := CountByLocation(FilterByYear(readings, 2020), 39.5)
		assert.Equal(t, map[Location]int{{Lat: 14.0, Lon: 78.0}: 1}, got)
	})

	t.Run("zero counts are absent", func(t *testing.T) {
		got := CountByLocation(readings, 50)
		assert.Empty(t, got)
	})

	t.Run("sum equals threshold-only filter size", func(t *testing.T) {
		mixed := append(exampleReadings(t),
			reading(t, "2020-03-21", 14.25, 77.75, 43),
			reading(t, "2020-03-22", 14.25, 77.75, 38),
			reading(t, "2021-05-01", 13.75, 77.5, 39.5),
		)
		for _, threshold := range []float64{30, 39, 39.5, 40, 43, 44} {
			sum := 0
			for _, n := range CountByLocation(mixed, threshold) {
				sum += n
			}
			assert.Equal(t, len(FilterByThreshold(mixed, threshold)), sum, "threshold %v", threshold)
		}
	})
}

func TestCountByLocation_ExactCoordinateMatch(t *testing.T) {
	readings := []Reading{
		reading(t, "2020-03-20", 14.0, 78.0, 40),
		reading(t, "2020-03-21", 14.0000001, 78.0, 40),
		reading(t, "2020-03-22", 14.0, 78.0, 40),
	}

	got := CountByLocation(readings, 39)
	assert.Len(t, got, 2, "near-identical coordinates must not be merged")
	assert.Equal(t, 2, got[Location{Lat: 14.0, Lon: 78.0}])
	assert.Equal(t, 1, got[Location{Lat: 14.0000001, Lon: 78.0}])
}

func TestCountByLocationYear(t *testing.T) {
	got := CountByLocationYear(exampleReadings(t), 39.5)
	loc := Location{Lat: 14.0, Lon: 78.0}
	assert.Equal(t, map[GroupKey]int{
		{Location: loc, Year: 2020}: 1,
		{Location: loc, Year: 2021}: 1,
	}, got)
}

func TestCountByLocationYearPeriod(t *testing.T) {
	loc := Location{Lat: 14.0, Lon: 78.0}
	readings := []Reading{
		reading(t, "2020-03-14", 14.0, 78.0, 45), // before both windows
		reading(t, "2020-03-15", 14.0, 78.0, 45),
		reading(t, "2020-04-15", 14.0, 78.0, 45),
		reading(t, "2020-04-16", 14.0, 78.0, 45),
		reading(t, "2020-05-15", 14.0, 78.0, 45),
		reading(t, "2020-05-16", 14.0, 78.0, 45), // after both windows
		reading(t, "2020-04-01", 14.0, 78.0, 30), // below threshold
		reading(t, "2021-04-01", 14.0, 78.0, 41),
	}

	got := CountByLocationYearPeriod(readings, 40)
	assert.Equal(t, map[GroupKey]int{
		{Location: loc, Year: 2020, Period: PeriodMarApr}: 2,
		{Location: loc, Year: 2020, Period: PeriodAprMay}: 2,
		{Location: loc, Year: 2021, Period: PeriodMarApr}: 1,
	}, got)

	for k := range got {
		assert.NotEqual(t, PeriodNone, k.Period, "no-period readings must not form a bucket")
	}
}

func TestGroupKey_Column(t *testing.T) {
	k := GroupKey{Location: Location{Lat: 1, Lon: 2}, Year: 2020, Period: PeriodAprMay}
	assert.Equal(t, Column{Year: 2020, Period: PeriodAprMay}, k.Column())
}

func TestReading_YearUsesTimestamp(t *testing.T) {
	r := Reading{Time: time.Date(2019, time.December, 31, 23, 0, 0, 0, time.UTC)}
	assert.Equal(t, 2019, r.Year())
}
