package domain

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// reading builds a Reading from an ISO date.
func reading(t *testing.T, date string, lat, lon, tmax float64) Reading {
	t.Helper()
	ts, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	return Reading{Time: ts, Location: Location{Lat: lat, Lon: lon}, Tmax: tmax}
}

// exampleReadings is the three-row fixture used throughout the package tests.
func exampleReadings(t *testing.T) []Reading {
	t.Helper()
	return []Reading{
		reading(t, "2020-03-20", 14.0, 78.0, 40),
		reading(t, "2020-04-10", 14.0, 78.0, 39),
		reading(t, "2021-03-20", 14.0, 78.0, 41),
	}
}
