package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// RawCSVRecord is one source row before type conversion. Field values are
// kept as the loader read them.
type RawCSVRecord struct {
	Time string `json:"time"`
	Lat  string `json:"lat"`
	Lon  string `json:"lon"`
	Tmax string `json:"tmax"`
}

// Location is a grid cell identified by its exact coordinates.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String renders the location as "lat,lon" using the shortest exact
// representation of each coordinate.
func (l Location) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lon, 'f', -1, 64)
}

// Reading is a single daily maximum-temperature observation.
type Reading struct {
	Time time.Time `json:"time"`
	Location
	Tmax float64 `json:"tmax"`
}

// Year returns the calendar year of the reading.
func (r Reading) Year() int { return r.Time.Year() }

// Qualifies reports whether the reading meets the hot-day threshold.
func (r Reading) Qualifies(threshold float64) bool { return r.Tmax >= threshold }

// Dataset is one loaded snapshot of readings. It is never mutated after
// construction; a refresh builds a new Dataset with a new ID.
type Dataset struct {
	ID       uuid.UUID `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Readings []Reading `json:"-"`
	Skipped  int       `json:"skipped"`
	Names    Gazetteer `json:"-"`
}

// NewDataset stamps a set of readings with a fresh ID and the current time.
func NewDataset(source string, readings []Reading, skipped int) *Dataset {
	return &Dataset{
		ID:       uuid.New(),
		Source:   source,
		LoadedAt: clock.Now(),
		Readings: readings,
		Skipped:  skipped,
		Names:    DefaultGazetteer(),
	}
}

// Locations returns the distinct locations in first-seen order.
func (d *Dataset) Locations() []Location {
	seen := make(map[Location]struct{})
	out := make([]Location, 0)
	for _, r := range d.Readings {
		if _, ok := seen[r.Location]; ok {
			continue
		}
		seen[r.Location] = struct{}{}
		out = append(out, r.Location)
	}
	return out
}
