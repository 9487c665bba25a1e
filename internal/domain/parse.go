package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// timeLayouts are tried in order when normalizing the time column.
var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
}

// ParseRecord converts a raw CSV row into a Reading. Rows with an unparseable
// time, a missing value, or non-finite coordinates are rejected so the loader
// can skip and count them.
func ParseRecord(rec RawCSVRecord) (Reading, error) {
	t, err := parseTime(rec.Time)
	if err != nil {
		return Reading{}, err
	}
	lat, err := parseFinite("lat", rec.Lat)
	if err != nil {
		return Reading{}, err
	}
	lon, err := parseFinite("lon", rec.Lon)
	if err != nil {
		return Reading{}, err
	}
	tmax, err := parseFinite("tmax", rec.Tmax)
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		Time:     t,
		Location: Location{Lat: lat, Lon: lon},
		Tmax:     tmax,
	}, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("parse time: empty value")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse time: unrecognized format %q", s)
}

func parseFinite(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("parse %s: empty value", field)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse %s: non-finite value %q", field, s)
	}
	return v, nil
}
