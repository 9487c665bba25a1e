// Package domain models daily maximum-temperature (tmax) readings and the
// hot-day statistics derived from them.
//
// # Data Source
//
// Readings come from a gridded daily tmax series for the Anantapur and
// Sri Satya Sai districts, published as a CSV file. Each row is one grid
// cell on one day:
//
//	time,lat,lon,tmax
//	2020-03-20,14.0,78.0,40.1
//
// The time column is a calendar date, optionally with a time-of-day or an
// RFC 3339 offset. Latitude and longitude are decimal degrees (WGS-84) and
// tmax is degrees Celsius. Extra columns are ignored.
//
// # Locations
//
// A location is the exact (lat, lon) pair as written in the source. There is
// no spatial tolerance or binning: two readings belong to the same location
// only when both coordinates are equal as float64 values. Human-readable
// names come from a fixed [Gazetteer] keyed the same way.
//
// # Hot Days
//
// A reading qualifies when tmax >= threshold (inclusive). Counts are always
// computed from the threshold alone; restricting to a single year is the
// caller's choice, made by passing year-filtered readings (see [Filter]).
//
// # Seasonal Periods
//
// Pre-monsoon heat is reported in two windows derived from the reading's
// month and day:
//
//	15 Mar–15 Apr   (March 15 through April 15)
//	16 Apr–15 May   (April 16 through May 15)
//
// Readings outside both windows have no period and are left out of
// period-grouped counts entirely. See [PeriodOf].
//
// # Pivot Tables
//
// [Pivot] reshapes grouped counts into one row per location and one column
// per (year[, period]) combination. Columns run from the most recent year
// down, periods in the order above, and missing cells are zero.
package domain
