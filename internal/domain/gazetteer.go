package domain

import "maps"

// Gazetteer maps exact grid coordinates to place names. A nil Gazetteer is
// valid and names nothing.
type Gazetteer map[Location]string

// Name returns the place name for loc, or "" when it is not listed.
func (g Gazetteer) Name(loc Location) string { return g[loc] }

// With returns a copy of g extended by extra. Entries in extra win.
func (g Gazetteer) With(extra map[Location]string) Gazetteer {
	out := make(Gazetteer, len(g)+len(extra))
	maps.Copy(out, g)
	maps.Copy(out, extra)
	return out
}

// defaultPlaces covers the quarter-degree grid cells of the Anantapur and
// Sri Satya Sai districts that contain a town.
var defaultPlaces = Gazetteer{
	{Lat: 15.25, Lon: 77.25}: "Guntakal",
	{Lat: 15.0, Lon: 78.0}:   "Tadipatri",
	{Lat: 14.75, Lon: 76.75}: "Rayadurg",
	{Lat: 14.75, Lon: 77.5}:  "Anantapur",
	{Lat: 14.5, Lon: 77.0}:   "Kalyandurg",
	{Lat: 14.5, Lon: 77.75}:  "Dharmavaram",
	{Lat: 14.25, Lon: 77.75}: "Puttaparthi",
	{Lat: 14.0, Lon: 77.5}:   "Penukonda",
	{Lat: 14.0, Lon: 78.0}:   "Kadiri",
	{Lat: 13.75, Lon: 77.5}:  "Hindupur",
	{Lat: 13.75, Lon: 77.0}:  "Madakasira",
}

// DefaultGazetteer returns a copy of the built-in district table.
func DefaultGazetteer() Gazetteer { return maps.Clone(defaultPlaces) }
