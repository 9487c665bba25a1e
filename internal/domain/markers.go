package domain

// Marker is one map annotation: a location with its hot-day count.
type Marker struct {
	Location
	Name    string  `json:"name,omitempty"`
	Days    int     `json:"days"`
	MaxTmax float64 `json:"max_tmax"`
}

// Markers builds the map layer from year-filtered readings and their counts:
// one marker per location in first-seen order, carrying the hottest reading
// among the filtered rows. A location missing from counts gets zero days.
func Markers(filtered []Reading, counts map[Location]int, names Gazetteer) []Marker {
	markers := make([]Marker, 0)
	index := make(map[Location]int)
	for _, r := range filtered {
		if i, ok := index[r.Location]; ok {
			markers[i].MaxTmax = max(markers[i].MaxTmax, r.Tmax)
			continue
		}
		index[r.Location] = len(markers)
		markers = append(markers, Marker{
			Location: r.Location,
			Name:     names.Name(r.Location),
			Days:     counts[r.Location],
			MaxTmax:  r.Tmax,
		})
	}
	return markers
}
