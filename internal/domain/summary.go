package domain

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// HotDaySummary is the per-location, per-year count published after each
// refresh at the alert threshold.
type HotDaySummary struct {
	DatasetID uuid.UUID `json:"dataset_id"`
	Location
	Name      string  `json:"name,omitempty"`
	Year      int     `json:"year"`
	Threshold float64 `json:"threshold"`
	Days      int     `json:"days"`
	MaxTmax   float64 `json:"max_tmax"`
}

// Summaries counts qualifying days per location and year across the whole
// dataset. Only location-years with at least one hot day are returned,
// ordered by location and then year descending.
func Summaries(ds *Dataset, threshold float64) []HotDaySummary {
	counts := CountByLocationYear(ds.Readings, threshold)

	hottest := make(map[GroupKey]float64, len(counts))
	for _, r := range ds.Readings {
		k := GroupKey{Location: r.Location, Year: r.Year()}
		if _, ok := counts[k]; !ok {
			continue
		}
		if v, seen := hottest[k]; !seen || r.Tmax > v {
			hottest[k] = r.Tmax
		}
	}

	out := make([]HotDaySummary, 0, len(counts))
	for k, n := range counts {
		out = append(out, HotDaySummary{
			DatasetID: ds.ID,
			Location:  k.Location,
			Name:      ds.Names.Name(k.Location),
			Year:      k.Year,
			Threshold: threshold,
			Days:      n,
			MaxTmax:   hottest[k],
		})
	}
	slices.SortFunc(out, func(a, b HotDaySummary) int {
		if c := compareLocations(a.Location, b.Location); c != 0 {
			return c
		}
		return cmp.Compare(b.Year, a.Year)
	})
	return out
}
