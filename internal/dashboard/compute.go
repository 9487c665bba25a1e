package dashboard

import (
	"fmt"
	"math"

	"github.com/couchcryptid/tmax-hotdays-service/internal/domain"
)

// Compute evaluates a selection against the current dataset: the map markers
// for the selected year and both pivot tables at the selected threshold.
// The pivots span every year, since the threshold applies independently of
// the year filter.
func (s *Service) Compute(sel domain.Selection) (Result, error) {
	if err := sel.Validate(); err != nil {
		return Result{}, err
	}
	ds := s.dataset.Load()
	if ds == nil {
		return Result{}, ErrNotReady
	}

	start := s.opts.Clock.Now()
	defer func() {
		s.metrics.ComputeDuration.Observe(s.opts.Clock.Since(start).Seconds())
	}()

	filtered := domain.Filter(ds.Readings, sel.Year, sel.Threshold)
	counts := domain.CountByLocation(filtered, sel.Threshold)
	bounds, _ := domain.ThresholdBounds(ds.Readings, sel.Year)

	return Result{
		DatasetID: ds.ID,
		Selection: sel,
		Markers:   domain.Markers(filtered, counts, ds.Names),
		ByYear:    pivot(ds, sel.Threshold, false),
		Seasonal:  pivot(ds, sel.Threshold, true),
		Bounds:    bounds,
	}, nil
}

// Pivot builds a single pivot table at threshold across all years.
func (s *Service) Pivot(threshold float64, seasonal bool) (domain.PivotTable, error) {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return domain.PivotTable{}, fmt.Errorf("%w: threshold must be a finite number", domain.ErrInvalidParameter)
	}
	ds := s.dataset.Load()
	if ds == nil {
		return domain.PivotTable{}, ErrNotReady
	}
	return pivot(ds, threshold, seasonal), nil
}

// Years lists the years present in the current dataset, newest first.
func (s *Service) Years() ([]int, error) {
	ds := s.dataset.Load()
	if ds == nil {
		return nil, ErrNotReady
	}
	return domain.Years(ds.Readings), nil
}

// Bounds returns the threshold range to offer for year. An empty dataset
// yields zero bounds.
func (s *Service) Bounds(year int) (domain.Bounds, error) {
	ds := s.dataset.Load()
	if ds == nil {
		return domain.Bounds{}, ErrNotReady
	}
	b, _ := domain.ThresholdBounds(ds.Readings, year)
	return b, nil
}

func pivot(ds *domain.Dataset, threshold float64, seasonal bool) domain.PivotTable {
	var counts map[domain.GroupKey]int
	if seasonal {
		counts = domain.CountByLocationYearPeriod(ds.Readings, threshold)
	} else {
		counts = domain.CountByLocationYear(ds.Readings, threshold)
	}
	return domain.Pivot(counts, domain.ColumnUniverse(counts, seasonal), ds.Names)
}
