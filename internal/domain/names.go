package domain

import (
	"context"
	"log/slog"
)

// GeocodingResult contains place data returned by a geocoding provider.
type GeocodingResult struct {
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// NameResolver turns coordinates into place details.
type NameResolver interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}

// ResolveNames fills in names for locations missing from base by asking the
// resolver. Lookups that fail or come back empty leave the location unnamed
// (graceful degradation). A nil resolver returns base unchanged.
func ResolveNames(ctx context.Context, locations []Location, base Gazetteer, resolver NameResolver, logger *slog.Logger) Gazetteer {
	if resolver == nil {
		return base
	}

	found := make(map[Location]string)
	for _, loc := range locations {
		if base.Name(loc) != "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		result, err := resolver.ReverseGeocode(ctx, loc.Lat, loc.Lon)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"lat", loc.Lat,
				"lon", loc.Lon,
				"error", err,
			)
			continue
		}
		if result.PlaceName != "" {
			found[loc] = result.PlaceName
		}
	}

	if len(found) == 0 {
		return base
	}
	return base.With(found)
}
