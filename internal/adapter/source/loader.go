// Package source loads daily tmax readings from a CSV file on disk or at an
// HTTP(S) URL.
package source

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/tmax-hotdays-service/internal/domain"
)

// Loader reads the configured location into a fresh Dataset.
// It implements dashboard.Loader.
type Loader struct {
	location string
	fetcher  *Fetcher
	logger   *slog.Logger
}

// NewLoader creates a Loader. location is either an http(s) URL, fetched
// through fetcher, or a local file path.
func NewLoader(location string, fetcher *Fetcher, logger *slog.Logger) *Loader {
	return &Loader{location: location, fetcher: fetcher, logger: logger}
}

// Location returns the configured source location.
func (l *Loader) Location() string { return l.location }

// Load reads and decodes the source. Every failure is a *domain.LoadError.
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	r, closeFn, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	readings, skipped, err := Decode(l.location, r)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		l.logger.Warn("skipped malformed rows", "source", l.location, "skipped", skipped)
	}
	l.logger.Info("source loaded", "source", l.location, "readings", len(readings), "skipped", skipped)
	return domain.NewDataset(l.location, readings, skipped), nil
}

func (l *Loader) open(ctx context.Context) (io.Reader, func(), error) {
	if isRemote(l.location) {
		if l.fetcher == nil {
			return nil, nil, &domain.LoadError{Source: l.location, Reason: "no fetcher configured for remote source"}
		}
		body, err := l.fetcher.Fetch(ctx, l.location)
		if err != nil {
			return nil, nil, &domain.LoadError{Source: l.location, Reason: "fetch", Err: err}
		}
		return bytes.NewReader(body), func() {}, nil
	}

	f, err := os.Open(l.location)
	if err != nil {
		return nil, nil, &domain.LoadError{Source: l.location, Reason: "open", Err: err}
	}
	return f, func() { _ = f.Close() }, nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
