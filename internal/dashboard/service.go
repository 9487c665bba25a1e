// Package dashboard keeps the current dataset fresh and answers selection
// queries against it.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/tmax-hotdays-service/internal/domain"
	"github.com/couchcryptid/tmax-hotdays-service/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
)

// ErrNotReady is returned by queries issued before the first successful load.
var ErrNotReady = errors.New("dataset not loaded yet")

// Loader produces a fresh dataset from the configured source.
type Loader interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// Publisher forwards hot-day summaries to downstream consumers.
type Publisher interface {
	PublishSummaries(ctx context.Context, summaries []domain.HotDaySummary) error
}

// Options tunes refresh behaviour.
type Options struct {
	AlertThreshold  float64
	RefreshSchedule string
	Clock           clockwork.Clock
}

// Result is everything the dashboard renders for one selection.
type Result struct {
	DatasetID uuid.UUID         `json:"dataset_id"`
	Selection domain.Selection  `json:"selection"`
	Markers   []domain.Marker   `json:"markers"`
	ByYear    domain.PivotTable `json:"by_year"`
	Seasonal  domain.PivotTable `json:"seasonal"`
	Bounds    domain.Bounds     `json:"bounds"`
}

// Service owns the current dataset. Queries read an immutable snapshot, so
// they never block on a refresh in progress.
type Service struct {
	loader    Loader
	resolver  domain.NameResolver
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	opts      Options

	dataset   atomic.Pointer[domain.Dataset]
	refreshMu sync.Mutex
}

// New creates a Service. resolver and publisher are optional.
func New(loader Loader, resolver domain.NameResolver, publisher Publisher, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Service{
		loader:    loader,
		resolver:  resolver,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		opts:      opts,
	}
}

// Dataset returns the current snapshot, or nil before the first load.
func (s *Service) Dataset() *domain.Dataset {
	return s.dataset.Load()
}

// CheckReadiness returns nil once a dataset has been loaded.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.dataset.Load() == nil {
		return ErrNotReady
	}
	return nil
}

// Refresh loads a new dataset and swaps it in. On failure the previous
// dataset stays current. Summary publication errors are logged but do not
// fail the refresh.
func (s *Service) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := s.opts.Clock.Now()

	ds, err := s.loader.Load(ctx)
	if err != nil {
		s.metrics.RefreshFailures.Inc()
		return fmt.Errorf("refresh: %w", err)
	}

	ds.Names = domain.ResolveNames(ctx, ds.Locations(), ds.Names, s.resolver, s.logger)
	s.dataset.Store(ds)

	s.metrics.Refreshes.Inc()
	s.metrics.ReadingsLoaded.Set(float64(len(ds.Readings)))
	s.metrics.ReadingsSkipped.Set(float64(ds.Skipped))
	s.metrics.DatasetLoadedAt.Set(float64(ds.LoadedAt.Unix()))

	s.logger.Info("dataset refreshed",
		"dataset_id", ds.ID,
		"readings", len(ds.Readings),
		"skipped", ds.Skipped,
		"locations", len(ds.Locations()),
	)

	s.publish(ctx, ds)
	s.metrics.RefreshDuration.Observe(s.opts.Clock.Since(start).Seconds())
	return nil
}

func (s *Service) publish(ctx context.Context, ds *domain.Dataset) {
	if s.publisher == nil {
		return
	}
	summaries := domain.Summaries(ds, s.opts.AlertThreshold)
	if len(summaries) == 0 {
		return
	}
	if err := s.publisher.PublishSummaries(ctx, summaries); err != nil {
		s.logger.Error("publish summaries failed", "error", err, "count", len(summaries))
		return
	}
	s.metrics.SummariesPublished.Add(float64(len(summaries)))
}

// Run performs the initial load, retrying with exponential backoff, and then
// refreshes on the configured cron schedule until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("dashboard service started", "schedule", s.opts.RefreshSchedule)

	if !s.initialLoad(ctx) {
		s.logger.Info("dashboard service stopping", "reason", ctx.Err())
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(s.opts.RefreshSchedule, func() {
		if err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("scheduled refresh failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule refresh %q: %w", s.opts.RefreshSchedule, err)
	}
	c.Start()

	<-ctx.Done()
	s.logger.Info("dashboard service stopping", "reason", ctx.Err())
	<-c.Stop().Done()
	return nil
}

// initialLoad retries Refresh until it succeeds. Returns false if ctx ends first.
func (s *Service) initialLoad(ctx context.Context) bool {
	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		err := s.Refresh(ctx)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		s.logger.Error("initial load failed", "error", err, "retry_in", backoff)
		if !sleepWithContext(ctx, s.opts.Clock, backoff) {
			return false
		}
		backoff = nextBackoff(backoff, maxBackoff)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
