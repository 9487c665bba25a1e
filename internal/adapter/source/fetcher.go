package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// HTTPClient is the subset of *http.Client the fetcher uses.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FetchConfig tunes retries and the circuit breaker around remote reads.
type FetchConfig struct {
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	BreakerTimeout time.Duration
}

// errClientStatus marks a 4xx response that retrying cannot fix.
var errClientStatus = errors.New("client error status")

// Fetcher downloads source files over HTTP with retries behind a circuit
// breaker, so a dead upstream fails fast on later refreshes.
type Fetcher struct {
	client     HTTPClient
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher with its own HTTP client and breaker.
func NewFetcher(cfg FetchConfig, logger *slog.Logger) *Fetcher {
	return newFetcher(&http.Client{Timeout: cfg.Timeout}, cfg, logger)
}

func newFetcher(client HTTPClient, cfg FetchConfig, logger *slog.Logger) *Fetcher {
	settings := gobreaker.Settings{
		Name:        "source",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
	return &Fetcher{
		client:     client,
		breaker:    gobreaker.NewCircuitBreaker(settings),
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}
}

// Fetch returns the body of url. Network errors, 5xx and 429 responses are
// retried with exponential backoff; other 4xx responses fail immediately.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := f.breaker.Execute(func() (interface{}, error) {
		return f.fetchWithRetry(ctx, url)
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (f *Fetcher) fetchWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	delay := f.retryDelay

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			f.logger.Debug("retrying source fetch", "url", url, "attempt", attempt, "delay", delay)
			if !sleepWithContext(ctx, delay) {
				return nil, ctx.Err()
			}
			delay *= 2
		}

		body, err := f.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if errors.Is(err, errClientStatus) || ctx.Err() != nil {
			break
		}
		f.logger.Warn("source fetch failed", "url", url, "attempt", attempt, "error", err)
	}

	return nil, fmt.Errorf("fetch %s: %w", url, lastErr)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: HTTP %d", errClientStatus, resp.StatusCode)
		}
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
