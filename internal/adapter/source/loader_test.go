package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/tmax-hotdays-service/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LocalFile(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	l := NewLoader(samplePath(), nil, discardLogger())
	ds, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, ds.Readings, 228)
	assert.Equal(t, samplePath(), ds.Source)
	assert.Equal(t, fakeClock.Now(), ds.LoadedAt)
	assert.Equal(t, 0, ds.Skipped)
}

func TestLoader_Remote(t *testing.T) {
	data, err := os.ReadFile(samplePath())
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	l := NewLoader(srv.URL+"/anantapur_tmax.csv", testFetcher(0), discardLogger())
	ds, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Readings, 228)
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	noTime := filepath.Join(dir, "no_time.csv")
	require.NoError(t, os.WriteFile(noTime, []byte("lat,lon,tmax\n14,78,40\n"), 0o600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	tests := []struct {
		name   string
		loader *Loader
		reason string
	}{
		{"missing file", NewLoader(filepath.Join(dir, "absent.csv"), nil, discardLogger()), "open"},
		{"missing time column", NewLoader(noTime, nil, discardLogger()), `column "time" not found`},
		{"remote without fetcher", NewLoader("https://example.invalid/x.csv", nil, discardLogger()), "no fetcher configured for remote source"},
		{"remote failure", NewLoader(srv.URL, testFetcher(0), discardLogger()), "fetch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.loader.Load(context.Background())
			var loadErr *domain.LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tt.reason, loadErr.Reason)
		})
	}
}

func TestIsRemote(t *testing.T) {
	assert.True(t, isRemote("https://raw.githubusercontent.com/x.csv"))
	assert.True(t, isRemote("HTTP://host/x.csv"))
	assert.False(t, isRemote("data/sample/anantapur_tmax.csv"))
}
