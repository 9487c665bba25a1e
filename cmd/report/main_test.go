package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/tmax-hotdays-service/internal/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePath = filepath.Join("..", "..", "data", "sample", "anantapur_tmax.csv")

func TestRun_Text(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), options{source: samplePath, threshold: 40, seasonal: true}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "228 readings, 0 skipped")
	assert.Contains(t, out, "Days with tmax >= 40 in 2024")
	assert.Contains(t, out, "Kadiri")
	assert.Contains(t, out, "Hot days per season")
	assert.Contains(t, out, "2024 15 Mar–15 Apr")
}

func TestRun_JSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), options{source: samplePath, year: 2023, threshold: 40, json: true}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var res dashboard.Result
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	assert.Equal(t, 2023, res.Selection.Year)
	assert.Len(t, res.Markers, 3)
}

func TestRun_InvalidSelectionExits2(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), options{source: samplePath, year: 3000, threshold: 40}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "invalid parameter")
}

func TestRun_MissingSourceExits1(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), options{source: filepath.Join(t.TempDir(), "absent.csv"), threshold: 40}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "open")
}
