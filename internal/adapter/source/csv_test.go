package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/tmax-hotdays-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleName = "test.csv"

func TestParseCSV(t *testing.T) {
	t.Run("header driven with extra columns", func(t *testing.T) {
		in := "station,TMAX,lon,lat,time\n" +
			"a,40.5,78.0,14.0,2020-03-20\n" +
			"b,39,77.5,13.75,2020-03-21\n"

		records, skipped, err := ParseCSV(sampleName, strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, 0, skipped)
		assert.Equal(t, []domain.RawCSVRecord{
			{Time: "2020-03-20", Lat: "14.0", Lon: "78.0", Tmax: "40.5"},
			{Time: "2020-03-21", Lat: "13.75", Lon: "77.5", Tmax: "39"},
		}, records)
	})

	t.Run("ragged rows are skipped", func(t *testing.T) {
		in := "time,lat,lon,tmax\n" +
			"2020-03-20,14.0,78.0,40\n" +
			"2020-03-21,14.0,78.0\n" +
			"2020-03-22,14.0,78.0,41,extra\n" +
			"2020-03-23,14.0,78.0,42\n"

		records, skipped, err := ParseCSV(sampleName, strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, 2, skipped)
		assert.Len(t, records, 2)
	})

	t.Run("byte order mark in header", func(t *testing.T) {
		in := "\ufefftime,lat,lon,tmax\n2020-03-20,14.0,78.0,40\n"
		records, _, err := ParseCSV(sampleName, strings.NewReader(in))
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("missing time column", func(t *testing.T) {
		in := "date,lat,lon,tmax\n2020-03-20,14.0,78.0,40\n"
		_, _, err := ParseCSV(sampleName, strings.NewReader(in))

		var loadErr *domain.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, sampleName, loadErr.Source)
		assert.Contains(t, err.Error(), `column "time" not found`)
	})

	t.Run("empty file", func(t *testing.T) {
		_, _, err := ParseCSV(sampleName, strings.NewReader(""))

		var loadErr *domain.LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "empty file", loadErr.Reason)
	})
}

func TestDecode(t *testing.T) {
	in := "time,lat,lon,tmax\n" +
		"2020-03-20,14.0,78.0,40\n" +
		"not-a-date,14.0,78.0,40\n" +
		"2020-03-21,14.0,78.0,\n" +
		"2021-03-20,14.0,78.0,41\n"

	readings, skipped, err := Decode(sampleName, strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, readings, 2)
	assert.Equal(t, 2020, readings[0].Year())
	assert.Equal(t, 2021, readings[1].Year())
}

func TestDecode_SampleDataset(t *testing.T) {
	f, err := os.Open(samplePath())
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	readings, skipped, err := Decode(sampleName, f)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	assert.Len(t, readings, 228)
	assert.Equal(t, []int{2024, 2023, 2022}, domain.Years(readings))

	counts := domain.CountByLocation(readings, 40)
	assert.Equal(t, map[domain.Location]int{
		{Lat: 14.0, Lon: 78.0}:  25,
		{Lat: 13.75, Lon: 77.5}: 14,
		{Lat: 14.75, Lon: 77.5}: 10,
	}, counts)
}

func samplePath() string {
	return filepath.Join("..", "..", "..", "data", "sample", "anantapur_tmax.csv")
}
