package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/tmax-hotdays-service/internal/domain"
)

// Column names the source must provide. Matching is case-insensitive.
const (
	colTime = "time"
	colLat  = "lat"
	colLon  = "lon"
	colTmax = "tmax"
)

// ParseCSV reads a header-driven CSV of daily readings. Rows with the wrong
// number of fields are skipped and counted rather than failing the whole
// file. A missing required column is a *domain.LoadError.
func ParseCSV(name string, r io.Reader) ([]domain.RawCSVRecord, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, &domain.LoadError{Source: name, Reason: "empty file"}
	}
	if err != nil {
		return nil, 0, &domain.LoadError{Source: name, Reason: "read header", Err: err}
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, 0, &domain.LoadError{Source: name, Reason: err.Error()}
	}

	var (
		records []domain.RawCSVRecord //nolint:prealloc // size depends on file contents
		skipped int
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, 0, &domain.LoadError{Source: name, Reason: "read row", Err: err}
		}
		if len(row) != len(header) {
			skipped++
			continue
		}
		records = append(records, domain.RawCSVRecord{
			Time: row[idx[colTime]],
			Lat:  row[idx[colLat]],
			Lon:  row[idx[colLon]],
			Tmax: row[idx[colTmax]],
		})
	}
	return records, skipped, nil
}

// columnIndex locates the required columns in the header row.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, 4)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	for _, col := range []string{colTime, colLat, colLon, colTmax} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("column %q not found", col)
		}
	}
	return idx, nil
}

// Decode parses a CSV source into readings. Rows that fail type conversion are
// skipped and added to the skipped count.
func Decode(name string, r io.Reader) ([]domain.Reading, int, error) {
	records, skipped, err := ParseCSV(name, r)
	if err != nil {
		return nil, 0, err
	}
	readings := make([]domain.Reading, 0, len(records))
	for _, rec := range records {
		reading, err := domain.ParseRecord(rec)
		if err != nil {
			skipped++
			continue
		}
		readings = append(readings, reading)
	}
	return readings, skipped, nil
}
