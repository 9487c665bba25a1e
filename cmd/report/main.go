// Command report loads a tmax CSV from a file or URL and prints the hot-day
// markers for one year together with the multi-year pivot tables.
//
// Usage:
//
//	go run ./cmd/report \
//	  -source data/sample/anantapur_tmax.csv \
//	  -year 2024 -threshold 40 [-seasonal] [-json]
//
// Omitting -year selects the most recent year in the data. Invalid selections
// exit with status 2, load failures with status 1.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/couchcryptid/tmax-hotdays-service/internal/adapter/source"
	"github.com/couchcryptid/tmax-hotdays-service/internal/config"
	"github.com/couchcryptid/tmax-hotdays-service/internal/dashboard"
	"github.com/couchcryptid/tmax-hotdays-service/internal/domain"
	"github.com/couchcryptid/tmax-hotdays-service/internal/observability"
)

type options struct {
	source    string
	year      int
	threshold float64
	seasonal  bool
	json      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.source, "source", config.DefaultSourceURL, "CSV file path or http(s) URL")
	flag.IntVar(&opts.year, "year", 0, "year to map (default: most recent year in the data)")
	flag.Float64Var(&opts.threshold, "threshold", 40, "hot-day threshold in °C (inclusive)")
	flag.BoolVar(&opts.seasonal, "seasonal", false, "also print the seasonal (15 Mar–15 May) pivot")
	flag.BoolVar(&opts.json, "json", false, "print the full result as JSON")
	flag.Parse()

	os.Exit(run(context.Background(), opts, os.Stdout, os.Stderr))
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) int {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	fetcher := source.NewFetcher(source.FetchConfig{
		Timeout:        30 * time.Second,
		MaxRetries:     2,
		RetryDelay:     500 * time.Millisecond,
		BreakerTimeout: time.Minute,
	}, logger)
	loader := source.NewLoader(opts.source, fetcher, logger)

	svc := dashboard.New(loader, nil, nil, dashboard.Options{}, logger, observability.NewMetricsForTesting())
	if err := svc.Refresh(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if opts.year == 0 {
		years, _ := svc.Years()
		if len(years) == 0 {
			fmt.Fprintln(stderr, "error: source contains no readings")
			return 1
		}
		opts.year = years[0]
	}

	res, err := svc.Compute(domain.Selection{Year: opts.year, Threshold: opts.threshold})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if errors.Is(err, domain.ErrInvalidParameter) {
			return 2
		}
		return 1
	}

	if opts.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	ds := svc.Dataset()
	fmt.Fprintf(stdout, "source: %s (%d readings, %d skipped)\n", ds.Source, len(ds.Readings), ds.Skipped)
	fmt.Fprintf(stdout, "threshold range for %d: %.1f to %.1f °C\n\n", opts.year, res.Bounds.Min, res.Bounds.Max)

	fmt.Fprintf(stdout, "Days with tmax >= %g in %d\n", opts.threshold, opts.year)
	printMarkers(stdout, res.Markers)

	fmt.Fprintf(stdout, "\nHot days per year\n")
	printPivot(stdout, res.ByYear)

	if opts.seasonal {
		fmt.Fprintf(stdout, "\nHot days per season\n")
		printPivot(stdout, res.Seasonal)
	}
	return 0
}

func printMarkers(w io.Writer, markers []domain.Marker) {
	if len(markers) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LOCATION\tNAME\tDAYS\tMAX TMAX")
	for _, m := range markers {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\n", m.Location, placeName(m.Name), m.Days, m.MaxTmax)
	}
	_ = tw.Flush()
}

func printPivot(w io.Writer, table domain.PivotTable) {
	if len(table.Rows) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "LOCATION\tNAME\t")
	for _, c := range table.Columns {
		fmt.Fprintf(tw, "%s\t", c.Label())
	}
	fmt.Fprintln(tw, "TOTAL\t")
	for _, row := range table.Rows {
		fmt.Fprintf(tw, "%s\t%s\t", row.Location, placeName(row.Name))
		for _, n := range row.Counts {
			fmt.Fprintf(tw, "%s\t", strconv.Itoa(n))
		}
		fmt.Fprintf(tw, "%d\t\n", row.Total())
	}
	_ = tw.Flush()
}

func placeName(name string) string {
	if name == "" {
		return "-"
	}
	return name
}
