package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skyobs/metar-decoder/internal/config"
	"github.com/skyobs/metar-decoder/internal/metar"
	"github.com/skyobs/metar-decoder/internal/observability"
	"github.com/skyobs/metar-decoder/internal/pipeline"
	"github.com/skyobs/metar-decoder/internal/store"
)

const anchorDateLayout = "2006-01-02"

func main() {
	fileFormat := flag.String("file-format", string(pipeline.FormatNOAACycles),
		"input file format: noaa-metar-cycles or plain")
	anchorDate := flag.String("anchor-time", "",
		"anchor date (YYYY-MM-DD) used to resolve day-of-month times in plain files")
	prettyPrint := flag.Bool("pretty-print", false, "indent the output JSON")
	printReports := flag.Bool("print", false, "print colored report summaries to stdout")
	quiet := flag.Bool("quiet", false, "suppress logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: %s [flags] INPUT_GLOB... OUTPUT.json\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, *quiet)
	slog.SetDefault(logger)

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(2)
	}
	globs, output := args[:len(args)-1], args[len(args)-1]

	format, err := pipeline.ParseFormat(*fileFormat)
	if err != nil {
		logger.Error("invalid flag", "error", err)
		os.Exit(2)
	}

	var anchor *time.Time
	if *anchorDate != "" {
		parsed, err := time.Parse(anchorDateLayout, *anchorDate)
		if err != nil {
			logger.Error("invalid anchor date", "error", err)
			os.Exit(2)
		}
		anchor = &parsed
	}

	paths, err := expandGlobs(globs)
	if err != nil {
		logger.Error("expanding input globs", "error", err)
		os.Exit(1)
	}
	logger.Info("found input files", "count", len(paths))

	metrics := observability.NewMetrics()
	if cfg.MetricsAddr != "" {
		go serveMetrics(logger, cfg.MetricsAddr)
	}

	p := pipeline.New(logger, metrics, clockwork.NewRealClock(), cfg.Workers)
	reports, err := p.Run(context.Background(), paths, format, anchor)
	if err != nil {
		logger.Error("batch decode failed", "error", err)
		os.Exit(1)
	}

	if cfg.DatabaseURL != "" {
		if err := persistReports(cfg.DatabaseURL, logger, reports); err != nil {
			logger.Error("storing reports", "error", err)
			os.Exit(1)
		}
	}

	if *printReports {
		for _, rep := range reports {
			fmt.Println(FormatReport(rep))
		}
	}

	if err := writeOutput(output, reports, *prettyPrint); err != nil {
		logger.Error("writing output", "error", err)
		os.Exit(1)
	}
	logger.Info("wrote decoded reports", "path", output, "reports", len(reports))
}

// expandGlobs resolves the input globs to a sorted, deduplicated path list,
// so runs are deterministic regardless of argument order.
func expandGlobs(globs []string) ([]string, error) {
	set := make(map[string]struct{})
	for _, g := range globs {
		matches, err := filepath.Glob(g)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", g, err)
		}
		for _, m := range matches {
			set[m] = struct{}{}
		}
	}
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths, nil
}

func serveMetrics(logger *slog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics endpoint failed", "error", err)
	}
}

func persistReports(databaseURL string, logger *slog.Logger, reports []*metar.Report) error {
	st, err := store.Open(databaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	inserted, err := st.Save(context.Background(), reports)
	if err != nil {
		return err
	}
	logger.Info("stored reports", "inserted", inserted, "total", len(reports))
	return nil
}

func writeOutput(path string, reports []*metar.Report, pretty bool) error {
	if reports == nil {
		reports = []*metar.Report{}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(reports); err != nil {
		return err
	}
	return f.Close()
}
