package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/skyobs/metar-decoder/internal/metar"
	"github.com/skyobs/metar-decoder/internal/observability"
)

// Pipeline decodes batches of METAR files into reports.
type Pipeline struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	workers int
}

// New builds a pipeline decoding up to workers files in parallel.
func New(logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{logger: logger, metrics: metrics, clock: clock, workers: workers}
}

// Run reads and decodes every input file, then merges the per-file results
// in input order, dropping raw-text duplicates (first occurrence wins).
// Reports whose station id cannot be located are skipped with a warning;
// unreadable files fail the whole run.
//
// Files decode in parallel. That is safe because decoding is a pure function
// of the raw text and the anchor, and the merge preserves input order.
func (p *Pipeline) Run(ctx context.Context, paths []string, format Format, anchor *time.Time) ([]*metar.Report, error) {
	start := p.clock.Now()

	perFile := make([][]*metar.Report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for idx, path := range paths {
		idx, path := idx, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports, err := p.decodeFile(path, format, anchor)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", path, err)
			}
			perFile[idx] = reports
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var merged []*metar.Report
	for _, reports := range perFile {
		for _, rep := range reports {
			if _, dup := seen[rep.Report]; dup {
				p.metrics.ReportsDeduplicated.Inc()
				continue
			}
			seen[rep.Report] = struct{}{}
			merged = append(merged, rep)
		}
	}

	p.metrics.BatchDuration.Observe(p.clock.Since(start).Seconds())
	p.logger.Info("batch decode complete",
		"files", len(paths), "reports", len(merged), "duration", p.clock.Since(start))
	return merged, nil
}

func (p *Pipeline) decodeFile(path string, format Format, anchor *time.Time) ([]*metar.Report, error) {
	var raws []RawReport
	var err error
	switch format {
	case FormatNOAACycles:
		raws, err = ReadCycleFile(path)
	case FormatPlain:
		raws, err = ReadPlainFile(path, anchor)
	default:
		return nil, fmt.Errorf("unknown file format %q", format)
	}
	if err != nil {
		return nil, err
	}
	p.metrics.FilesProcessed.Inc()

	reports := make([]*metar.Report, 0, len(raws))
	for _, raw := range raws {
		decoder := metar.Decoder{Anchor: raw.Anchor, Logger: p.logger}
		rep, err := decoder.Decode(raw.Text)
		if err != nil {
			p.logger.Warn("skipping undecodable report", "file", path, "error", err)
			p.metrics.DecodeFailures.Inc()
			continue
		}
		p.metrics.ReportsDecoded.Inc()
		reports = append(reports, rep)
	}
	return reports, nil
}
