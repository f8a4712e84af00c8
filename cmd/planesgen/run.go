package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/elektrokombinacija/planes-gen/internal/catalog"
	"github.com/elektrokombinacija/planes-gen/internal/config"
	"github.com/elektrokombinacija/planes-gen/internal/core"
	"github.com/elektrokombinacija/planes-gen/internal/gen"
	"github.com/elektrokombinacija/planes-gen/internal/observability"
)

// generation is one assembled and encoded problem.
type generation struct {
	params  gen.Params
	problem *core.Problem
	data    []byte
	elapsed time.Duration
}

// generate assembles one problem. diag receives the histogram when non-nil.
func generate(cfg *config.Config, logger *slog.Logger, metrics *observability.GenerationCollector, diag io.Writer) (*generation, error) {
	params := cfg.Params()

	opts := []gen.Option{gen.WithLogger(logger)}
	if metrics != nil {
		opts = append(opts, gen.WithObserver(metrics))
	}
	if diag != nil && cfg.Histogram.Enabled {
		opts = append(opts, gen.WithHistogram(diag, cfg.Histogram.Bins, cfg.Histogram.Divisor))
	}

	a, err := gen.NewAssembler(params, opts...)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	problem, err := a.Assemble()
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	var buf bytes.Buffer
	if err := problem.Encode(&buf, cfg.Output.Indent); err != nil {
		return nil, err
	}

	if metrics != nil {
		metrics.ObserveGeneration(elapsed.Seconds())
		metrics.SetEntities(problem)
	}
	logger.Debug("problem encoded", "bytes", buf.Len(), "elapsed", elapsed)

	return &generation{params: params, problem: problem, data: buf.Bytes(), elapsed: elapsed}, nil
}

// run returns the catalog entry describing g written to output.
func (g *generation) run(output string) *catalog.Run {
	return &catalog.Run{
		Seed:     g.params.Seed,
		Duration: g.params.Duration,
		Width:    g.params.Width,
		Height:   g.params.Height,
		Planes:   g.params.Planes,
		Tasks:    g.params.Tasks,
		Stations: g.params.Stations,
		Crises:   g.params.Crises,
		Output:   output,
		Digest:   catalog.Digest(g.data),
	}
}

// isStdout reports whether path selects standard output.
func isStdout(path string) bool {
	return path == "" || path == "-"
}

// writeFileAtomic writes data through a temp file in the target directory and
// renames it into place, so a failed write leaves no partial file.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".planesgen-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

// recordRuns stores runs in the catalog at path. An empty path is a no-op.
func recordRuns(ctx context.Context, path string, logger *slog.Logger, runs ...*catalog.Run) error {
	if path == "" {
		return nil
	}
	c, err := catalog.Open(ctx, path)
	if err != nil {
		return err
	}
	defer c.Close()

	for _, r := range runs {
		if err := c.Record(ctx, r); err != nil {
			return err
		}
		logger.Debug("run recorded", "id", r.ID, "digest", r.Digest)
	}
	return nil
}

// newMetrics returns a collector on a private registry.
func newMetrics() (*observability.GenerationCollector, error) {
	return observability.NewGenerationCollector(prometheus.NewRegistry())
}
