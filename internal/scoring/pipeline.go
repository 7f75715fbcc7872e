package scoring

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mohamedkhairy/stock-screener/internal/models"
	"github.com/mohamedkhairy/stock-screener/pkg/indicator"
	"github.com/mohamedkhairy/stock-screener/pkg/logger"
)

// Failure records one asset that could not be scored
type Failure struct {
	Symbol string `json:"symbol"`
	Err    error  `json:"-"`
	Reason string `json:"reason"`
}

// Result is the outcome of one scoring run. Scored order is completion
// order; callers needing a stable order sort explicitly (see
// internal/ranking).
type Result struct {
	RunID    string        `json:"run_id"`
	Scored   []*Asset      `json:"scored"`
	Failures []Failure     `json:"failures"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Pipeline fans one indicator set out over many assets. Each asset is
// evaluated at most once per call, on its own worker, against its own
// exclusively owned series; the collected result slices are the only
// shared state and are written from the single collector goroutine.
type Pipeline struct {
	workers int
}

// NewPipeline creates a pipeline with a bounded worker pool. A
// non-positive worker count falls back to GOMAXPROCS.
func NewPipeline(workers int) *Pipeline {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pipeline{workers: workers}
}

// Workers returns the configured parallelism
func (p *Pipeline) Workers() int {
	return p.workers
}

// ScoreAll applies the indicator set to every asset in parallel. One
// asset's failure is recorded and does not abort the others. If the
// context is cancelled mid-run the whole call's results are discarded
// and the context error is returned.
func (p *Pipeline) ScoreAll(ctx context.Context, assets []*Asset, indicators []indicator.Indicator) (Result, error) {
	runID := uuid.New().String()
	start := time.Now()

	type outcome struct {
		asset *Asset
		err   error
	}

	jobs := make(chan *Asset)
	outcomes := make(chan outcome)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for asset := range jobs {
				if ctx.Err() != nil {
					return
				}
				err := asset.ApplyIndicators(indicators)
				select {
				case outcomes <- outcome{asset: asset, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, asset := range assets {
			select {
			case jobs <- asset:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	result := Result{RunID: runID}
	for oc := range outcomes {
		if oc.err != nil {
			reason := failureReason(oc.err)
			result.Failures = append(result.Failures, Failure{
				Symbol: oc.asset.Symbol,
				Err:    oc.err,
				Reason: oc.err.Error(),
			})
			logger.AssetFailuresTotal.WithLabelValues(reason).Inc()
			logger.Warn("asset scoring failed",
				logger.String("run_id", runID),
				logger.String("symbol", oc.asset.Symbol),
				logger.ErrorField(oc.err),
			)
			continue
		}
		result.Scored = append(result.Scored, oc.asset)
	}

	if err := ctx.Err(); err != nil {
		logger.Warn("scoring run cancelled",
			logger.String("run_id", runID),
			logger.Duration("elapsed", time.Since(start)),
		)
		return Result{}, err
	}

	result.Elapsed = time.Since(start)
	logger.ScanDuration.Observe(result.Elapsed.Seconds())
	logger.AssetsScoredTotal.Add(float64(len(result.Scored)))
	logger.Info("scoring run complete",
		logger.String("run_id", runID),
		logger.Int("scored", len(result.Scored)),
		logger.Int("failures", len(result.Failures)),
		logger.Int("indicators", len(indicators)),
		logger.Int("workers", p.workers),
		logger.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, models.ErrInsufficientHistory):
		return "insufficient_history"
	case errors.Is(err, models.ErrMissingColumn):
		return "missing_column"
	default:
		return "apply_error"
	}
}
