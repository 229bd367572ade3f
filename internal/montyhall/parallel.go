package montyhall

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/haasonsaas/montyhall/internal/montyhall"

// progressBatch is how many trials a worker plays between progress updates
// and cancellation checks.
const progressBatch = 4096

// ParallelOptions configures RunParallel.
type ParallelOptions struct {
	// Workers is the number of goroutines. Zero or negative means runtime.NumCPU().
	// The effective count never exceeds the trial count.
	Workers int

	// Seed seeds every worker's stream. Runs with the same seed, worker count
	// and Config produce the same result.
	Seed uint64

	// ProgressInterval enables periodic OnProgress calls when both are set.
	ProgressInterval time.Duration

	// OnProgress receives the number of finished trials and the total.
	OnProgress func(done, total int64)
}

// workerCount resolves the effective number of workers for trials.
func (o ParallelOptions) workerCount(trials int) int {
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > trials {
		workers = trials
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// RunParallel splits cfg.Trials across workers, each drawing from its own
// random stream, and sums their wins. It returns ctx.Err() if the context is
// cancelled before every worker finishes.
func RunParallel(ctx context.Context, cfg Config, opts ParallelOptions) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	workers := opts.workerCount(cfg.Trials)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "montyhall.run",
		trace.WithAttributes(
			attribute.Int("montyhall.options", cfg.Options),
			attribute.String("montyhall.strategy", cfg.Strategy().String()),
			attribute.Int("montyhall.trials", cfg.Trials),
			attribute.Int("montyhall.workers", workers),
		))
	defer span.End()

	var done atomic.Int64
	stop := startProgress(&done, int64(cfg.Trials), opts)
	defer stop()

	chunk := cfg.Trials / workers
	rem := cfg.Trials % workers
	wins := make([]int, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		trials := chunk
		if w < rem {
			trials++
		}
		go func(i, n int) {
			defer wg.Done()
			wins[i] = runWorker(ctx, i, n, cfg, opts.Seed, &done)
		}(w, trials)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	res := Result{Options: cfg.Options, Switch: cfg.Switch, Trials: cfg.Trials}
	for _, w := range wins {
		res.Wins += w
	}
	span.SetAttributes(
		attribute.Int("montyhall.wins", res.Wins),
		attribute.Float64("montyhall.win_probability", res.WinProbability()),
	)
	return res, nil
}

func runWorker(ctx context.Context, id, trials int, cfg Config, seed uint64, done *atomic.Int64) int {
	_, span := otel.Tracer(tracerName).Start(ctx, "montyhall.worker",
		trace.WithAttributes(
			attribute.Int("montyhall.worker", id),
			attribute.Int("montyhall.trials", trials),
		))
	defer span.End()

	rng := newStream(seed, uint64(id))
	wins := 0
	for played := 0; played < trials; {
		if ctx.Err() != nil {
			return 0
		}
		batch := min(progressBatch, trials-played)
		wins += playTrials(rng, cfg.Options, cfg.Switch, batch)
		played += batch
		done.Add(int64(batch))
	}
	span.SetAttributes(attribute.Int("montyhall.wins", wins))
	return wins
}

// startProgress reports finished trials every interval until the returned
// stop function is called.
func startProgress(done *atomic.Int64, total int64, opts ParallelOptions) func() {
	if opts.OnProgress == nil || opts.ProgressInterval <= 0 {
		return func() {}
	}
	tk := time.NewTicker(opts.ProgressInterval)
	quit := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		defer tk.Stop()
		for {
			select {
			case <-tk.C:
				opts.OnProgress(done.Load(), total)
			case <-quit:
				return
			}
		}
	}()
	return func() {
		close(quit)
		<-exited
	}
}
