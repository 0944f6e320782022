package batch

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/pixcel-cv/internal/logging"
	"github.com/jonathan/pixcel-cv/internal/observability"
	"github.com/jonathan/pixcel-cv/internal/pipeline"
)

// Options configures Build
type Options struct {
	// Parallel overrides the manifest setting; zero uses the manifest value
	// and falls back to GOMAXPROCS.
	Parallel int
	// FailFast cancels the remaining jobs after the first failure.
	FailFast bool
	Timeout  time.Duration
	Logger   *zap.Logger

	// OnProgress is called from several goroutines at once.
	OnProgress pipeline.ProgressCallback
	Compile    pipeline.CompileFunc
	CountPages pipeline.PageCountFunc
}

// Result is the outcome of one job
type Result struct {
	Job           Job
	BuildID       string
	PDFPath       string
	LaTeXPath     string
	Pages         int
	OverPageLimit bool
	Duration      time.Duration
	Err           error
}

// BuildError reports the jobs that failed
type BuildError struct {
	Failed []string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%d job(s) failed: %s", len(e.Failed), strings.Join(e.Failed, ", "))
}

// Build runs every job of m. Results keep the manifest order. The returned
// error is a *BuildError when at least one job failed.
func Build(ctx context.Context, m *Manifest, opts Options) ([]Result, error) {
	if m == nil || len(m.Jobs) == 0 {
		return nil, fmt.Errorf("manifest has no jobs")
	}
	log := logging.OrNop(opts.Logger)

	limit := opts.Parallel
	if limit <= 0 {
		limit = m.Parallel
	}
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(m.Jobs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	log.Info("batch started", zap.Int("jobs", len(m.Jobs)), zap.Int("parallel", limit))

	for i, job := range m.Jobs {
		g.Go(func() error {
			// Each goroutine owns results[i]
			results[i] = runJob(gCtx, job, opts, log)
			if opts.FailFast && results[i].Err != nil {
				return results[i].Err
			}
			return nil
		})
	}
	_ = g.Wait() // job errors are collected in results

	var failed []string
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Job.Name)
		}
	}
	log.Info("batch finished", zap.Int("built", len(results)-len(failed)), zap.Int("failed", len(failed)))

	if len(failed) > 0 {
		return results, &BuildError{Failed: failed}
	}
	return results, nil
}

func runJob(ctx context.Context, job Job, opts Options, log *zap.Logger) Result {
	result := Result{Job: job}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	jobLog := log.With(zap.String("job", job.Name))
	start := time.Now()
	built, err := pipeline.Run(ctx, pipeline.RunOptions{
		Input:        job.Input,
		YAMLFolder:   job.YAMLFolder,
		ConfigFolder: job.ConfigFolder,
		Picture:      job.Picture,
		OutputPDF:    job.OutputPDF,
		OutputLaTeX:  job.OutputLaTeX,
		TemplatePath: job.Template,
		Engine:       job.Engine,
		Timeout:      opts.Timeout,
		MaxPages:     job.MaxPages,
		Logger:       jobLog,
		OnProgress:   opts.OnProgress,
		Compile:      opts.Compile,
		CountPages:   opts.CountPages,
	})
	result.Duration = time.Since(start)
	if err != nil {
		jobLog.Error("job failed", zap.Error(err))
		result.Err = err
		return result
	}

	result.BuildID = built.BuildID
	result.PDFPath = built.PDFPath
	result.LaTeXPath = built.LaTeXPath
	result.Pages = built.Pages
	result.OverPageLimit = built.OverPageLimit
	return result
}

// Summaries converts results for observability.Printer
func Summaries(results []Result) []observability.BuildSummary {
	out := make([]observability.BuildSummary, 0, len(results))
	for _, r := range results {
		out = append(out, observability.BuildSummary{
			Name:     r.Job.Name,
			PDFPath:  r.PDFPath,
			Pages:    r.Pages,
			Duration: r.Duration,
			Err:      r.Err,
		})
	}
	return out
}
