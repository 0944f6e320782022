package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/pixcel-cv/internal/batch"
	"github.com/jonathan/pixcel-cv/internal/observability"
	"github.com/jonathan/pixcel-cv/internal/pipeline"
)

var batchCommand = &cobra.Command{
	Use:   "batch",
	Short: "Build every CV listed in a manifest",
	Long: `Reads a YAML manifest listing several CV builds (for example one per language)
and runs them concurrently. Paths in the manifest are relative to the manifest file.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

var (
	batchManifest string
	batchParallel int
	batchFailFast bool
	batchTimeout  int
)

func init() {
	batchCommand.Flags().StringVarP(&batchManifest, "manifest", "m", "", "Path to the batch manifest")
	batchCommand.Flags().IntVarP(&batchParallel, "parallel", "p", 0, "Maximum concurrent builds (overrides the manifest)")
	batchCommand.Flags().BoolVar(&batchFailFast, "fail-fast", false, "Cancel remaining builds after the first failure")
	batchCommand.Flags().IntVar(&batchTimeout, "timeout", 0, "Timeout in seconds for the engine passes of each build")

	_ = batchCommand.MarkFlagRequired("manifest")

	rootCmd.AddCommand(batchCommand)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if batchParallel < 0 {
		return fmt.Errorf("--parallel must be non-negative")
	}

	m, err := batch.LoadManifest(batchManifest)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var mu sync.Mutex
	results, buildErr := batch.Build(ctx, m, batch.Options{
		Parallel: batchParallel,
		FailFast: batchFailFast,
		Timeout:  time.Duration(batchTimeout) * time.Second,
		Logger:   logger,
		OnProgress: func(e pipeline.ProgressEvent) {
			if !verbose {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			_, _ = fmt.Fprintf(out, "[%s] %s\n", shortID(e.BuildID), e.Message)
		},
	})

	observability.NewPrinter(out).PrintBuildSummaries(batch.Summaries(results))
	return buildErr
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
