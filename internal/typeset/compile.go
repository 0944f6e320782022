// Package typeset compiles rendered LaTeX into a PDF with an external TeX engine.
package typeset

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/pixcel-cv/internal/logging"
	"go.uber.org/zap"
)

const (
	// DefaultEngine is used when Options.Engine is empty
	DefaultEngine = "pdflatex"
	// DefaultTimeout bounds all engine passes of one compilation
	DefaultTimeout = 2 * time.Minute

	// passes is the number of engine runs; the second one resolves references
	passes = 2
	// jobName is the base name of the .tex file handed to the engine
	jobName = "cv"
)

var supportedEngines = []string{"pdflatex", "xelatex", "lualatex"}

// Engines returns the supported engine names
func Engines() []string {
	return append([]string(nil), supportedEngines...)
}

// ValidateEngine checks that engine is one of the supported engines
func ValidateEngine(engine string) error {
	for _, e := range supportedEngines {
		if e == engine {
			return nil
		}
	}
	return &UnsupportedEngineError{Engine: engine}
}

// Options configures CompilePDF
type Options struct {
	Engine  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// CompilePDF writes latex to a temporary directory, runs the engine twice and
// copies the resulting PDF to outputPath. The temporary directory is always
// removed.
func CompilePDF(ctx context.Context, latex, outputPath string, opts Options) error {
	engine := opts.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log := logging.OrNop(opts.Logger).With(zap.String("engine", engine))

	if err := ValidateEngine(engine); err != nil {
		return err
	}
	enginePath, err := exec.LookPath(engine)
	if err != nil {
		return &EngineNotFoundError{Engine: engine, Cause: err}
	}

	workDir, err := os.MkdirTemp("", "pixcel-cv-*")
	if err != nil {
		return &CompilationError{Message: "failed to create temporary working directory", Cause: err}
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			log.Warn("failed to remove working directory", zap.String("dir", workDir), zap.Error(err))
		}
	}()

	texPath := filepath.Join(workDir, jobName+".tex")
	if err := os.WriteFile(texPath, []byte(latex), 0644); err != nil {
		return &CompilationError{Message: "failed to write LaTeX file to working directory", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for pass := 1; pass <= passes; pass++ {
		start := time.Now()
		logOutput, runErr := runEngine(ctx, enginePath, workDir, texPath)
		if runErr != nil {
			cause := runErr
			if ctx.Err() != nil {
				cause = ctx.Err()
			}
			return &CompilationError{
				Message:   fmt.Sprintf("%s failed on pass %d", engine, pass),
				LogOutput: logOutput,
				Cause:     cause,
			}
		}
		log.Debug("engine pass finished", zap.Int("pass", pass), zap.Duration("elapsed", time.Since(start)))
	}

	pdfPath := filepath.Join(workDir, jobName+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return &CompilationError{Message: "PDF was not generated", Cause: err}
	}

	if err := copyFile(pdfPath, outputPath); err != nil {
		return &CompilationError{Message: fmt.Sprintf("failed to copy PDF to %s", outputPath), Cause: err}
	}

	log.Info("PDF compiled", zap.String("output", outputPath))
	return nil
}

// runEngine runs one engine pass and returns its combined output
func runEngine(ctx context.Context, enginePath, workDir, texPath string) (string, error) {
	// -interaction=nonstopmode keeps the engine from waiting for input on errors
	cmd := exec.CommandContext(ctx, enginePath, "-interaction=nonstopmode", "-output-directory", workDir, texPath)
	cmd.Dir = workDir
	cmd.WaitDelay = 5 * time.Second

	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	return output.String(), err
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
