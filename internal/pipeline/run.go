// Package pipeline provides the high-level orchestration for building one CV:
// load the sources, render LaTeX, write it out and compile the PDF.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/pixcel-cv/internal/logging"
	"github.com/jonathan/pixcel-cv/internal/observability"
	"github.com/jonathan/pixcel-cv/internal/profile"
	"github.com/jonathan/pixcel-cv/internal/rendering"
	"github.com/jonathan/pixcel-cv/internal/types"
	"github.com/jonathan/pixcel-cv/internal/typeset"
)

// Pipeline steps reported through ProgressEvent.Step
const (
	StepLoad    = "load"
	StepRender  = "render"
	StepLaTeX   = "latex"
	StepCompile = "compile"
	StepPages   = "pages"
)

// previewLines is the number of LaTeX lines shown in verbose mode
const previewLines = 15

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	BuildID string `json:"build_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// CompileFunc turns a LaTeX document into a PDF at outputPath
type CompileFunc func(ctx context.Context, latex, outputPath string, opts typeset.Options) error

// PageCountFunc returns the number of pages of a PDF
type PageCountFunc func(pdfPath string) (int, error)

// ErrNoOutput is returned when neither a PDF nor a LaTeX output path is set
var ErrNoOutput = errors.New("no output specified: set a PDF or LaTeX output path")

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	// Sources: either Input (an exported CV file) or YAMLFolder
	Input        string
	YAMLFolder   string
	ConfigFolder string
	Picture      string

	// Outputs
	OutputPDF   string
	OutputLaTeX string

	TemplatePath string
	Engine       string
	Timeout      time.Duration
	MaxPages     int
	Verbose      bool

	Logger     *zap.Logger
	Out        io.Writer // step lines and verbose boxes; discarded when nil
	OnProgress ProgressCallback

	// Overridable for tests; default to the typeset package
	Compile    CompileFunc
	CountPages PageCountFunc
}

// Result describes a finished build
type Result struct {
	BuildID       string
	CV            *types.CurriculumVitae
	LaTeX         string
	LaTeXPath     string
	PDFPath       string
	Pages         int
	OverPageLimit bool
	Duration      time.Duration
}

// Validate checks that the options describe exactly one source and at
// least one output.
func (o RunOptions) Validate() error {
	if o.Input != "" && o.YAMLFolder != "" {
		return fmt.Errorf("input file and YAML folder are mutually exclusive")
	}
	if o.Input == "" && o.YAMLFolder == "" {
		return fmt.Errorf("no source specified: set an input file or a YAML folder")
	}
	if o.OutputPDF == "" && o.OutputLaTeX == "" {
		return ErrNoOutput
	}
	if o.Engine != "" {
		if err := typeset.ValidateEngine(o.Engine); err != nil {
			return err
		}
	}
	if o.MaxPages < 0 {
		return fmt.Errorf("max pages must be non-negative, got %d", o.MaxPages)
	}
	return nil
}

// runner carries the per-build state shared by the steps
type runner struct {
	opts    RunOptions
	buildID string
	log     *zap.Logger
	out     io.Writer
	total   int
	step    int
}

// progress prints "Step n/total: message..." and emits the progress event
func (r *runner) progress(step, message string) {
	r.step++
	//nolint:errcheck // progress output is best effort
	fmt.Fprintf(r.out, "Step %d/%d: %s...\n", r.step, r.total, message)
	r.log.Debug("pipeline step", zap.String("step", step), zap.String("message", message))
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{Step: step, Message: message, BuildID: r.buildID})
	}
}

// Run builds one CV according to opts.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Compile == nil {
		opts.Compile = typeset.CompilePDF
	}
	if opts.CountPages == nil {
		opts.CountPages = typeset.CountPDFPages
	}

	r := &runner{
		opts:    opts,
		buildID: uuid.NewString(),
		out:     opts.Out,
		total:   2,
	}
	if r.out == nil {
		r.out = io.Discard
	}
	r.log = logging.OrNop(opts.Logger).With(zap.String("build_id", r.buildID))
	if opts.OutputLaTeX != "" {
		r.total++
	}
	if opts.OutputPDF != "" {
		r.total++
		if opts.MaxPages > 0 {
			r.total++
		}
	}

	start := time.Now()
	printer := observability.NewPrinter(r.out)
	result := &Result{BuildID: r.buildID}

	// Step 1: Load
	cv, err := r.load()
	if err != nil {
		return nil, err
	}
	result.CV = cv
	if opts.Verbose {
		printer.PrintCV(cv)
	}

	// Step 2: Render
	r.progress(StepRender, "Rendering LaTeX")
	latex, err := rendering.RenderLaTeX(cv, opts.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("rendering failed: %w", err)
	}
	result.LaTeX = latex
	if opts.Verbose {
		printer.PrintLaTeXPreview(latex, previewLines)
	}

	// Step 3: Write LaTeX
	if opts.OutputLaTeX != "" {
		r.progress(StepLaTeX, fmt.Sprintf("Writing LaTeX to %s", opts.OutputLaTeX))
		if err := writeFile(opts.OutputLaTeX, latex); err != nil {
			return nil, fmt.Errorf("failed to write LaTeX file: %w", err)
		}
		result.LaTeXPath = opts.OutputLaTeX
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 4: Compile
	if opts.OutputPDF != "" {
		r.progress(StepCompile, fmt.Sprintf("Compiling PDF to %s", opts.OutputPDF))
		compileOpts := typeset.Options{Engine: opts.Engine, Timeout: opts.Timeout, Logger: r.log}
		if err := opts.Compile(ctx, latex, opts.OutputPDF, compileOpts); err != nil {
			return nil, fmt.Errorf("PDF compilation failed: %w", err)
		}
		result.PDFPath = opts.OutputPDF

		// Step 5: Page check
		if opts.MaxPages > 0 {
			r.progress(StepPages, "Checking page count")
			r.checkPages(result)
		}
	}

	result.Duration = time.Since(start)
	r.log.Info("CV built",
		zap.String("name", cv.Contact.Name),
		zap.String("pdf", result.PDFPath),
		zap.String("latex", result.LaTeXPath),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

func (r *runner) load() (*types.CurriculumVitae, error) {
	if r.opts.Input != "" {
		r.progress(StepLoad, fmt.Sprintf("Loading CV from %s", r.opts.Input))
		cv, err := profile.LoadFile(r.opts.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to load CV: %w", err)
		}
		return cv, nil
	}

	r.progress(StepLoad, fmt.Sprintf("Loading CV sources from %s", r.opts.YAMLFolder))
	configFolder := r.opts.ConfigFolder
	if configFolder == "" {
		configFolder = r.opts.YAMLFolder
	}
	cv, err := profile.Load(r.opts.YAMLFolder, configFolder,
		profile.WithLogger(r.log),
		profile.WithPortrait(r.opts.Picture),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load CV: %w", err)
	}
	return cv, nil
}

// checkPages records the page count. A failed count is only logged since
// the PDF itself was produced.
func (r *runner) checkPages(result *Result) {
	pages, err := r.opts.CountPages(result.PDFPath)
	if err != nil {
		r.log.Warn("could not count PDF pages", zap.Error(err))
		//nolint:errcheck // progress output is best effort
		fmt.Fprintf(r.out, "Warning: could not count pages: %v\n", err)
		return
	}
	result.Pages = pages
	if pages > r.opts.MaxPages {
		result.OverPageLimit = true
		r.log.Warn("PDF exceeds page limit", zap.Int("pages", pages), zap.Int("max_pages", r.opts.MaxPages))
		//nolint:errcheck // progress output is best effort
		fmt.Fprintf(r.out, "Warning: PDF has %d pages (limit %d)\n", pages, r.opts.MaxPages)
	}
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}
