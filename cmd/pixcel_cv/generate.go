package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/pixcel-cv/internal/config"
	"github.com/jonathan/pixcel-cv/internal/pipeline"
)

var generateCommand = &cobra.Command{
	Use:   "generate [cv.yaml]",
	Short: "Generate a LaTeX and/or PDF CV",
	Long: `Loads the CV either from a YAML folder (--yaml-folder) or from a single exported
CV file given as argument, renders it with the LaTeX template and writes the requested outputs.

Values are taken from PIXCEL_* environment variables, then from the --config file,
then from command-line flags, each overriding the previous.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	genConfigPath   string
	genYAMLFolder   string
	genConfigFolder string
	genPicture      string
	genPDF          string
	genLaTeX        string
	genTemplate     string
	genEngine       string
	genMaxPages     int
	genTimeout      int
)

func init() {
	generateCommand.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCommand.Flags().StringVarP(&genYAMLFolder, "yaml-folder", "y", "", "Folder with the CV YAML documents (mutually exclusive with the cv.yaml argument)")
	generateCommand.Flags().StringVar(&genConfigFolder, "config-folder", "", "Folder with cv_config.yaml (defaults to --yaml-folder)")
	generateCommand.Flags().StringVar(&genPicture, "picture", "", "Portrait picture, overrides portrait_path from cv_config.yaml")
	generateCommand.Flags().StringVarP(&genPDF, "pdf", "o", "", "Output PDF path")
	generateCommand.Flags().StringVar(&genLaTeX, "latex", "", "Output LaTeX path")
	generateCommand.Flags().StringVarP(&genTemplate, "template", "t", "", "Path to LaTeX template (defaults to the built-in German template)")
	generateCommand.Flags().StringVar(&genEngine, "engine", "", "LaTeX engine: pdflatex, xelatex or lualatex")
	generateCommand.Flags().IntVar(&genMaxPages, "max-pages", 0, "Warn when the PDF has more pages")
	generateCommand.Flags().IntVar(&genTimeout, "timeout", 0, "Timeout in seconds for all engine passes")

	rootCmd.AddCommand(generateCommand)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx, pipeline.RunOptions{
		Input:        cfg.Input,
		YAMLFolder:   cfg.YAMLFolder,
		ConfigFolder: cfg.ConfigFolder,
		Picture:      cfg.Picture,
		OutputPDF:    cfg.OutputPDF,
		OutputLaTeX:  cfg.OutputLaTeX,
		TemplatePath: cfg.Template,
		Engine:       cfg.Engine,
		Timeout:      cfg.Timeout(),
		MaxPages:     cfg.MaxPages,
		Verbose:      cfg.Verbose,
		Logger:       logger,
		Out:          cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.LaTeXPath != "" {
		_, _ = fmt.Fprintf(out, "✓ LaTeX written to %s\n", result.LaTeXPath)
	}
	if result.PDFPath != "" {
		_, _ = fmt.Fprintf(out, "✓ PDF written to %s\n", result.PDFPath)
	}
	return nil
}

// resolveConfig merges environment, config file and flags, in increasing
// priority, and validates the result
func resolveConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	// Step 1: Environment
	envCfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	// Step 2: Config file, falling back to the environment
	var cfg config.Config
	if genConfigPath != "" {
		loadedCfg, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loadedCfg
		logger.Debug("loaded config file")
	}
	cfg = cfg.MergeWithDefaults(envCfg)

	// Step 3: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if len(args) == 1 {
		cfg.Input = args[0]
		cfg.YAMLFolder = ""
	}
	if flags.Changed("yaml-folder") {
		cfg.YAMLFolder = genYAMLFolder
		if len(args) == 0 {
			cfg.Input = ""
		}
	}
	if flags.Changed("config-folder") {
		cfg.ConfigFolder = genConfigFolder
	}
	if flags.Changed("picture") {
		cfg.Picture = genPicture
	}
	if flags.Changed("pdf") {
		cfg.OutputPDF = genPDF
	}
	if flags.Changed("latex") {
		cfg.OutputLaTeX = genLaTeX
	}
	if flags.Changed("template") {
		cfg.Template = genTemplate
	}
	if flags.Changed("engine") {
		cfg.Engine = genEngine
	}
	if flags.Changed("max-pages") {
		cfg.MaxPages = genMaxPages
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = genTimeout
	}
	if verbose {
		cfg.Verbose = true
	}

	// Step 4: Validate
	if cfg.Input == "" && cfg.YAMLFolder == "" {
		return config.Config{}, fmt.Errorf("either a cv.yaml argument or --yaml-folder must be provided (via flag, config or %s)", config.EnvYAMLFolder)
	}
	if cfg.OutputPDF == "" && cfg.OutputLaTeX == "" {
		return config.Config{}, fmt.Errorf("no output specified. Use --pdf or --latex to save output")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if cfg.Picture != "" {
		abs, err := filepath.Abs(cfg.Picture)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to resolve picture path: %w", err)
		}
		cfg.Picture = abs
	}
	return cfg, nil
}
