package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/pixcel-cv/internal/observability"
	"github.com/jonathan/pixcel-cv/internal/profile"
	"github.com/jonathan/pixcel-cv/internal/types"
)

var validateCommand = &cobra.Command{
	Use:   "validate [cv.yaml]",
	Short: "Check the CV sources without rendering",
	Long: `Loads the YAML documents of --yaml-folder (or a single exported CV file), checks
them against the bundled JSON schemas and the record rules, and prints a short summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var (
	valYAMLFolder   string
	valConfigFolder string
	valNoSchema     bool
)

func init() {
	validateCommand.Flags().StringVarP(&valYAMLFolder, "yaml-folder", "y", "", "Folder with the CV YAML documents")
	validateCommand.Flags().StringVar(&valConfigFolder, "config-folder", "", "Folder with cv_config.yaml (defaults to --yaml-folder)")
	validateCommand.Flags().BoolVar(&valNoSchema, "no-schema", false, "Skip the JSON schema checks")

	rootCmd.AddCommand(validateCommand)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var (
		cv  *types.CurriculumVitae
		err error
	)
	switch {
	case len(args) == 1 && valYAMLFolder != "":
		return fmt.Errorf("the cv.yaml argument and --yaml-folder are mutually exclusive")
	case len(args) == 1:
		cv, err = profile.LoadFile(args[0])
	case valYAMLFolder != "":
		configFolder := valConfigFolder
		if configFolder == "" {
			configFolder = valYAMLFolder
		}
		cv, err = profile.Load(valYAMLFolder, configFolder,
			profile.WithLogger(logger),
			profile.WithSchemaChecks(!valNoSchema),
		)
	default:
		return fmt.Errorf("either a cv.yaml argument or --yaml-folder must be provided")
	}
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if verbose {
		observability.NewPrinter(out).PrintCV(cv)
	}
	_, _ = fmt.Fprintf(out, "✓ CV for %s is valid (%d skills, %d certifications, %d sections)\n",
		cv.Contact.Name, len(cv.Skills), len(cv.Certifications), cv.Sections.Len())
	return nil
}
