package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/pixcel-cv/internal/profile"
)

var exportCommand = &cobra.Command{
	Use:   "export",
	Short: "Merge a YAML folder into a single CV file",
	Long: `Loads the documents of --yaml-folder and writes the assembled CV as one YAML file.
The file can later be passed to "generate" or "validate" instead of the folder.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	expYAMLFolder   string
	expConfigFolder string
	expPicture      string
	expOut          string
)

func init() {
	exportCommand.Flags().StringVarP(&expYAMLFolder, "yaml-folder", "y", "", "Folder with the CV YAML documents")
	exportCommand.Flags().StringVar(&expConfigFolder, "config-folder", "", "Folder with cv_config.yaml (defaults to --yaml-folder)")
	exportCommand.Flags().StringVar(&expPicture, "picture", "", "Portrait picture, overrides portrait_path from cv_config.yaml")
	exportCommand.Flags().StringVarP(&expOut, "out", "o", "", "Output YAML path")

	_ = exportCommand.MarkFlagRequired("yaml-folder")
	_ = exportCommand.MarkFlagRequired("out")

	rootCmd.AddCommand(exportCommand)
}

func runExport(cmd *cobra.Command, _ []string) error {
	configFolder := expConfigFolder
	if configFolder == "" {
		configFolder = expYAMLFolder
	}

	cv, err := profile.Load(expYAMLFolder, configFolder,
		profile.WithLogger(logger),
		profile.WithPortrait(expPicture),
	)
	if err != nil {
		return fmt.Errorf("failed to load CV: %w", err)
	}

	if err := profile.SaveFile(cv, expOut); err != nil {
		return fmt.Errorf("failed to write CV file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ CV exported to %s\n", expOut)
	return nil
}
