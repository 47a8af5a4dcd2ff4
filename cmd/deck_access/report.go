package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/pipeline"
)

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Generate accessibility reports for a presentation",
	Long: `Analyzes the presentation and writes an HTML and/or JSON report without
modifying the deck. The JSON report conforms to a published schema and is
safe to feed into other tooling.`,
	RunE: runReportCmd,
}

var (
	reportInput      string
	reportConfigPath string
	reportJSONPath   string
	reportHTMLPath   string
)

func init() {
	reportCommand.Flags().StringVarP(&reportInput, "input", "i", "", "Path to the .pptx file (required)")
	reportCommand.Flags().StringVar(&reportConfigPath, "config", "", "Path to config.json with thresholds and weights")
	reportCommand.Flags().StringVar(&reportJSONPath, "json", "", "Write a JSON report to this path")
	reportCommand.Flags().StringVar(&reportHTMLPath, "html", "", "Write an HTML report to this path")

	_ = reportCommand.MarkFlagRequired("input")

	rootCmd.AddCommand(reportCommand)
}

func runReportCmd(_ *cobra.Command, _ []string) error {
	if reportJSONPath == "" && reportHTMLPath == "" {
		return fmt.Errorf("at least one of --json or --html must be provided")
	}

	cfg, err := loadRunConfig(reportConfigPath)
	if err != nil {
		return err
	}

	_, err = pipeline.Run(context.Background(), pipeline.RunOptions{
		InputPath: reportInput,
		Config:    cfg,
		JSONPath:  reportJSONPath,
		HTMLPath:  reportHTMLPath,
	})
	return err
}
