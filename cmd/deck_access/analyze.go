package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/config"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/pipeline"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Score a presentation's accessibility without modifying it",
	Long: `Loads a .pptx file, checks every slide for accessibility issues, and prints
a weighted score from 0 to 100 with a per-category breakdown.

Configuration can be loaded from a JSON file using --config; command-line
flags override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeInput      string
	analyzeConfigPath string
	analyzeJSONPath   string
	analyzeHTMLPath   string
	analyzeVerbose    bool
)

func init() {
	analyzeCommand.Flags().StringVarP(&analyzeInput, "input", "i", "", "Path to the .pptx file (required)")
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json with thresholds and weights")
	analyzeCommand.Flags().StringVar(&analyzeJSONPath, "json", "", "Write a JSON report to this path")
	analyzeCommand.Flags().StringVar(&analyzeHTMLPath, "html", "", "Write an HTML report to this path")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed issue listings")

	_ = analyzeCommand.MarkFlagRequired("input")

	rootCmd.AddCommand(analyzeCommand)
}

// loadRunConfig resolves the effective configuration for a command.
func loadRunConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(analyzeConfigPath)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(context.Background(), pipeline.RunOptions{
		InputPath: analyzeInput,
		Config:    cfg,
		JSONPath:  analyzeJSONPath,
		HTMLPath:  analyzeHTMLPath,
		Verbose:   analyzeVerbose,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nAccessibility score: %.1f / 100\n", result.Before.Overall)
	fmt.Printf("%s\n", result.Before.Summary)
	fmt.Printf("Issues found: %d\n", len(result.Before.Issues))
	return nil
}
