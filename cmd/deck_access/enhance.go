package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/pipeline"
)

var enhanceCommand = &cobra.Command{
	Use:   "enhance",
	Short: "Apply accessibility fixes and save an enhanced copy",
	Long: `Analyzes the presentation, applies automatic fixes (font rescaling, contrast
correction, alt text generation, optional text simplification), saves the
result to a new file, and reports the before/after score improvement.

Image descriptions use the Gemini API; pass --api-key or set GEMINI_API_KEY.
Without a key, images that need alt text receive the configured fallback.`,
	RunE: runEnhanceCmd,
}

var (
	enhanceInput      string
	enhanceOutput     string
	enhanceConfigPath string
	enhanceJSONPath   string
	enhanceHTMLPath   string
	enhanceAPIKey     string
	enhanceSimplify   bool
	enhanceVerbose    bool
)

func init() {
	enhanceCommand.Flags().StringVarP(&enhanceInput, "input", "i", "", "Path to the .pptx file (required)")
	enhanceCommand.Flags().StringVarP(&enhanceOutput, "output", "o", "", "Destination for the enhanced .pptx (required)")
	enhanceCommand.Flags().StringVar(&enhanceConfigPath, "config", "", "Path to config.json with thresholds and weights")
	enhanceCommand.Flags().StringVar(&enhanceJSONPath, "json", "", "Write a JSON report to this path")
	enhanceCommand.Flags().StringVar(&enhanceHTMLPath, "html", "", "Write an HTML report to this path")
	enhanceCommand.Flags().StringVar(&enhanceAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	enhanceCommand.Flags().BoolVar(&enhanceSimplify, "simplify-text", false, "Also rewrite complex text passages in place")
	enhanceCommand.Flags().BoolVarP(&enhanceVerbose, "verbose", "v", false, "Print detailed change listings")

	_ = enhanceCommand.MarkFlagRequired("input")
	_ = enhanceCommand.MarkFlagRequired("output")

	rootCmd.AddCommand(enhanceCommand)
}

func runEnhanceCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(enhanceConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("simplify-text") {
		cfg.ComplexityAutoApply = enhanceSimplify
	}

	apiKey := enhanceAPIKey
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	result, err := pipeline.Run(context.Background(), pipeline.RunOptions{
		InputPath:  enhanceInput,
		OutputPath: enhanceOutput,
		Config:     cfg,
		APIKey:     apiKey,
		Enhance:    true,
		JSONPath:   enhanceJSONPath,
		HTMLPath:   enhanceHTMLPath,
		Verbose:    enhanceVerbose,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nScore: %.1f -> %.1f\n", result.Before.Overall, result.After.Overall)
	fmt.Printf("Applied %d change(s), %d element(s) skipped\n",
		len(result.Outcome.Changes), len(result.Outcome.Skips))
	fmt.Printf("Enhanced presentation: %s\n", enhanceOutput)
	return nil
}
