package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/alttext"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/config"
)

var describeImageCommand = &cobra.Command{
	Use:   "describe-image",
	Short: "Generate alternative text for a single image file",
	Long: `Sends one image to the vision model and prints the generated alternative
text. Useful for checking model output quality before running enhance on a
whole deck.`,
	RunE: runDescribeImageCmd,
}

var (
	describeImagePath string
	describeDetailed  bool
	describeAPIKey    string
	describeModel     string
)

func init() {
	describeImageCommand.Flags().StringVarP(&describeImagePath, "image", "i", "", "Path to the image file (required)")
	describeImageCommand.Flags().BoolVar(&describeDetailed, "detailed", false, "Ask for a multi-sentence description")
	describeImageCommand.Flags().StringVar(&describeAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	describeImageCommand.Flags().StringVar(&describeModel, "model", "", "Vision model to use (defaults to the configured model)")

	_ = describeImageCommand.MarkFlagRequired("image")

	rootCmd.AddCommand(describeImageCommand)
}

func runDescribeImageCmd(_ *cobra.Command, _ []string) error {
	apiKey := describeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	cfg := config.DefaultConfig()
	model := describeModel
	if model == "" {
		model = cfg.DescribeModel
	}

	data, err := os.ReadFile(describeImagePath)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	payload, err := alttext.Preprocess(data, cfg.MaxImageEdgePx)
	if err != nil {
		return err
	}

	ctx := context.Background()
	describer, err := alttext.NewGeminiDescriber(ctx, model, apiKey)
	if err != nil {
		return err
	}
	defer describer.Close()

	level := alttext.DetailConcise
	if describeDetailed {
		level = alttext.DetailDetailed
	}

	text, err := describer.Describe(ctx, payload, level)
	if err != nil {
		return err
	}

	fmt.Println(text)
	return nil
}
