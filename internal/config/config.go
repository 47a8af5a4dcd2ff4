// Package config provides configuration loading and validation for the accessibility pipeline.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

// Config holds every tunable threshold and weight used by the pipeline.
// It is read-only after initialization; engines receive it explicitly and
// never consult mutable package state.
type Config struct {
	// Font thresholds (points)
	MinFontPt       float64 `json:"min_font_pt" validate:"gt=0"`
	LargeTextPt     float64 `json:"large_text_pt_threshold" validate:"gt=0"`
	BoldLargeTextPt float64 `json:"bold_large_text_pt_threshold" validate:"gt=0"`

	// WCAG contrast ratio minimums
	ContrastNormal float64 `json:"contrast_normal" validate:"gte=1,lte=21"`
	ContrastLarge  float64 `json:"contrast_large" validate:"gte=1,lte=21"`

	// Text complexity
	ReadabilityThreshold float64 `json:"readability_threshold" validate:"gte=0,lte=100"`
	ComplexityAutoApply  bool    `json:"complexity_auto_apply"`

	// Alt text generation
	MaxImageEdgePx      int    `json:"max_image_edge_px" validate:"gt=0"`
	AltTextRetryLimit   int    `json:"alt_text_retry_limit" validate:"gte=0"`
	DescribeConcurrency int    `json:"describe_concurrency" validate:"gte=1"`
	FallbackAltText     string `json:"fallback_alt_text" validate:"required"`
	DescribeModel       string `json:"describe_model,omitempty"`
	APIKey              string `json:"api_key,omitempty"`

	// Scoring weights. Category weights must sum to 1; severity weights are
	// the per-issue penalty subtracted from the category score.
	CategoryWeights map[types.Category]float64 `json:"category_weights"`
	SeverityWeights map[types.Severity]float64 `json:"severity_weights"`
}

// DefaultConfig returns the standard configuration. The category weight split
// mirrors the scoring ratios the tool has always shipped with: alt text and
// the two visual categories carry most of the score, structure the least.
func DefaultConfig() *Config {
	return &Config{
		MinFontPt:            18,
		LargeTextPt:          18,
		BoldLargeTextPt:      14,
		ContrastNormal:       4.5,
		ContrastLarge:        3.0,
		ReadabilityThreshold: 50,
		ComplexityAutoApply:  false,
		MaxImageEdgePx:       512,
		AltTextRetryLimit:    3,
		DescribeConcurrency:  4,
		FallbackAltText:      "Image description not available",
		DescribeModel:        "gemini-2.5-flash",
		CategoryWeights: map[types.Category]float64{
			types.CategoryAltText:    0.30,
			types.CategoryFontSize:   0.25,
			types.CategoryContrast:   0.25,
			types.CategoryComplexity: 0.15,
			types.CategoryStructure:  0.05,
		},
		SeverityWeights: map[types.Severity]float64{
			types.SeverityLow:    4,
			types.SeverityMedium: 10,
			types.SeverityHigh:   25,
		},
	}
}

// LoadConfig loads configuration from a JSON file and merges it over defaults.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	merged := cfg.MergeWithDefaults(*DefaultConfig())
	return &merged, nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// Bool fields cannot distinguish unset from false, so they are taken as-is.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.MinFontPt == 0 {
		result.MinFontPt = defaults.MinFontPt
	}
	if result.LargeTextPt == 0 {
		result.LargeTextPt = defaults.LargeTextPt
	}
	if result.BoldLargeTextPt == 0 {
		result.BoldLargeTextPt = defaults.BoldLargeTextPt
	}
	if result.ContrastNormal == 0 {
		result.ContrastNormal = defaults.ContrastNormal
	}
	if result.ContrastLarge == 0 {
		result.ContrastLarge = defaults.ContrastLarge
	}
	if result.ReadabilityThreshold == 0 {
		result.ReadabilityThreshold = defaults.ReadabilityThreshold
	}
	if result.MaxImageEdgePx == 0 {
		result.MaxImageEdgePx = defaults.MaxImageEdgePx
	}
	if result.AltTextRetryLimit == 0 {
		result.AltTextRetryLimit = defaults.AltTextRetryLimit
	}
	if result.DescribeConcurrency == 0 {
		result.DescribeConcurrency = defaults.DescribeConcurrency
	}
	if result.FallbackAltText == "" {
		result.FallbackAltText = defaults.FallbackAltText
	}
	if result.DescribeModel == "" {
		result.DescribeModel = defaults.DescribeModel
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if len(result.CategoryWeights) == 0 {
		result.CategoryWeights = defaults.CategoryWeights
	}
	if len(result.SeverityWeights) == 0 {
		result.SeverityWeights = defaults.SeverityWeights
	}

	return result
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.ContrastLarge > c.ContrastNormal {
		return fmt.Errorf("config error: 'contrast_large' (%.2f) must not exceed 'contrast_normal' (%.2f)", c.ContrastLarge, c.ContrastNormal)
	}
	if c.BoldLargeTextPt > c.LargeTextPt {
		return fmt.Errorf("config error: 'bold_large_text_pt_threshold' must not exceed 'large_text_pt_threshold'")
	}

	sum := 0.0
	for _, cat := range types.Categories {
		w, ok := c.CategoryWeights[cat]
		if !ok {
			return fmt.Errorf("config error: missing category weight for %q", cat)
		}
		if w < 0 {
			return fmt.Errorf("config error: category weight for %q must be non-negative", cat)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("config error: category weights must sum to 1.0, got %.3f", sum)
	}

	for _, sev := range []types.Severity{types.SeverityLow, types.SeverityMedium, types.SeverityHigh} {
		w, ok := c.SeverityWeights[sev]
		if !ok {
			return fmt.Errorf("config error: missing severity weight for %q", sev)
		}
		if w < 0 {
			return fmt.Errorf("config error: severity weight for %q must be non-negative", sev)
		}
	}
	if c.SeverityWeights[types.SeverityLow] > c.SeverityWeights[types.SeverityMedium] ||
		c.SeverityWeights[types.SeverityMedium] > c.SeverityWeights[types.SeverityHigh] {
		return fmt.Errorf("config error: severity weights must be non-decreasing from low to high")
	}

	return nil
}
