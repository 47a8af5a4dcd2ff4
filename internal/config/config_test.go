package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_Thresholds(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 18.0, cfg.MinFontPt)
	assert.Equal(t, 4.5, cfg.ContrastNormal)
	assert.Equal(t, 3.0, cfg.ContrastLarge)
	assert.Equal(t, 512, cfg.MaxImageEdgePx)
	assert.Equal(t, 3, cfg.AltTextRetryLimit)
	assert.False(t, cfg.ComplexityAutoApply)
}

func TestLoadConfig_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"min_font_pt": 20, "alt_text_retry_limit": 5}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 20.0, cfg.MinFontPt)
	assert.Equal(t, 5, cfg.AltTextRetryLimit)
	// Untouched fields come from defaults
	assert.Equal(t, 4.5, cfg.ContrastNormal)
	assert.NotEmpty(t, cfg.FallbackAltText)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_WeightsMustSumToOne(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CategoryWeights[types.CategoryAltText] = 0.9

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
}

func TestValidate_MissingCategoryWeight(t *testing.T) {
	cfg := DefaultConfig()
	delete(cfg.CategoryWeights, types.CategoryStructure)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "structure")
}

func TestValidate_LargeContrastAboveNormal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContrastLarge = 5.0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contrast_large")
}

func TestValidate_SeverityWeightsOrdered(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeverityWeights[types.SeverityLow] = 50

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "severity weights")
}
