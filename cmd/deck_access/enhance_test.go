package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnhanceCommand_FixesAndSaves(t *testing.T) {
	binaryPath := getBinaryPath(t)
	deckPath := writeSampleDeck(t)
	outPath := filepath.Join(t.TempDir(), "enhanced.pptx")

	// No API key: images fall back, font and contrast fixes still apply.
	cmd := exec.Command(binaryPath, "enhance", "--input", deckPath, "--output", outPath)
	cmd.Env = append(os.Environ(), "GEMINI_API_KEY=")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", output)

	assert.Contains(t, string(output), "Score:")
	_, err = os.Stat(outPath)
	assert.NoError(t, err)
}

func TestEnhanceCommand_RequiresOutputFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)
	deckPath := writeSampleDeck(t)

	cmd := exec.Command(binaryPath, "enhance", "--input", deckPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required")
}

func TestReportCommand_RequiresAFormat(t *testing.T) {
	binaryPath := getBinaryPath(t)
	deckPath := writeSampleDeck(t)

	cmd := exec.Command(binaryPath, "report", "--input", deckPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--json or --html")
}

func TestReportCommand_WritesHTML(t *testing.T) {
	binaryPath := getBinaryPath(t)
	deckPath := writeSampleDeck(t)
	htmlPath := filepath.Join(t.TempDir(), "report.html")

	cmd := exec.Command(binaryPath, "report", "--input", deckPath, "--html", htmlPath)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", output)

	data, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Accessibility Report")
}
