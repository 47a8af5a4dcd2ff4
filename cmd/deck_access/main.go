// Package main provides the deck_access CLI for scoring and remediating
// PowerPoint accessibility.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deck_access",
	Short: "PowerPoint accessibility scoring and remediation",
	Long: "deck_access analyzes .pptx presentations for accessibility problems " +
		"(missing alt text, undersized fonts, poor color contrast, complex text), " +
		"scores them, and can apply automatic fixes.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
