// Package pipeline provides the high-level orchestration for analyzing and
// enhancing a presentation.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/farabi1038/powerpoint-asccessibility-project/internal/alttext"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/analyze"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/config"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/deck"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/enhance"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/observability"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/report"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/scoring"
	"github.com/farabi1038/powerpoint-asccessibility-project/internal/types"
)

// Pipeline step identifiers used in progress events.
const (
	StepLoad    = "load"
	StepAnalyze = "analyze"
	StepScore   = "score"
	StepEnhance = "enhance"
	StepRescore = "rescore"
	StepSave    = "save"
	StepReport  = "report"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	InputPath  string
	OutputPath string // enhanced deck destination; empty means analyze only
	Config     *config.Config
	APIKey     string
	Enhance    bool
	JSONPath   string
	HTMLPath   string
	Verbose    bool
	OnProgress ProgressCallback
}

// RunResult holds everything a pipeline run produced.
type RunResult struct {
	RunID             string
	Before            *types.ScoreReport
	After             *types.ScoreReport
	Diff              *types.ReportDiff
	Outcome           *enhance.Outcome
	UnsupportedImages int
	Export            *report.Export
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID,
			Content: content,
		})
	}
}

// Run executes the pipeline: load, analyze, score, then optionally enhance,
// re-analyze, save, and report.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	printer := observability.NewPrinter(os.Stdout)
	runID := uuid.New().String()

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	totalSteps := 3
	if opts.Enhance {
		totalSteps = 6
	}

	fmt.Printf("Step 1/%d: Loading presentation from %s...\n", totalSteps, opts.InputPath)
	p, err := deck.Open(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load presentation: %w", err)
	}
	emitProgress(&opts, runID, StepLoad,
		fmt.Sprintf("Loaded %d slide(s) from %s", len(p.Slides()), opts.InputPath), nil)

	fmt.Printf("Step 2/%d: Analyzing accessibility...\n", totalSteps)
	analyzer := analyze.New(cfg)
	issues := analyzer.Analyze(p)
	if opts.Verbose {
		printer.PrintIssues(issues)
	}
	emitProgress(&opts, runID, StepAnalyze,
		fmt.Sprintf("Found %d issue(s)", len(issues)), nil)

	fmt.Printf("Step 3/%d: Scoring...\n", totalSteps)
	aggregator := scoring.New(cfg)
	before := aggregator.Score(issues)
	if opts.Verbose {
		printer.PrintScoreReport(before)
	}
	emitProgress(&opts, runID, StepScore,
		fmt.Sprintf("Overall score %.1f: %s", before.Overall, before.Summary), before)

	result := &RunResult{
		RunID:             runID,
		Before:            before,
		UnsupportedImages: report.CountUnsupportedImages(p),
	}

	if opts.Enhance {
		if err := runEnhancement(ctx, &opts, cfg, p, printer, aggregator, analyzer, result, totalSteps); err != nil {
			return nil, err
		}
	}

	result.Export = buildExport(&opts, result)
	if err := writeReports(&opts, result); err != nil {
		return nil, err
	}

	return result, nil
}

func runEnhancement(
	ctx context.Context,
	opts *RunOptions,
	cfg *config.Config,
	p *deck.Presentation,
	printer *observability.Printer,
	aggregator *scoring.Aggregator,
	analyzer *analyze.Analyzer,
	result *RunResult,
	totalSteps int,
) error {
	var describer alttext.Describer
	if opts.APIKey != "" {
		var err error
		describer, err = alttext.NewGeminiDescriber(ctx, cfg.DescribeModel, opts.APIKey)
		if err != nil {
			return fmt.Errorf("failed to initialize describer: %w", err)
		}
		defer describer.Close()
	} else {
		fmt.Printf("Warning: no API key configured; images will receive fallback descriptions\n")
	}

	fmt.Printf("Step 4/%d: Enhancing presentation...\n", totalSteps)
	orchestrator := enhance.New(cfg, describer)
	outcome, err := orchestrator.Enhance(ctx, p)
	if err != nil {
		return fmt.Errorf("enhancement failed: %w", err)
	}
	result.Outcome = outcome
	if opts.Verbose {
		printer.PrintChangeLog(outcome.Changes, outcome.Skips)
	}
	emitProgress(opts, result.RunID, StepEnhance,
		fmt.Sprintf("Applied %d change(s), skipped %d element(s)",
			len(outcome.Changes), len(outcome.Skips)), nil)

	fmt.Printf("Step 5/%d: Re-scoring...\n", totalSteps)
	result.After = aggregator.Score(analyzer.Analyze(p))
	result.Diff = scoring.Diff(result.Before, result.After)
	if opts.Verbose {
		printer.PrintDiff(result.Diff)
	}
	emitProgress(opts, result.RunID, StepRescore,
		fmt.Sprintf("Score %.1f -> %.1f", result.Before.Overall, result.After.Overall), result.Diff)

	fmt.Printf("Step 6/%d: Saving enhanced presentation to %s...\n", totalSteps, opts.OutputPath)
	if err := p.Save(opts.OutputPath); err != nil {
		return fmt.Errorf("failed to save presentation: %w", err)
	}
	emitProgress(opts, result.RunID, StepSave,
		fmt.Sprintf("Saved %s", opts.OutputPath), nil)

	return nil
}

func buildExport(opts *RunOptions, result *RunResult) *report.Export {
	export := &report.Export{
		Source:                opts.InputPath,
		GeneratedAt:           time.Now().UTC(),
		RunID:                 result.RunID,
		Report:                result.Before,
		UnsupportedImageCount: result.UnsupportedImages,
	}
	if result.After != nil {
		export.Report = result.After
		export.Diff = result.Diff
	}
	if result.Outcome != nil {
		export.Changes = result.Outcome.Changes
		export.Skips = result.Outcome.Skips
	}
	return export
}

func writeReports(opts *RunOptions, result *RunResult) error {
	if opts.JSONPath == "" && opts.HTMLPath == "" {
		return nil
	}

	if opts.JSONPath != "" {
		f, err := os.Create(opts.JSONPath)
		if err != nil {
			return fmt.Errorf("failed to create JSON report: %w", err)
		}
		defer f.Close()
		if err := report.WriteJSON(f, result.Export); err != nil {
			return err
		}
		fmt.Printf("Wrote JSON report to %s\n", opts.JSONPath)
	}

	if opts.HTMLPath != "" {
		f, err := os.Create(opts.HTMLPath)
		if err != nil {
			return fmt.Errorf("failed to create HTML report: %w", err)
		}
		defer f.Close()
		if err := report.WriteHTML(f, result.Export); err != nil {
			return err
		}
		fmt.Printf("Wrote HTML report to %s\n", opts.HTMLPath)
	}

	emitProgress(opts, result.RunID, StepReport, "Reports written", nil)
	return nil
}
