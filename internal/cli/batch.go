package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/fitsunits/pkg/io"
	"github.com/matzehuels/fitsunits/pkg/observability"
	"github.com/matzehuels/fitsunits/pkg/pipeline"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	output  string // results file (no file if empty)
	jsonOut bool   // print results as JSON on stdout
	control int
	noCache bool
	refresh bool
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOpts

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Run a file of conversions through the pipeline",
		Long: `Run every conversion listed in a TOML, YAML or JSON batch file.

A batch lists conversions under the "conversion" key:

  [[conversion]]
  name   = "velocity"
  have   = "km/s"
  want   = "m/s"
  values = [1.0, 2.5]

Failing conversions are reported with their status and do not stop the
batch. Results are cached locally; use --refresh to recompute them.

Examples:
  fitsunits batch conversions.toml
  fitsunits batch conversions.yaml -o results.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.pipelineOptions(cmd, opts.control, false)
			popts.Refresh = opts.refresh
			return c.runBatch(cmd.Context(), cmd.OutOrStdout(), args[0], popts, opts, c.jsonOutput(cmd, opts.jsonOut))
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write JSON results to file")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print JSON results instead of a table")
	cmd.Flags().IntVar(&opts.control, "ctrl", 0, "unsafe translations to apply: 1 (S), 2 (H), 4 (D), summed")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results")

	return cmd
}

// runBatch imports the jobs, executes them and writes the results.
func (c *CLI) runBatch(ctx context.Context, w io.Writer, input string, popts pipeline.Options, opts batchOpts, asJSON bool) error {
	jobs, err := pkgio.ImportJobs(input)
	if err != nil {
		return fmt.Errorf("load batch: %w", err)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	counters := &observability.Counters{}
	defer observability.Install(counters)()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Converting %d jobs...", len(jobs)))
	spinner.Start()

	results, err := runner.Execute(ctx, popts, jobs)
	if err != nil {
		spinner.StopWithError("Batch failed")
		return fmt.Errorf("run batch: %w", err)
	}
	spinner.Stop()
	prog.done("Converted batch", "jobs", len(jobs))

	stats := pipeline.Summarize(results)
	c.Logger.Debug("batch counters",
		"parses", counters.Parses.Load(),
		"parse_errors", counters.ParseErrors.Load(),
		"cache_hits", counters.CacheHits.Load(),
		"cache_misses", counters.CacheMisses.Load(),
		"cache_writes", counters.CacheWrites.Load())

	if asJSON {
		if err := pkgio.WriteResults(results, w); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w, renderResults(results))
		printBatchStats(stats)
	}

	if opts.output != "" {
		if err := pkgio.ExportResults(results, opts.output); err != nil {
			return fmt.Errorf("write output %s: %w", opts.output, err)
		}
		if !asJSON {
			printSuccess("Results written")
			printFile(opts.output)
		}
	} else if !asJSON && stats.Jobs > 0 {
		printNewline()
		printNextStep("Export", fmt.Sprintf("%s batch %s -o %s", appName, input, resultsPath(input)))
	}

	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", stats.Failed, stats.Jobs)
	}
	return nil
}

// resultsPath suggests an output path next to the batch file.
func resultsPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".results.json"
}

// renderResults lays out one row per job.
func renderResults(results []pipeline.Result) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := StyleSuccess.Render(markSuccess.icon)
		switch {
		case !r.OK():
			status = StyleError.Render(fmt.Sprintf("%s %d", markError.icon, r.Status))
		case len(r.Warnings) > 0:
			status = StyleWarning.Render(markWarning.icon)
		}

		conv := r.Message
		if r.OK() {
			conv = fmt.Sprintf("%s, %s, %s", formatFloat(r.Scale), formatFloat(r.Offset), formatFloat(r.Power))
		}

		converted := make([]string, len(r.Converted))
		for i, v := range r.Converted {
			converted[i] = formatFloat(float64(v))
		}

		name := r.Name
		if name == "" {
			name = StyleDim.Render("-")
		}
		rows = append(rows, []string{status, name, r.Have, r.Want, conv, strings.Join(converted, " ")})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "Name", "Have", "Want", "Scale, offset, power", "Converted").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}
