package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fitsunits/pkg/errors"
	"github.com/matzehuels/fitsunits/pkg/pipeline"
	"github.com/matzehuels/fitsunits/pkg/units"
)

// parseResult is the JSON form of one parsed unit string.
type parseResult struct {
	Unit     string             `json:"unit"`
	Status   units.Status       `json:"status"`
	Message  string             `json:"message"`
	Function string             `json:"function,omitempty"`
	Scale    float64            `json:"scale,omitempty"`
	Dims     map[string]float64 `json:"dims,omitempty"`
	Cached   bool               `json:"-"`
}

func newParseResult(unitstr string, spec units.Spec, hit bool, err error) parseResult {
	res := parseResult{Unit: unitstr, Status: units.StatusOf(err), Cached: hit}
	if err != nil {
		res.Message = errors.UserMessage(err)
		return res
	}
	res.Message = res.Status.String()
	res.Function = spec.Func.String()
	res.Scale = spec.Scale
	res.Dims = map[string]float64{}
	for i, e := range spec.Dims {
		if e != 0 {
			res.Dims[units.Dimension(i).String()] = e
		}
	}
	return res
}

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		jsonOut   bool
		translate bool
		control   int
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "parse <unit>...",
		Short: "Parse unit strings into a scale factor and dimensions",
		Long: `Parse FITS unit strings into a scale factor and the exponents of the
fundamental quantities (length, mass, time, ...).

The scale converts a value in the given units to canonical units: "km/s"
has scale 1000 and dimensions "m s-1". Units wrapped in log(), ln() or exp()
report the function separately.

Examples:
  fitsunits parse km/s
  fitsunits parse "erg/(cm2.s.Hz)" "log(MHz)"
  fitsunits parse --translate "KM/SEC"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, control, translate)
			return c.runParse(cmd.Context(), cmd.OutOrStdout(), args, opts, c.jsonOutput(cmd, jsonOut), noCache)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	cmd.Flags().BoolVarP(&translate, "translate", "t", false, "translate non-standard aliases before parsing")
	cmd.Flags().IntVar(&control, "ctrl", 0, "unsafe translations to apply: 1 (S), 2 (H), 4 (D), summed")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runParse parses each unit string and prints the result. Every string is
// attempted; the returned error counts the failures.
func (c *CLI) runParse(ctx context.Context, w io.Writer, unitstrs []string, opts pipeline.Options, asJSON, noCache bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	results := make([]parseResult, 0, len(unitstrs))
	failed := 0
	for _, u := range unitstrs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		spec, hit, err := runner.ParseWithCacheInfo(ctx, opts, u)
		if err != nil {
			failed++
		}
		results = append(results, newParseResult(u, spec, hit, err))
	}

	if asJSON {
		if err := writeJSON(w, results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			printParseResult(res)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d unit strings failed to parse", failed, len(unitstrs))
	}
	return nil
}

func printParseResult(res parseResult) {
	if res.Status.IsError() {
		printError("%s %s", StyleValue.Render(res.Unit), StyleError.Render(fmt.Sprintf("[%d] %s", res.Status, res.Message)))
		return
	}
	printSuccess("%s %s", StyleValue.Render(res.Unit), cacheLabel(res.Cached))
	if res.Function != units.FuncNone.String() {
		printKeyValue("function", res.Function)
	}
	printKeyValue("scale", formatFloat(res.Scale))
	printKeyValue("dims", formatDims(res.Dims))
}

// formatDims lists the dimensions in Dims order as "length 1, time -1".
func formatDims(dims map[string]float64) string {
	if len(dims) == 0 {
		return "dimensionless"
	}
	var s string
	for _, name := range units.Types() {
		e, ok := dims[name]
		if !ok {
			continue
		}
		if s != "" {
			s += ", "
		}
		s += name + " " + formatFloat(e)
	}
	return s
}

// =============================================================================
// Output Helpers
// =============================================================================

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
