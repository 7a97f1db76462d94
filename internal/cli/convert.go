package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fitsunits/pkg/pipeline"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		jsonOut bool
		control int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "convert <have> <want> [value...]",
		Short: "Compute the conversion between two unit strings",
		Long: `Compute the scale, offset and power that convert a value from one set of
units to another:

  want_value = (scale * have_value + offset) ^ power

Aliases such as "KM/SEC" are translated before parsing. Values given after
the unit strings are converted and printed.

Examples:
  fitsunits convert km/s m/s 1 2.5
  fitsunits convert "log(MHz)" "ln(Hz)"
  fitsunits convert --ctrl 1 "M/S" "km/h"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args[2:])
			if err != nil {
				return err
			}
			job := pipeline.Job{Have: args[0], Want: args[1], Values: values}
			opts := c.pipelineOptions(cmd, control, false)
			return c.runConvert(cmd.Context(), cmd.OutOrStdout(), job, opts, c.jsonOutput(cmd, jsonOut), noCache)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	cmd.Flags().IntVar(&control, "ctrl", 0, "unsafe translations to apply: 1 (S), 2 (H), 4 (D), summed")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func parseValues(args []string) ([]float64, error) {
	values := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", a, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// runConvert runs a single job through the pipeline and prints the result.
func (c *CLI) runConvert(ctx context.Context, w io.Writer, job pipeline.Job, opts pipeline.Options, asJSON, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	results, err := runner.Execute(ctx, opts, []pipeline.Job{job})
	if err != nil {
		return err
	}
	res := results[0]

	if asJSON {
		if err := writeJSON(w, res); err != nil {
			return err
		}
	} else {
		printConvertResult(res)
	}

	if !res.OK() {
		return fmt.Errorf("convert %s to %s: status %d", job.Have, job.Want, res.Status)
	}
	return nil
}

func printConvertResult(res pipeline.Result) {
	for _, warning := range res.Warnings {
		printWarning("%s", warning)
	}
	if !res.OK() {
		printError("%s %s %s %s", res.Have, StyleDim.Render(iconArrow), res.Want,
			StyleError.Render(fmt.Sprintf("[%d] %s", res.Status, res.Message)))
		return
	}

	printSuccess("%s %s %s %s", StyleValue.Render(res.Have), StyleDim.Render(iconArrow), StyleValue.Render(res.Want), cacheLabel(res.CacheHit))
	printKeyValue("scale", StyleNumber.Render(formatFloat(res.Scale)))
	printKeyValue("offset", StyleNumber.Render(formatFloat(res.Offset)))
	printKeyValue("power", StyleNumber.Render(formatFloat(res.Power)))
	for i, v := range res.Values {
		printDetail("%s %s %s", formatFloat(v), iconArrow, formatFloat(float64(res.Converted[i])))
	}
}
