package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fitsunits/pkg/errors"
	"github.com/matzehuels/fitsunits/pkg/pipeline"
	"github.com/matzehuels/fitsunits/pkg/units"
)

type translateResult struct {
	Unit       string       `json:"unit"`
	Translated string       `json:"translated"`
	Status     units.Status `json:"status"`
	Message    string       `json:"message"`
}

// translateCommand creates the translate command.
func (c *CLI) translateCommand() *cobra.Command {
	var (
		jsonOut bool
		control int
		s, h, d bool
	)

	cmd := &cobra.Command{
		Use:   "translate <unit>...",
		Short: "Translate non-standard unit aliases to FITS standard units",
		Long: `Translate commonly used but non-standard unit spellings into FITS standard
units, e.g. "DEG" to "deg", "KM/SEC" to "km/s" and "JY/BEAM" to "Jy/beam".

"S", "H" and "D" formally mean Siemens, Henry and Debye. They are translated
to seconds, hours and days only when requested with -S, -H and -D (or the
equivalent --ctrl bits 1, 2 and 4); a warning is printed either way.

Examples:
  fitsunits translate "KM/SEC" "ERGS/CM**2/S"
  fitsunits translate -S "M/S"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(cmd, control, false)
			if s {
				opts.Control |= units.TranslateS
			}
			if h {
				opts.Control |= units.TranslateH
			}
			if d {
				opts.Control |= units.TranslateD
			}
			return c.runTranslate(cmd.Context(), cmd.OutOrStdout(), args, opts, c.jsonOutput(cmd, jsonOut))
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print results as JSON")
	cmd.Flags().IntVar(&control, "ctrl", 0, "unsafe translations to apply: 1 (S), 2 (H), 4 (D), summed")
	cmd.Flags().BoolVarP(&s, "seconds", "S", false, `translate "S" to seconds`)
	cmd.Flags().BoolVarP(&h, "hours", "H", false, `translate "H" to hours`)
	cmd.Flags().BoolVarP(&d, "days", "D", false, `translate "D" to days`)

	return cmd
}

// runTranslate translates each unit string. Unsafe translations are reported
// as warnings; only unbalanced brackets count as failures.
func (c *CLI) runTranslate(ctx context.Context, w io.Writer, unitstrs []string, opts pipeline.Options, asJSON bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	results := make([]translateResult, 0, len(unitstrs))
	failed := 0
	for _, u := range unitstrs {
		out, status, err := runner.Translate(ctx, opts, u)
		res := translateResult{Unit: u, Translated: out, Status: status, Message: status.String()}
		if err != nil {
			res.Message = errors.UserMessage(err)
		}
		if status.IsError() {
			failed++
		}
		results = append(results, res)
	}

	if asJSON {
		if err := writeJSON(w, results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			printTranslateResult(res)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d unit strings could not be translated", failed, len(unitstrs))
	}
	return nil
}

func printTranslateResult(res translateResult) {
	switch {
	case res.Status.IsError():
		printError("%s %s", StyleValue.Render(res.Unit), StyleError.Render(res.Message))
	case res.Status == units.StatusUnsafeTranslation:
		printWarning("%s", res.Message)
		printDetail("%s %s %s", res.Unit, iconArrow, res.Translated)
	case res.Status == units.StatusNoChange:
		printInfo("%s %s", StyleValue.Render(res.Translated), StyleDim.Render("(unchanged)"))
	default:
		printSuccess("%s %s %s", res.Unit, StyleDim.Render(iconArrow), StyleHighlight.Render(res.Translated))
	}
}
