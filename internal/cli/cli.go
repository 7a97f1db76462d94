package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fitsunits/pkg/buildinfo"
	"github.com/matzehuels/fitsunits/pkg/cache"
	"github.com/matzehuels/fitsunits/pkg/pipeline"
	"github.com/matzehuels/fitsunits/pkg/units"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "fitsunits"

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded from the --config file (or the default location)
	// before any subcommand runs.
	Config     Config
	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "fitsunits parses and converts FITS unit strings",
		Long: `fitsunits parses FITS-style physical unit strings such as "km/s", "log(MHz)"
or "erg/(cm2.s.Hz)" into a scale factor and a vector of fundamental dimensions,
and computes the scale, offset and power needed to convert between them.

Non-standard spellings ("DEG", "KM/SEC", "JY/BEAM") can be translated to their
standard forms first with 'fitsunits translate'.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+defaultConfigHint+")")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug output, including per-batch counters")

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.translateCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.tableCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped by
// build version so that entries written by an older table never resurface.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.Scope())
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(c.Config.CacheDir)
	if err != nil {
		c.Logger.Warnf("Cache disabled: %v", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions merges the config file with command flags. Flags win when
// they were set explicitly.
func (c *CLI) pipelineOptions(cmd *cobra.Command, control int, translate bool) pipeline.Options {
	opts := pipeline.Options{
		Control:   units.Control(c.Config.Control),
		Translate: c.Config.Translate,
		Logger:    c.Logger,
	}
	if cmd.Flags().Changed("ctrl") {
		opts.Control = units.Control(control)
	}
	if cmd.Flags().Changed("translate") {
		opts.Translate = translate
	}
	return opts
}

// jsonOutput reports whether machine-readable output was requested.
func (c *CLI) jsonOutput(cmd *cobra.Command, flag bool) bool {
	if cmd.Flags().Changed("json") {
		return flag
	}
	return c.Config.JSON
}
