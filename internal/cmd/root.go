// Package cmd provides CLI command implementations.
package cmd

import (
	"net/http"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/saturncloud/examplecheck/internal/config"
	"github.com/saturncloud/examplecheck/internal/output"
)

// defaultHTTPTimeout bounds every remote request.
const defaultHTTPTimeout = 60 * time.Second

// GlobalConfig holds CLI-wide state resolved during PersistentPreRunE and
// passed explicitly into every sub-command constructor.
type GlobalConfig struct {
	// ConfigPath is the raw --config flag value.
	ConfigPath string
	Verbose    bool
	Timestamps bool

	// Fs is where examples, catalogs and config files are read from.
	Fs afero.Fs

	// Client performs every HTTP request.
	Client *http.Client
}

// NewRootCmd creates the root command for examplecheck.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&GlobalConfig{
		Fs:     afero.NewOsFs(),
		Client: &http.Client{Timeout: defaultHTTPTimeout},
	})
}

func newRootCmd(g *GlobalConfig) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "examplecheck",
		Short: "Validate an examples repository",
		Long: `examplecheck validates a repository of example projects.

Every example directory is checked for naming, README files, clean notebooks
and a valid .saturn/saturn.json recipe. The template catalogs next to the
examples directory are checked for unique weights, reachable thumbnails and
references to existing examples.

The exit status is the number of problems found, so 0 means the repository
is clean.`,
		Example: `  examplecheck --examples-dir examples
  examplecheck --examples-dir examples --skip-image-check
  EXAMPLECHECK_EXAMPLES_DIR=examples examplecheck -o json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			initializeLogging(c, g)
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error {
			return runCheck(c, g)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.ConfigPath, "config", "", "Path to config file (env: "+config.ConfigEnvVar+")")
	rootCmd.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&g.Timestamps, "timestamps", true, "Show timestamps in log output")

	addCheckFlags(rootCmd)

	rootCmd.AddCommand(NewImageCmd(g))
	rootCmd.AddCommand(NewTemplatesCmd(g))
	rootCmd.AddCommand(NewVersionCmd(g))

	return rootCmd
}

// initializeLogging sets up the global logger from the persistent flags.
func initializeLogging(c *cobra.Command, g *GlobalConfig) {
	logCfg := output.LogConfig{
		Verbose: g.Verbose,
		Writer:  c.ErrOrStderr(),
	}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(g.Timestamps)
	}
	output.SetupLogging(logCfg)
}

// loadConfig builds the effective configuration for c. Flags registered on c
// are bound to their keys; the result is not validated.
func loadConfig(c *cobra.Command, g *GlobalConfig) (*config.Config, error) {
	loader := config.NewLoaderWithFs(g.Fs)

	for key, name := range flagKeys {
		if f := c.Flags().Lookup(name); f != nil {
			if err := loader.BindFlag(key, f); err != nil {
				return nil, err
			}
		}
	}
	if c.Flags().Changed(flagNoThumbnails) {
		noThumbs, err := c.Flags().GetBool(flagNoThumbnails)
		if err != nil {
			return nil, err
		}
		loader.SetFromFlag(config.KeyCheckThumbnails, !noThumbs)
	}

	cfg, err := loader.Load(g.ConfigPath)
	if err != nil {
		return nil, err
	}

	if g.Verbose {
		config.LogResolvedValues(loader.Resolve())
	}
	return cfg, nil
}
