package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Another0Noob/reading-challenge/internal/catalog"
	"github.com/Another0Noob/reading-challenge/internal/config"
	"github.com/Another0Noob/reading-challenge/internal/document"
	"github.com/Another0Noob/reading-challenge/internal/logging"
	"github.com/Another0Noob/reading-challenge/internal/progress"
	"github.com/Another0Noob/reading-challenge/internal/watchparser/imdbparser"
)

const (
	exitOK             = 0
	exitFailure        = 1 // validation failure or any other error
	exitMissingInput   = 2
	exitMalformedInput = 3
)

// options is shared by every subcommand and filled in before any of them run.
type options struct {
	cfgFile     string
	catalogPath string
	logLevel    string

	cfg    config.Config
	codec  document.Codec
	logger *log.Logger
}

func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	if o.catalogPath != "" {
		cfg.Paths.Catalog = o.catalogPath
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}

	o.cfg = cfg
	o.codec = document.Codec{Indent: cfg.YAML.Indent}
	o.logger = logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Prefix: "reading-challenge",
	}).With("run", uuid.NewString()[:8])
	return nil
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "reading-challenge",
		Short: "Track progress through the reading challenge",
		Long: `Keeps a personal read/watched log in line with the reading-challenge catalog.

  check          validate the personal log against the catalog
  update-movies  mark movies watched from an IMDb export
  statistics     summarize progress as a Mermaid Sankey diagram`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(
		&opts.cfgFile,
		"config",
		"c",
		"",
		"path to config file (default: ./"+config.DefaultPath+" if present)",
	)
	rootCmd.PersistentFlags().StringVar(
		&opts.catalogPath,
		"catalog",
		"",
		"path to the catalog YAML (default: reading-challenge.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&opts.logLevel,
		"log-level",
		"",
		"log level: debug, info, warn or error",
	)

	rootCmd.AddCommand(newCheckCommand(opts))
	rootCmd.AddCommand(newUpdateMoviesCommand(opts))
	rootCmd.AddCommand(newStatisticsCommand(opts))

	return rootCmd
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, fs.ErrNotExist):
		return exitMissingInput
	case errors.Is(err, imdbparser.ErrMissingColumn),
		errors.Is(err, catalog.ErrInvalid),
		errors.Is(err, progress.ErrInvalid):
		return exitMalformedInput
	default:
		return exitFailure
	}
}
