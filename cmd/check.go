package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Another0Noob/reading-challenge/internal/catalog"
	"github.com/Another0Noob/reading-challenge/internal/check"
	"github.com/Another0Noob/reading-challenge/internal/discover"
	"github.com/Another0Noob/reading-challenge/internal/progress"
)

func newCheckCommand(opts *options) *cobra.Command {
	var personalYAML string

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the personal log against the catalog",
		Long: `Checks that every slug in the personal YAML file exists in the catalog and
that every movie year refers to an adaptation the catalog lists for that book.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), opts, personalYAML)
		},
	}

	checkCmd.Flags().StringVar(
		&personalYAML,
		"personal-yaml",
		"",
		"path to personal YAML file (default: first YAML in the personal directory)",
	)

	return checkCmd
}

func runCheck(out io.Writer, opts *options, personalYAML string) error {
	logPath, err := resolvePersonalYAML(out, opts, personalYAML)
	if err != nil {
		return err
	}

	books, err := catalog.Load(opts.cfg.Paths.Catalog, opts.codec)
	if err != nil {
		return err
	}
	log, err := progress.Load(logPath, opts.codec)
	if err != nil {
		return err
	}

	res := check.Validate(books, log)
	opts.logger.Debug("validated personal log", "path", logPath, "slugs", res.Checked, "years_checked", res.YearsChecked)

	if len(res.InvalidSlugs) > 0 {
		fmt.Fprintf(out, "Found %d invalid slug(s):\n", len(res.InvalidSlugs))
		for _, s := range res.InvalidSlugs {
			if s.Suggestion != "" {
				fmt.Fprintf(out, "  - %s (did you mean %s?)\n", s.Slug, s.Suggestion)
				continue
			}
			fmt.Fprintf(out, "  - %s\n", s.Slug)
		}
		return res.Err()
	}

	if len(res.InvalidYears) > 0 {
		fmt.Fprintln(out, "Found invalid movie years:")
		for _, bad := range res.InvalidYears {
			years := make([]string, len(bad.Years))
			for i, y := range bad.Years {
				years[i] = string(y)
			}
			fmt.Fprintf(out, "  - %s: %s\n", bad.Slug, strings.Join(years, ", "))
		}
		return res.Err()
	}

	fmt.Fprintf(out, "All %d slugs are valid!\n", res.Checked)
	if res.MoviesTracked {
		fmt.Fprintln(out, "All movie references are valid!")
	}
	return nil
}

// resolvePersonalYAML prefers the flag, then the configured path, then the
// first YAML file in the personal directory.
func resolvePersonalYAML(out io.Writer, opts *options, flagValue string) (string, error) {
	explicit := flagValue
	if explicit == "" {
		explicit = opts.cfg.Paths.PersonalYAML
	}
	path, err := discover.Resolve(explicit, opts.cfg.Paths.PersonalDir, "*.yaml")
	if err != nil {
		return "", err
	}
	if explicit == "" {
		fmt.Fprintf(out, "Using %s\n", path)
	}
	return path, nil
}
