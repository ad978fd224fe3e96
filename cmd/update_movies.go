package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Another0Noob/reading-challenge/internal/catalog"
	"github.com/Another0Noob/reading-challenge/internal/discover"
	"github.com/Another0Noob/reading-challenge/internal/match"
	"github.com/Another0Noob/reading-challenge/internal/progress"
	"github.com/Another0Noob/reading-challenge/internal/watchparser"
)

type updateMoviesFlags struct {
	personalDir  string
	personalYAML string
	export       string
	dryRun       bool
}

func newUpdateMoviesCommand(opts *options) *cobra.Command {
	var flags updateMoviesFlags

	updateCmd := &cobra.Command{
		Use:   "update-movies",
		Short: "Mark movies as watched from an IMDb export",
		Long: `Reads an IMDb export (CSV or TSV with a 'Const' column of tt keys), matches it
against the adaptations listed in the catalog and marks every match as watched
in the personal YAML file. Movies already marked watched are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdateMovies(cmd.OutOrStdout(), opts, flags)
		},
	}

	updateCmd.Flags().StringVar(
		&flags.personalDir,
		"personal-dir",
		"",
		"directory holding the personal YAML and export files; overrides paths.personal_yaml and paths.export from the config (default: personal)",
	)
	updateCmd.Flags().StringVar(
		&flags.personalYAML,
		"personal-yaml",
		"",
		"name of the personal YAML file inside the personal directory (default: first YAML)",
	)
	updateCmd.Flags().StringVarP(
		&flags.export,
		"export",
		"i",
		"",
		"path to the watch-history export (default: first CSV in the personal directory)",
	)
	updateCmd.Flags().BoolVar(
		&flags.dryRun,
		"dry-run",
		false,
		"report changes without writing the personal YAML file",
	)

	return updateCmd
}

func runUpdateMovies(out io.Writer, opts *options, flags updateMoviesFlags) error {
	// An explicit --personal-dir replaces the configured directory and the
	// configured file paths inside it.
	dir := opts.cfg.Paths.PersonalDir
	logPath, exportPath := opts.cfg.Paths.PersonalYAML, opts.cfg.Paths.Export
	if flags.personalDir != "" {
		dir = flags.personalDir
		logPath, exportPath = "", ""
	}
	if flags.personalYAML != "" {
		logPath = filepath.Join(dir, flags.personalYAML)
	}
	if flags.export != "" {
		exportPath = flags.export
	}

	discovered := logPath == ""
	logPath, err := discover.Resolve(logPath, dir, "*.yaml")
	if err != nil {
		return err
	}
	if discovered {
		fmt.Fprintf(out, "Using %s\n", filepath.Base(logPath))
	}

	if exportPath == "" {
		exportPath, err = discover.FirstFile(dir, "*.csv")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Using %s\n", filepath.Base(exportPath))
	}

	fmt.Fprintln(out, "--- Reading Watch History ---")

	ids, err := watchparser.Parse(exportPath)
	if err != nil {
		return fmt.Errorf("parse export %s: %w", exportPath, err)
	}
	watched := watchparser.Set(ids)
	fmt.Fprintf(out, "%d watched movies\n", len(watched))

	books, err := catalog.Load(opts.cfg.Paths.Catalog, opts.codec)
	if err != nil {
		return err
	}
	log, err := progress.Load(logPath, opts.codec)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "--- Matching Movies ---")

	report := match.Import(books, log, watched)
	for _, d := range report.Duplicates {
		opts.logger.Warn("imdb id listed for more than one adaptation, keeping the later one",
			"imdb", d.IMDb,
			"dropped", fmt.Sprintf("%s (%s)", d.Previous.Slug, d.Previous.Year),
			"kept", fmt.Sprintf("%s (%s)", d.Winner.Slug, d.Winner.Year),
		)
	}
	for _, m := range report.MissingID {
		opts.logger.Debug("adaptation without imdb id", "slug", m.Slug, "year", m.Year)
	}

	fmt.Fprintf(out, "%d movies across %d books\n", report.Adaptations, report.BooksWithMovies)
	fmt.Fprintf(out, "%d matches found\n", len(report.Matches))

	if report.Changes == 0 {
		if len(report.Matches) == 0 {
			fmt.Fprintln(out, "No catalog movies in the export")
		} else {
			fmt.Fprintln(out, "All movies already marked")
		}
		return nil
	}

	rows := make([][]string, 0, len(report.Marked))
	for _, m := range report.Marked {
		rows = append(rows, []string{m.Slug, string(m.Year), m.Title, m.IMDb})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Book", "Year", "Title", "IMDb"}, rows))

	if flags.dryRun {
		fmt.Fprintf(out, "Would update %d movies (dry run, %s not written)\n", report.Changes, logPath)
		return nil
	}

	if err := log.Save(logPath, opts.codec); err != nil {
		return err
	}
	opts.logger.Debug("wrote personal log", "path", logPath, "changes", report.Changes)

	fmt.Fprintf(out, "Updated %d movies\n", report.Changes)
	return nil
}
