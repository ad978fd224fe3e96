package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Another0Noob/reading-challenge/internal/catalog"
	"github.com/Another0Noob/reading-challenge/internal/progress"
	"github.com/Another0Noob/reading-challenge/internal/stats"
)

func newStatisticsCommand(opts *options) *cobra.Command {
	var personalYAML, output string

	statsCmd := &cobra.Command{
		Use:   "statistics",
		Short: "Summarize progress as a Mermaid Sankey diagram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatistics(cmd.OutOrStdout(), opts, personalYAML, output)
		},
	}

	statsCmd.Flags().StringVar(
		&personalYAML,
		"personal-yaml",
		"",
		"path to personal YAML file (default: first YAML in the personal directory)",
	)
	statsCmd.Flags().StringVarP(
		&output,
		"output",
		"o",
		"",
		"output file for the Mermaid diagram (default: personal/statistics.mmd)",
	)

	return statsCmd
}

func runStatistics(out io.Writer, opts *options, personalYAML, output string) error {
	logPath, err := resolvePersonalYAML(out, opts, personalYAML)
	if err != nil {
		return err
	}
	if output == "" {
		output = opts.cfg.Paths.Statistics
	}

	books, err := catalog.Load(opts.cfg.Paths.Catalog, opts.codec)
	if err != nil {
		return err
	}
	log, err := progress.Load(logPath, opts.codec)
	if err != nil {
		return err
	}

	s := stats.Compute(books, log)
	if s.Skipped > 0 {
		opts.logger.Warn("skipped personal log entries missing from the catalog", "count", s.Skipped)
	}

	if err := stats.WriteSankey(output, s); err != nil {
		return err
	}

	fmt.Fprintln(out, "Statistics Summary")
	fmt.Fprintln(out, renderTable(out,
		[]string{"", "Count", "Share"},
		[][]string{
			{"Total Books", strconv.Itoa(s.TotalBooks), ""},
			{"Books Read", strconv.Itoa(s.BooksRead), pct(s.BooksReadPct())},
			{"Books Not Read", strconv.Itoa(s.BooksNotRead), pct(s.BooksNotReadPct())},
			{"Total Movie Adaptations", strconv.Itoa(s.TotalAdaptations), ""},
			{"Movies Watched", strconv.Itoa(s.MoviesWatched), pct(s.MoviesWatchedPct())},
			{"Movies Not Watched", strconv.Itoa(s.MoviesNotWatched()), pct(s.MoviesNotWatchedPct())},
		},
	))

	fmt.Fprintln(out, "Completion Breakdown")
	fmt.Fprintln(out, renderTable(out,
		[]string{"", "Books"},
		[][]string{
			{"Read + Watched All Movies", strconv.Itoa(s.Buckets.FullyCompleted)},
			{"Read + Watched Some Movies", strconv.Itoa(s.Buckets.PartiallyCompleted)},
			{"Read Book Only", strconv.Itoa(s.Buckets.ReadOnly)},
			{"Watched Movies Only", strconv.Itoa(s.Buckets.MoviesOnly)},
			{"Neither Read Nor Watched", strconv.Itoa(s.Buckets.Neither)},
		},
	))

	svg := strings.TrimSuffix(output, filepath.Ext(output)) + ".svg"
	fmt.Fprintf(out, "Mermaid diagram saved to: %s\n", output)
	fmt.Fprintln(out, "View online: https://mermaid.live")
	fmt.Fprintf(out, "Convert to SVG: mmdc -i %s -o %s -b transparent\n", output, svg)
	return nil
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
