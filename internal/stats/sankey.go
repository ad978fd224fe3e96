package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenderSankey returns a Mermaid sankey-beta document for s.
func RenderSankey(s Stats) string {
	var b strings.Builder

	b.WriteString("%%{init: {'theme':'base'}}%%\n")
	b.WriteString("sankey-beta\n")

	b.WriteString("\n%% Books flow\n")
	edge(&b, "All Books", "Books Read", s.BooksRead)
	edge(&b, "All Books", "Books Not Read", s.BooksNotRead)

	b.WriteString("\n%% Books Read breakdown\n")
	edge(&b, "Books Read", FullyCompleted.String(), s.Buckets.FullyCompleted)
	edge(&b, "Books Read", PartiallyCompleted.String(), s.Buckets.PartiallyCompleted)
	edge(&b, "Books Read", ReadOnly.String(), s.Buckets.ReadOnly)

	b.WriteString("\n%% Books Not Read breakdown\n")
	edge(&b, "Books Not Read", MoviesOnly.String(), s.Buckets.MoviesOnly)
	edge(&b, "Books Not Read", Neither.String(), s.Buckets.Neither)

	b.WriteString("\n%% Movies flow\n")
	edge(&b, "All Movies", "Movies Watched", s.MoviesWatched)
	edge(&b, "All Movies", "Movies Not Watched", s.MoviesNotWatched())

	return b.String()
}

func edge(b *strings.Builder, from, to string, value int) {
	fmt.Fprintf(b, "%s,%s,%d\n", from, to, value)
}

// WriteSankey renders s to path, creating the parent directory and
// overwriting any existing file.
func WriteSankey(path string, s Stats) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(RenderSankey(s)), 0o644); err != nil {
		return fmt.Errorf("write diagram %s: %w", path, err)
	}
	return nil
}
