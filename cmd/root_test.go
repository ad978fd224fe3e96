package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Another0Noob/reading-challenge/internal/check"
	"github.com/Another0Noob/reading-challenge/internal/watchparser/imdbparser"
)

const testCatalog = `books:
  - slug: dune
    title: Dune
    movies:
      - year: 1984
        title: Dune
        imdb: tt0087182
      - year: 2021
        title: Dune
        imdb: tt1160419
  - slug: emma
    title: Emma
  - slug: beloved
    title: Beloved
    movies:
      - year: 1998
        title: Beloved
        imdb: tt0120603
`

// setupWorkspace creates a challenge checkout in a temp dir and makes it the
// working directory.
func setupWorkspace(t *testing.T, personal string) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)

	writeFile(t, filepath.Join(dir, "reading-challenge.yaml"), testCatalog)
	if personal != "" {
		writeFile(t, filepath.Join(dir, "personal", "me.yaml"), personal)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"missing file", fmt.Errorf("load: %w", os.ErrNotExist), exitMissingInput},
		{"missing column", fmt.Errorf("parse export: %w", imdbparser.ErrMissingColumn), exitMalformedInput},
		{"validation", fmt.Errorf("%w: 1 invalid slug(s)", check.ErrValidation), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRootWithoutSubcommandPrintsHelp(t *testing.T) {
	setupWorkspace(t, "")
	code, stdout, _ := execute(t)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "update-movies")
}

func TestMissingCatalogExitsWithMissingInput(t *testing.T) {
	dir := setupWorkspace(t, "read|watched: {}\n")
	require.NoError(t, os.Remove(filepath.Join(dir, "reading-challenge.yaml")))

	code, _, stderr := execute(t, "check")
	assert.Equal(t, exitMissingInput, code)
	assert.Contains(t, stderr, "reading-challenge.yaml")
}

func TestConfigFileOverridesCatalogPath(t *testing.T) {
	dir := setupWorkspace(t, "read|watched:\n  dune: {book: true}\n")
	require.NoError(t, os.Rename(filepath.Join(dir, "reading-challenge.yaml"), filepath.Join(dir, "books.yaml")))
	writeFile(t, filepath.Join(dir, "challenge.ini"), "[paths]\ncatalog = books.yaml\n")

	code, stdout, stderr := execute(t, "--config", "challenge.ini", "check")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "All 1 slugs are valid!")
}

func TestUnknownLogLevelFlagFails(t *testing.T) {
	setupWorkspace(t, "read|watched: {}\n")

	code, _, stderr := execute(t, "--log-level", "verbose", "check")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, `logging.level: unsupported value "verbose"`)
}
