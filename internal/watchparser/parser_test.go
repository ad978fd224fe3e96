package watchparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "ratings.CSV")
	tsvPath := filepath.Join(dir, "history.tsv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Const,Title\ntt0087182,Dune\n"), 0o644))
	require.NoError(t, os.WriteFile(tsvPath, []byte("Const\tTitle\ntt1160419\tDune\n"), 0o644))

	ids, err := Parse(csvPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"tt0087182"}, ids)

	ids, err = Parse(tsvPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"tt1160419"}, ids)
}

func TestParseRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.json")
	require.NoError(t, os.WriteFile(path, []byte("Const\n"), 0o644))

	_, err := Parse(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown file format")
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "ratings.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSet(t *testing.T) {
	set := Set([]string{"tt1", "tt2", "tt1"})
	assert.Len(t, set, 2)
	assert.Contains(t, set, "tt2")
}
