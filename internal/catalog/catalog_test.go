package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Another0Noob/reading-challenge/internal/document"
)

func decode(t *testing.T, text string) (*Catalog, error) {
	t.Helper()
	doc, err := document.DefaultCodec().Decode(strings.NewReader(text))
	require.NoError(t, err)
	return FromNode(doc)
}

func TestFromNode(t *testing.T) {
	c, err := decode(t, `books:
  - slug: dune
    title: Dune
    author: Frank Herbert
    movies:
      - year: 1984
        title: Dune
        imdb: tt0087182
      - year: 2021
        title: Dune
        imdb: tt1160419
  - slug: emma
    movies: []
  - slug: beloved
`)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"dune", "emma", "beloved"}, c.Slugs())

	dune, ok := c.Book("dune")
	require.True(t, ok)
	assert.Equal(t, "Frank Herbert", dune.Author)
	require.Len(t, dune.Movies, 2)
	assert.Equal(t, Year("2021"), dune.Movies[1].Year)
	assert.Equal(t, "tt1160419", dune.Movies[1].IMDb)
	assert.Contains(t, dune.Years(), Year("1984"))
	assert.Equal(t, 2, dune.Line)

	emma, _ := c.Book("emma")
	assert.True(t, emma.HasMoviesKey)
	assert.Empty(t, emma.Movies)

	beloved, _ := c.Book("beloved")
	assert.False(t, beloved.HasMoviesKey)

	assert.True(t, c.Has("emma"))
	assert.False(t, c.Has("ulysses"))
}

func TestFromNodeRejectsBrokenInvariants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "no books key", text: "titles: []\n", want: "missing books"},
		{name: "books not a list", text: "books: dune\n", want: "must be a list"},
		{name: "entry not a mapping", text: "books:\n  - dune\n", want: "must be a mapping"},
		{name: "missing slug", text: "books:\n  - title: Dune\n", want: "without slug"},
		{
			name: "duplicate slug",
			text: "books:\n  - slug: dune\n  - slug: dune\n",
			want: `slug "dune" already used`,
		},
		{
			name: "duplicate year",
			text: "books:\n  - slug: dune\n    movies:\n      - {year: 1984, imdb: a}\n      - {year: 1984, imdb: b}\n",
			want: "year 1984 listed twice",
		},
		{
			name: "year not scalar",
			text: "books:\n  - slug: dune\n    movies:\n      - {year: [1984], imdb: a}\n",
			want: "year must be a scalar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(t, tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "expected ErrInvalid, got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "reading-challenge.yaml"), document.DefaultCodec())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNewEnforcesInvariants(t *testing.T) {
	_, err := New([]Book{{Slug: "a"}, {Slug: "a"}})
	require.ErrorIs(t, err, ErrInvalid)

	c, err := New([]Book{{Slug: " a "}})
	require.NoError(t, err)
	assert.True(t, c.Has("a"))
}

func TestDeclaresMovies(t *testing.T) {
	assert.False(t, Book{Slug: "beloved"}.DeclaresMovies())
	assert.True(t, Book{Slug: "emma", HasMoviesKey: true}.DeclaresMovies())
	assert.True(t, Book{Slug: "dune", Movies: []Movie{{Year: "2021"}}}.DeclaresMovies())
}
