package imdbparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ratingsExport = `Const,Your Rating,Date Rated,Title,URL,Title Type
tt1160419,8,2021-10-24,Dune: Part One,https://www.imdb.com/title/tt1160419/,Movie
tt0087182,5,2020-01-02,Dune,https://www.imdb.com/title/tt0087182/,Movie
,7,2020-01-02,Broken Row,,Movie
tt1160419,8,2021-10-24,Dune: Part One,https://www.imdb.com/title/tt1160419/,Movie
`

func TestParseIMDbReader(t *testing.T) {
	ids, err := ParseIMDbReader(strings.NewReader(ratingsExport), ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"tt1160419", "tt0087182", "tt1160419"}, ids)
}

func TestParseIMDbReaderStripsBOM(t *testing.T) {
	ids, err := ParseIMDbReader(strings.NewReader("\ufeffConst,Title\ntt0087182,Dune\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"tt0087182"}, ids)
}

func TestParseIMDbReaderTSV(t *testing.T) {
	ids, err := ParseIMDbReader(strings.NewReader("Title\tConst\nDune \"1984\"\ttt0087182\n"), '\t')
	require.NoError(t, err)
	assert.Equal(t, []string{"tt0087182"}, ids)
}

func TestParseIMDbReaderMissingColumn(t *testing.T) {
	_, err := ParseIMDbReader(strings.NewReader("Title,Year\nDune,1984\n"), ',')
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestParseIMDbReaderHeaderIsCaseSensitive(t *testing.T) {
	_, err := ParseIMDbReader(strings.NewReader(" const ,Title\ntt0087182,Dune\n"), ',')
	require.ErrorIs(t, err, ErrMissingColumn)

	ids, err := ParseIMDbReader(strings.NewReader(" Const ,Title\ntt0087182,Dune\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"tt0087182"}, ids)
}

func TestParseIMDbReaderEmpty(t *testing.T) {
	ids, err := ParseIMDbReader(strings.NewReader(""), ',')
	require.NoError(t, err)
	assert.Empty(t, ids)
}
