// Package watchparser reads watch-history exports into a list of external
// movie identifiers.
package watchparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Another0Noob/reading-challenge/internal/watchparser/imdbparser"
)

// Parse picks a parser from the file extension.
func Parse(path string) ([]string, error) {
	comma, err := separator(path)
	if err != nil {
		return nil, err
	}
	return imdbparser.ParseIMDbFile(path, comma)
}

// Set collapses identifiers into a set; order and duplicates are irrelevant.
func Set(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func separator(path string) (rune, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".csv":
		return ',', nil
	case ".tsv":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unknown file format: %s (must be .csv or .tsv)", ext)
	}
}
