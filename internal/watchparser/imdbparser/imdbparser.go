package imdbparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// IDColumn holds the tt-key in IMDb ratings, watchlist and list exports.
const IDColumn = "Const"

// ErrMissingColumn is returned when the header has no IDColumn.
var ErrMissingColumn = errors.New("export missing '" + IDColumn + "' column")

// ParseIMDbFile parses an IMDb export from disk. comma selects the field
// separator (',' for the CSV export, '\t' for TSV dumps).
func ParseIMDbFile(path string, comma rune) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ParseIMDbReader(file, comma)
}

// ParseIMDbReader returns the IMDb identifiers found in the export, in file
// order. Rows with an empty identifier are skipped. A UTF-8 or UTF-16 byte
// order mark is accepted.
func ParseIMDbReader(reader io.Reader, comma rune) ([]string, error) {
	r := csv.NewReader(transform.NewReader(reader, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	r.Comma = comma
	r.FieldsPerRecord = -1
	if comma == '\t' {
		r.LazyQuotes = true
	}

	// Read header row (required for mapping). If EOF, return empty slice.
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idIdx := -1
	for i, h := range header {
		if strings.TrimSpace(h) == IDColumn {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		return nil, ErrMissingColumn
	}

	var out []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if idIdx >= len(rec) {
			continue
		}
		id := strings.TrimSpace(rec[idIdx])
		if id == "" {
			continue
		}
		out = append(out, id)
	}

	return out, nil
}
