package match

import "github.com/Another0Noob/reading-challenge/internal/catalog"

// Ref points at one adaptation in the catalog.
type Ref struct {
	Slug  string
	Year  catalog.Year
	Title string
}

// Duplicate records an identifier claimed by more than one adaptation.
// Winner is the later adaptation in catalog order and is the one kept.
type Duplicate struct {
	IMDb     string
	Previous Ref
	Winner   Ref
}

type Index struct {
	ByID            map[string]Ref // imdb id -> adaptation
	Adaptations     int            // adaptations scanned
	BooksWithMovies int            // catalog entries that declare movies
	Duplicates      []Duplicate
	MissingID       []Ref // adaptations without an imdb id
}

type Match struct {
	IMDb string
	Ref
}

type Report struct {
	Records         int // distinct identifiers in the export
	Adaptations     int
	BooksWithMovies int
	Duplicates      []Duplicate
	MissingID       []Ref
	Matches         []Match
	Marked          []Match // newly set to watched
	Changes         int
}
