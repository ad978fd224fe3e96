package match

import (
	"sort"
	"strings"

	"github.com/Another0Noob/reading-challenge/internal/catalog"
	"github.com/Another0Noob/reading-challenge/internal/progress"
)

// BuildIndex maps every adaptation identifier in the catalog to its book and
// year. Catalog order is scanned front to back and a repeated identifier is
// reassigned to the later adaptation; each reassignment is kept in Duplicates.
func BuildIndex(c *catalog.Catalog) Index {
	idx := Index{ByID: make(map[string]Ref)}

	for _, b := range c.Books {
		if b.DeclaresMovies() {
			idx.BooksWithMovies++
		}
		for _, m := range b.Movies {
			idx.Adaptations++
			ref := Ref{Slug: b.Slug, Year: m.Year, Title: m.Title}

			id := strings.TrimSpace(m.IMDb)
			if id == "" {
				idx.MissingID = append(idx.MissingID, ref)
				continue
			}
			if prev, seen := idx.ByID[id]; seen {
				idx.Duplicates = append(idx.Duplicates, Duplicate{IMDb: id, Previous: prev, Winner: ref})
			}
			idx.ByID[id] = ref
		}
	}

	return idx
}

// Intersect returns the adaptations whose identifier appears in watched,
// ordered by slug then year.
func Intersect(idx Index, watched map[string]struct{}) []Match {
	matches := make([]Match, 0, len(watched))
	for id := range watched {
		if ref, ok := idx.ByID[id]; ok {
			matches = append(matches, Match{IMDb: id, Ref: ref})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Slug != matches[j].Slug {
			return matches[i].Slug < matches[j].Slug
		}
		return matches[i].Year < matches[j].Year
	})
	return matches
}

// Merge marks every match as watched in the personal log and returns the
// matches that actually changed something. Already watched years are never
// touched, so the result does not depend on the order of matches.
func Merge(log *progress.Log, matches []Match) []Match {
	var marked []Match
	for _, m := range matches {
		if log.MarkWatched(m.Slug, m.Year) {
			marked = append(marked, m)
		}
	}
	return marked
}

// Import reconciles a watch-history export against the catalog and applies
// the result to log in memory. Persisting log is left to the caller and
// should only happen when Report.Changes is non-zero.
func Import(c *catalog.Catalog, log *progress.Log, watched map[string]struct{}) Report {
	idx := BuildIndex(c)
	matches := Intersect(idx, watched)
	marked := Merge(log, matches)

	return Report{
		Records:         len(watched),
		Adaptations:     idx.Adaptations,
		BooksWithMovies: idx.BooksWithMovies,
		Duplicates:      idx.Duplicates,
		MissingID:       idx.MissingID,
		Matches:         matches,
		Marked:          marked,
		Changes:         len(marked),
	}
}
