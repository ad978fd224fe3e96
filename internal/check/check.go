// Package check verifies that a personal log only refers to books and movie
// years that exist in the catalog.
package check

import (
	"errors"
	"fmt"

	"github.com/Another0Noob/reading-challenge/internal/catalog"
	"github.com/Another0Noob/reading-challenge/internal/match"
	"github.com/Another0Noob/reading-challenge/internal/progress"
)

// ErrValidation is returned by Result.Err when any reference is broken.
var ErrValidation = errors.New("validation failed")

type InvalidSlug struct {
	Slug       string
	Suggestion string // closest catalog slug, empty when none is close enough
}

type InvalidYears struct {
	Slug  string
	Years []catalog.Year
}

type Result struct {
	Checked      int // slugs in the personal log
	InvalidSlugs []InvalidSlug
	InvalidYears []InvalidYears
	// YearsChecked is false when unknown slugs stopped the run before the
	// movie years were looked at.
	YearsChecked bool
	// MoviesTracked is set when at least one entry lists movie years.
	MoviesTracked bool
}

func (r Result) OK() bool {
	return len(r.InvalidSlugs) == 0 && len(r.InvalidYears) == 0
}

func (r Result) Err() error {
	switch {
	case len(r.InvalidSlugs) > 0:
		return fmt.Errorf("%w: %d invalid slug(s)", ErrValidation, len(r.InvalidSlugs))
	case len(r.InvalidYears) > 0:
		return fmt.Errorf("%w: invalid movie years in %d book(s)", ErrValidation, len(r.InvalidYears))
	default:
		return nil
	}
}

// Validate collects every unknown slug in log. Only when there are none does
// it go on to collect, per book, the movie years the catalog does not list.
// Books without a movies key in the catalog are not year checked.
func Validate(c *catalog.Catalog, log *progress.Log) Result {
	entries := log.Entries()
	res := Result{Checked: len(entries)}

	var suggester *match.Suggester
	for _, e := range entries {
		if len(e.Movies) > 0 {
			res.MoviesTracked = true
		}
		if c.Has(e.Slug) {
			continue
		}
		if suggester == nil {
			suggester = match.NewSuggester(c.Slugs())
		}
		suggestion, _ := suggester.Suggest(e.Slug)
		res.InvalidSlugs = append(res.InvalidSlugs, InvalidSlug{Slug: e.Slug, Suggestion: suggestion})
	}
	if len(res.InvalidSlugs) > 0 {
		return res
	}

	res.YearsChecked = true
	for _, e := range entries {
		if len(e.Movies) == 0 {
			continue
		}
		book, ok := c.Book(e.Slug)
		if !ok || !book.DeclaresMovies() {
			continue
		}
		valid := book.Years()

		var bad []catalog.Year
		for _, m := range e.Movies {
			if _, ok := valid[m.Year]; !ok {
				bad = append(bad, m.Year)
			}
		}
		if len(bad) > 0 {
			res.InvalidYears = append(res.InvalidYears, InvalidYears{Slug: e.Slug, Years: bad})
		}
	}

	return res
}
