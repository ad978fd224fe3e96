package match

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggester proposes the closest catalog slug for an unknown one.
type Suggester struct {
	normalized []string
	owners     map[string][]string // normalized -> original slugs
}

func NewSuggester(slugs []string) *Suggester {
	s := &Suggester{owners: make(map[string][]string, len(slugs))}
	for _, slug := range slugs {
		n := normalizeSlug(slug)
		if n == "" {
			continue
		}
		if _, seen := s.owners[n]; !seen {
			s.normalized = append(s.normalized, n)
		}
		s.owners[n] = append(s.owners[n], slug)
	}
	return s
}

// Suggest returns a catalog slug close to slug. It only answers when exactly
// one slug is the best candidate.
func (s *Suggester) Suggest(slug string) (string, bool) {
	pat := normalizeSlug(slug)
	if pat == "" {
		return "", false
	}

	// Exact after normalization
	if ids := s.owners[pat]; len(ids) == 1 {
		return ids[0], true
	}

	thr := distanceThreshold(len(pat))
	best, bestDist, ties := "", thr+1, 0
	for _, cand := range filterCandidates(s.normalized, pat, thr) {
		d := fuzzy.LevenshteinDistance(pat, cand)
		switch {
		case d < bestDist:
			best, bestDist, ties = cand, d, 1
		case d == bestDist:
			ties++
		}
	}
	if ties != 1 || bestDist > thr {
		return "", false
	}

	ids := s.owners[best]
	if len(ids) != 1 {
		return "", false
	}
	return ids[0], true
}

// distanceThreshold calculates acceptable edit distance (~20% of length)
func distanceThreshold(n int) int {
	th := n / 5
	if th < 1 {
		return 1
	}
	if th > 3 {
		return 3
	}
	return th
}

// filterCandidates pre-filters candidates by length and first rune
func filterCandidates(all []string, pattern string, threshold int) []string {
	if len(all) == 0 {
		return nil
	}

	firstRune := func(s string) rune {
		for _, r := range s {
			return r
		}
		return 0
	}

	fr := firstRune(pattern)
	patLen := len(pattern)

	candidates := make([]string, 0, len(all)/4+1)
	for _, t := range all {
		if abs(len(t)-patLen) > threshold {
			continue
		}
		if firstRune(t) != fr {
			continue
		}
		candidates = append(candidates, t)
	}

	return candidates
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
