// Package search ranks catalog titles against a query by Jaro-Winkler similarity.
package search

import (
	"cmp"
	"slices"

	"github.com/bookmatch/bookmatch/internal/catalog"
	"github.com/bookmatch/bookmatch/internal/normalize"
)

const (
	// DefaultThreshold is the similarity a title must exceed to be returned.
	DefaultThreshold = 0.67
	// DefaultLimit caps the number of results.
	DefaultLimit = 10

	prefixScale = 0.1
	maxPrefix   = 4
)

// Options controls ranking. A Limit of zero or less returns every match.
type Options struct {
	Limit     int
	Threshold float64
}

// DefaultOptions returns the standard limit and threshold.
func DefaultOptions() Options {
	return Options{Limit: DefaultLimit, Threshold: DefaultThreshold}
}

// Result is one ranked match.
type Result struct {
	ISBN   string  `json:"isbn"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Score  float64 `json:"score"`
}

// Search scores every title in books against query and returns the matches
// above the threshold, best first. Equal scores are ordered by ISBN.
func Search(query string, books []catalog.Book, opts Options) []Result {
	q := normalize.Text(query)

	results := make([]Result, 0)
	for _, book := range books {
		score := JaroWinkler(q, normalize.Text(book.Title))
		if score <= opts.Threshold {
			continue
		}
		results = append(results, Result{ISBN: book.ISBN, Title: book.Title, Author: book.Author, Score: score})
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ISBN, b.ISBN)
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

// Similarity normalizes both strings and returns their Jaro-Winkler similarity.
func Similarity(a, b string) float64 {
	return JaroWinkler(normalize.Text(a), normalize.Text(b))
}

// JaroWinkler returns the Jaro similarity of a and b boosted by their common
// prefix of up to four runes.
func JaroWinkler(a, b string) float64 {
	jaro := Jaro(a, b)
	if jaro == 0 {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	prefix := 0
	for prefix < min(len(ra), len(rb), maxPrefix) && ra[prefix] == rb[prefix] {
		prefix++
	}

	return jaro + prefixScale*float64(prefix)*(1-jaro)
}

// Jaro returns the Jaro similarity of a and b in [0, 1], comparing runes.
// Two empty strings are identical; one empty string matches nothing.
func Jaro(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	if la == 0 && lb == 0 {
		return 1
	}
	if la == 0 || lb == 0 {
		return 0
	}

	window := max(max(la, lb)/2-1, 0)

	matchedA := make([]bool, la)
	matchedB := make([]bool, lb)
	matches := 0

	for i := range ra {
		lo := max(0, i-window)
		hi := min(lb, i+window+1)
		for j := lo; j < hi; j++ {
			if matchedB[j] || ra[i] != rb[j] {
				continue
			}
			matchedA[i] = true
			matchedB[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0
	}

	// Count matched runes that appear in a different order.
	outOfOrder := 0
	k := 0
	for i := range ra {
		if !matchedA[i] {
			continue
		}
		for !matchedB[k] {
			k++
		}
		if ra[i] != rb[k] {
			outOfOrder++
		}
		k++
	}

	m := float64(matches)
	t := float64(outOfOrder) / 2
	return (m/float64(la) + m/float64(lb) + (m-t)/m) / 3
}
