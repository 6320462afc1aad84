// Package recommend suggests unread books from a user's view history.
//
// The tags of the most recently viewed books form an interest set. Unviewed
// books sharing tags with it are ranked by how many they share, newest first
// on ties. When nothing shares a tag, the newest unviewed books are suggested
// instead.
package recommend

import (
	"cmp"
	"slices"

	"github.com/bookmatch/bookmatch/internal/catalog"
)

const (
	// DefaultCount is the number of recommendations returned.
	DefaultCount = 3
	// DefaultWindow is the number of latest history entries whose tags are used.
	DefaultWindow = 3
)

// Strategy names how a result was produced.
type Strategy string

const (
	StrategyTags   Strategy = "tags"
	StrategyRecent Strategy = "recent"
	StrategyNone   Strategy = "none"
)

// Options controls the result size and the history window.
type Options struct {
	Count  int
	Window int
}

// DefaultOptions returns the standard count and window.
func DefaultOptions() Options {
	return Options{Count: DefaultCount, Window: DefaultWindow}
}

// Item is one recommended book.
type Item struct {
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	SharedTags  int    `json:"sharedTags,omitempty"`
	CreatedDate string `json:"createdDate,omitempty"`
}

// Result is the ranked recommendation list.
type Result struct {
	Items     []Item   `json:"items"`
	Strategy  Strategy `json:"strategy"`
	Interests []string `json:"interests,omitempty"`
}

// Recommend ranks books against history. Books already in history are never
// returned.
func Recommend(history catalog.History, books []catalog.Book, opts Options) Result {
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}

	byISBN := make(map[string]catalog.Book, len(books))
	for _, book := range books {
		byISBN[book.ISBN] = book
	}

	interests := interestSet(history, byISBN, opts.Window)

	unviewed := make([]catalog.Book, 0, len(books))
	for _, book := range books {
		if !history.Contains(book.ISBN) {
			unviewed = append(unviewed, book)
		}
	}

	if items := byTags(unviewed, interests, opts.Count); len(items) > 0 {
		return Result{Items: items, Strategy: StrategyTags, Interests: sortedKeys(interests)}
	}

	if items := byRecency(unviewed, opts.Count); len(items) > 0 {
		return Result{Items: items, Strategy: StrategyRecent, Interests: sortedKeys(interests)}
	}

	return Result{Items: []Item{}, Strategy: StrategyNone}
}

// interestSet unions the tags of the latest window history entries. Entries
// that are not in the catalog are skipped.
func interestSet(history catalog.History, byISBN map[string]catalog.Book, window int) map[string]struct{} {
	interests := make(map[string]struct{})
	for _, isbn := range history.Recent(window) {
		book, ok := byISBN[isbn]
		if !ok {
			continue
		}
		for _, tag := range book.Tags {
			if tag != "" {
				interests[tag] = struct{}{}
			}
		}
	}
	return interests
}

func byTags(books []catalog.Book, interests map[string]struct{}, count int) []Item {
	if len(interests) == 0 {
		return nil
	}

	var items []Item
	for _, book := range books {
		shared := 0
		for tag := range book.TagSet() {
			if _, ok := interests[tag]; ok {
				shared++
			}
		}
		if shared == 0 {
			continue
		}
		items = append(items, Item{
			ISBN:        book.ISBN,
			Title:       book.Title,
			SharedTags:  shared,
			CreatedDate: book.CreatedDate,
		})
	}

	slices.SortFunc(items, func(a, b Item) int {
		if c := cmp.Compare(b.SharedTags, a.SharedTags); c != 0 {
			return c
		}
		if c := cmp.Compare(b.CreatedDate, a.CreatedDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ISBN, b.ISBN)
	})

	return head(items, count)
}

func byRecency(books []catalog.Book, count int) []Item {
	items := make([]Item, 0, len(books))
	for _, book := range books {
		items = append(items, Item{ISBN: book.ISBN, Title: book.Title, CreatedDate: book.CreatedDate})
	}

	slices.SortFunc(items, func(a, b Item) int {
		if c := cmp.Compare(b.CreatedDate, a.CreatedDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ISBN, b.ISBN)
	})

	return head(items, count)
}

func head(items []Item, n int) []Item {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
