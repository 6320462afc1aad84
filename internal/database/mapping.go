package database

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/bookmatch/bookmatch/internal/catalog"
)

// bookRecord is the on-disk shape of a book inside books.json.
type bookRecord struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Date        string  `json:"date"`
	CreatedDate string  `json:"createdDate"`
	Publisher   string  `json:"publisher"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"`
	Tags        tagList `json:"tags"`
	Rating      float64 `json:"rating"`
}

// tagList accepts either an array of strings or a single string. Non-string
// array elements are skipped.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}

	if data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*t = nil
		if single != "" {
			*t = tagList{single}
		}
		return nil
	}

	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(tagList, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	*t = out
	return nil
}

// bookFromRecord maps a stored record onto a Book keyed by isbn.
func bookFromRecord(isbn string, rec bookRecord) catalog.Book {
	book := catalog.Book{
		ISBN:        isbn,
		Title:       rec.Title,
		Author:      rec.Author,
		Year:        parseYear(rec.Date),
		Publisher:   rec.Publisher,
		Genre:       rec.Genre,
		Description: rec.Description,
		Rating:      rec.Rating,
		CreatedDate: rec.CreatedDate,
	}
	book.SetTags(rec.Tags)
	return book
}

// toBookRecord maps a Book to its stored shape.
func toBookRecord(book catalog.Book) bookRecord {
	tags := make(tagList, 0, len(book.Tags))
	tags = append(tags, book.Tags...)

	return bookRecord{
		Title:       book.Title,
		Author:      book.Author,
		Date:        strconv.Itoa(book.Year),
		CreatedDate: book.CreatedDate,
		Publisher:   book.Publisher,
		Description: book.Description,
		Genre:       book.Genre,
		Tags:        tags,
		Rating:      book.Rating,
	}
}

// decodeBook decodes one books.json value.
func decodeBook(isbn string, raw json.RawMessage) (catalog.Book, error) {
	var rec bookRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return catalog.Book{}, err
	}
	return bookFromRecord(isbn, rec), nil
}

// ParseBooks decodes a books document such as books.json or a scraper export.
// Unlike Store.Load it fails on a document that is not a JSON object. Entries
// that cannot be decoded are skipped and their keys returned in skipped.
func ParseBooks(data []byte) (books []catalog.Book, skipped []string, err error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse books document: %w", err)
	}

	keys := make([]string, 0, len(doc))
	for isbn := range doc {
		keys = append(keys, isbn)
	}
	slices.Sort(keys)

	for _, isbn := range keys {
		book, err := decodeBook(isbn, doc[isbn])
		if err != nil {
			skipped = append(skipped, isbn)
			continue
		}
		books = append(books, book)
	}
	return books, skipped, nil
}

// parseYear reads the run of digits starting at the first digit of date, so
// "2005-01-01" and "May 2005" both give 2005. Anything else gives 0.
func parseYear(date string) int {
	start := -1
	for i := 0; i < len(date); i++ {
		if date[i] >= '0' && date[i] <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return 0
	}

	end := start
	for end < len(date) && date[end] >= '0' && date[end] <= '9' {
		end++
	}

	year, err := strconv.Atoi(date[start:end])
	if err != nil {
		return 0
	}
	return year
}

// userRecord is the on-disk shape of a user inside users.json.
type userRecord struct {
	Password string `json:"password"`
}
