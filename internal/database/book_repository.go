package database

import (
	"fmt"
	"slices"

	"github.com/goccy/go-json"

	"github.com/bookmatch/bookmatch/internal/catalog"
	"github.com/bookmatch/bookmatch/internal/logging"
)

// BookRepository maps books to and from books.json.
type BookRepository struct {
	ctx *Context
}

func NewBookRepository(dbCtx *Context) *BookRepository {
	return &BookRepository{ctx: dbCtx}
}

// Exists reports whether isbn is in the catalog.
func (r *BookRepository) Exists(isbn string) bool {
	return r.ctx.Books.Has(isbn)
}

// Load returns the book stored under isbn. Missing fields take their zero
// value. A malformed entry is reported as not found.
func (r *BookRepository) Load(isbn string) (catalog.Book, bool) {
	raw, ok := r.ctx.Books.Get(isbn)
	if !ok {
		return catalog.Book{}, false
	}

	book, err := decodeBook(isbn, raw)
	if err != nil {
		logging.Warn().Err(err).Str("isbn", isbn).Msg("ignoring malformed book")
		return catalog.Book{}, false
	}
	return book, true
}

// All returns every readable book ordered by ISBN.
func (r *BookRepository) All() []catalog.Book {
	doc := r.ctx.Books.Load()

	keys := make([]string, 0, len(doc))
	for isbn := range doc {
		keys = append(keys, isbn)
	}
	slices.Sort(keys)

	books := make([]catalog.Book, 0, len(keys))
	for _, isbn := range keys {
		book, err := decodeBook(isbn, doc[isbn])
		if err != nil {
			logging.Warn().Err(err).Str("isbn", isbn).Msg("ignoring malformed book")
			continue
		}
		books = append(books, book)
	}
	return books
}

// Save writes book under its ISBN, leaving every other entry untouched.
func (r *BookRepository) Save(book catalog.Book) error {
	return r.put([]catalog.Book{book}, false)
}

// Create writes book unless its ISBN is taken, in which case it returns
// ErrAlreadyExists.
func (r *BookRepository) Create(book catalog.Book) error {
	return r.put([]catalog.Book{book}, true)
}

// SaveAll writes several books in one load-modify-save cycle.
func (r *BookRepository) SaveAll(books []catalog.Book) error {
	return r.put(books, false)
}

func (r *BookRepository) put(books []catalog.Book, mustBeNew bool) error {
	if len(books) == 0 {
		return nil
	}

	return r.ctx.Books.Update(func(doc Document) error {
		for _, book := range books {
			if book.ISBN == "" {
				return fmt.Errorf("book repository: missing isbn")
			}
			if _, ok := doc[book.ISBN]; ok && mustBeNew {
				return ErrAlreadyExists
			}
			raw, err := json.Marshal(toBookRecord(book))
			if err != nil {
				return fmt.Errorf("failed to encode book %s: %w", book.ISBN, err)
			}
			doc[book.ISBN] = raw
		}
		return nil
	})
}

// Remove deletes isbn and reports whether it was present.
func (r *BookRepository) Remove(isbn string) (bool, error) {
	return r.ctx.Books.Remove(isbn)
}
