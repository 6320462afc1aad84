// Package services implements the catalog, account and history operations on
// top of the record repositories.
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/bookmatch/bookmatch/internal/catalog"
	"github.com/bookmatch/bookmatch/internal/database"
	"github.com/bookmatch/bookmatch/internal/logging"
	"github.com/bookmatch/bookmatch/internal/validation"
)

type BookService struct {
	repo      *database.BookRepository
	validator *validation.Validator
	now       func() time.Time
}

func NewBookService(dbCtx *database.Context) *BookService {
	return &BookService{
		repo:      database.NewBookRepository(dbCtx),
		validator: validation.New(),
		now:       time.Now,
	}
}

// Get returns the book stored under isbn or an error wrapping database.ErrNotFound.
func (s *BookService) Get(isbn string) (catalog.Book, error) {
	book, ok := s.repo.Load(isbn)
	if !ok {
		return catalog.Book{}, fmt.Errorf("book %s: %w", isbn, database.ErrNotFound)
	}
	return book, nil
}

// List returns every book ordered by ISBN.
func (s *BookService) List() []catalog.Book {
	return s.repo.All()
}

// Validate checks the field constraints of book.
func (s *BookService) Validate(book catalog.Book) error {
	return s.validator.Validate(book)
}

// Create validates book, stamps its creation date and stores it. It fails with
// ErrBookExists when the ISBN is taken.
func (s *BookService) Create(book catalog.Book) (catalog.Book, error) {
	book.SetTags(book.Tags)
	if err := s.Validate(book); err != nil {
		return catalog.Book{}, err
	}
	book.StampCreated(s.now())

	if err := s.repo.Create(book); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			return catalog.Book{}, fmt.Errorf("book %s: %w", book.ISBN, ErrBookExists)
		}
		return catalog.Book{}, fmt.Errorf("failed to save book: %w", err)
	}

	logging.Info().Str("isbn", book.ISBN).Msg("book created")
	return book, nil
}

// Update loads the book, applies edit and stores the result. The ISBN cannot
// be changed by edit.
func (s *BookService) Update(isbn string, edit func(*catalog.Book) error) (catalog.Book, error) {
	book, err := s.Get(isbn)
	if err != nil {
		return catalog.Book{}, err
	}

	if err := edit(&book); err != nil {
		return catalog.Book{}, err
	}
	book.ISBN = isbn

	if err := s.Validate(book); err != nil {
		return catalog.Book{}, err
	}
	if err := s.repo.Save(book); err != nil {
		return catalog.Book{}, fmt.Errorf("failed to save book: %w", err)
	}

	logging.Info().Str("isbn", isbn).Msg("book updated")
	return book, nil
}

// Delete removes the book and reports whether it existed.
func (s *BookService) Delete(isbn string) (bool, error) {
	removed, err := s.repo.Remove(isbn)
	if err != nil {
		return false, fmt.Errorf("failed to remove book: %w", err)
	}
	if removed {
		logging.Info().Str("isbn", isbn).Msg("book removed")
	}
	return removed, nil
}

// Exists reports whether isbn is in the catalog.
func (s *BookService) Exists(isbn string) bool {
	return s.repo.Exists(isbn)
}

// SaveAll stores books in one write without validation or date stamping.
func (s *BookService) SaveAll(books []catalog.Book) error {
	if err := s.repo.SaveAll(books); err != nil {
		return fmt.Errorf("failed to save books: %w", err)
	}
	return nil
}
