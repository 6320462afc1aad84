// Package application holds multi-step flows that span several services.
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bookmatch/bookmatch/internal/catalog"
	"github.com/bookmatch/bookmatch/internal/database"
	"github.com/bookmatch/bookmatch/internal/filesystem"
	"github.com/bookmatch/bookmatch/internal/logging"
	"github.com/bookmatch/bookmatch/internal/services"
)

// ImportInput describes a catalog import.
type ImportInput struct {
	// Path is a books document in books.json format, such as scraper output.
	Path string
	// Overwrite replaces books whose ISBN is already in the catalog.
	Overwrite bool
	// Now stamps books without a createdDate. Zero means time.Now.
	Now time.Time
}

// ImportResult counts what happened to each entry of the imported document.
type ImportResult struct {
	Added   int      `json:"added"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Invalid []string `json:"invalid,omitempty"`
}

// ImportCatalog merges the books in input.Path into the catalog with a single
// write. Existing books are kept unless Overwrite is set; an overwritten book
// keeps its original createdDate when the import has none. Entries that fail
// to decode or validate are reported in Invalid and not written.
func ImportCatalog(ctx context.Context, dbCtx *database.Context, input ImportInput) (*ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := filesystem.ReadFile(input.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", input.Path, err)
	}
	if data == nil {
		return nil, fmt.Errorf("import file %s: %w", input.Path, database.ErrNotFound)
	}

	incoming, invalid, err := database.ParseBooks(data)
	if err != nil {
		return nil, err
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	bookService := services.NewBookService(dbCtx)
	result := &ImportResult{Invalid: invalid}
	toSave := make([]catalog.Book, 0, len(incoming))

	stored := make(map[string]catalog.Book)
	for _, book := range bookService.List() {
		stored[book.ISBN] = book
	}

	for _, book := range incoming {
		if err := bookService.Validate(book); err != nil {
			logging.Warn().Err(err).Str("isbn", book.ISBN).Msg("skipping invalid book")
			result.Invalid = append(result.Invalid, book.ISBN)
			continue
		}

		existing, found := stored[book.ISBN]
		switch {
		case found && !input.Overwrite:
			result.Skipped++
			continue
		case found:
			if book.CreatedDate == "" {
				book.CreatedDate = existing.CreatedDate
			}
			result.Updated++
		default:
			result.Added++
		}

		book.StampCreated(now)
		toSave = append(toSave, book)
	}

	if err := bookService.SaveAll(toSave); err != nil {
		return nil, err
	}

	logging.Info().
		Str("path", input.Path).
		Int("added", result.Added).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("invalid", len(result.Invalid)).
		Msg("catalog imported")

	return result, nil
}
