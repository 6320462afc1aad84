package usecase

import (
	"context"
	"fmt"

	"github.com/bookmatch/bookmatch/internal/auth"
	"github.com/bookmatch/bookmatch/internal/catalog"
	"github.com/bookmatch/bookmatch/internal/config"
	"github.com/bookmatch/bookmatch/internal/database"
	"github.com/bookmatch/bookmatch/internal/recommend"
	"github.com/bookmatch/bookmatch/internal/search"
	"github.com/bookmatch/bookmatch/internal/services"
)

// Library is the entry point for every command: accounts, catalog edits,
// viewing, searching and recommendations.
type Library struct {
	books    *services.BookService
	users    *services.UserService
	history  *services.HistoryService
	settings config.Settings
}

func NewLibrary(dbCtx *database.Context, settings *config.Settings) (*Library, error) {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	hasher, err := auth.NewHasher(settings.Auth.Algorithm)
	if err != nil {
		return nil, err
	}

	return &Library{
		books:    services.NewBookService(dbCtx),
		users:    services.NewUserService(dbCtx, hasher),
		history:  services.NewHistoryService(dbCtx),
		settings: *settings,
	}, nil
}

// Settings returns the settings the library was built with.
func (u *Library) Settings() config.Settings {
	return u.settings
}

// Signup registers a new user.
func (u *Library) Signup(ctx context.Context, username, password string) (catalog.User, error) {
	if err := ctx.Err(); err != nil {
		return catalog.User{}, err
	}
	return u.users.Register(username, password)
}

// Login authenticates an existing user.
func (u *Library) Login(ctx context.Context, username, password string) (catalog.User, error) {
	if err := ctx.Err(); err != nil {
		return catalog.User{}, err
	}
	return u.users.Authenticate(username, password)
}

// UserExists reports whether username is registered.
func (u *Library) UserExists(username string) bool {
	return u.users.Exists(username)
}

// RequireUser fails with an error wrapping database.ErrNotFound when username
// is not registered.
func (u *Library) RequireUser(username string) error {
	if username == "" {
		return fmt.Errorf("a user is required")
	}
	if !u.users.Exists(username) {
		return fmt.Errorf("user %s: %w", username, database.ErrNotFound)
	}
	return nil
}

// Book returns one book.
func (u *Library) Book(isbn string) (catalog.Book, error) {
	return u.books.Get(isbn)
}

// Books returns the whole catalog ordered by ISBN.
func (u *Library) Books() []catalog.Book {
	return u.books.List()
}

// ViewBook returns a book and, when username is set, records the view in the
// user's history.
func (u *Library) ViewBook(ctx context.Context, username, isbn string) (catalog.Book, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Book{}, err
	}

	book, err := u.books.Get(isbn)
	if err != nil {
		return catalog.Book{}, err
	}
	if username == "" {
		return book, nil
	}

	if err := u.RequireUser(username); err != nil {
		return catalog.Book{}, err
	}
	if _, err := u.history.Record(username, isbn); err != nil {
		return catalog.Book{}, err
	}
	return book, nil
}

// AddBook creates a catalog entry.
func (u *Library) AddBook(ctx context.Context, book catalog.Book) (catalog.Book, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Book{}, err
	}
	return u.books.Create(book)
}

// BookEdit lists the changes to apply to a book. Nil fields are left alone.
// Tags, when set, replaces the tag set before AddTags and RemoveTags apply.
type BookEdit struct {
	Title       *string
	Author      *string
	Year        *int
	Publisher   *string
	Genre       *string
	Description *string
	Rating      *float64
	Tags        *[]string
	AddTags     []string
	RemoveTags  []string
}

// EditBook applies edit to the stored book.
func (u *Library) EditBook(ctx context.Context, isbn string, edit BookEdit) (catalog.Book, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Book{}, err
	}

	return u.books.Update(isbn, func(b *catalog.Book) error {
		setIf(&b.Title, edit.Title)
		setIf(&b.Author, edit.Author)
		setIf(&b.Year, edit.Year)
		setIf(&b.Publisher, edit.Publisher)
		setIf(&b.Genre, edit.Genre)
		setIf(&b.Description, edit.Description)
		setIf(&b.Rating, edit.Rating)
		if edit.Tags != nil {
			b.SetTags(*edit.Tags)
		}
		for _, tag := range edit.AddTags {
			b.AddTag(tag)
		}
		for _, tag := range edit.RemoveTags {
			b.RemoveTag(tag)
		}
		return nil
	})
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// RemoveBook deletes a catalog entry and reports whether it existed.
func (u *Library) RemoveBook(ctx context.Context, isbn string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return u.books.Delete(isbn)
}

// Search ranks catalog titles against query.
func (u *Library) Search(query string, opts SearchOptions) ([]search.Result, error) {
	resolved, err := ResolveSearchOptions(opts, u.settings.Search)
	if err != nil {
		return nil, err
	}
	return search.Search(query, u.books.List(), resolved), nil
}

// Recommend suggests books for username from their view history.
func (u *Library) Recommend(username string) (recommend.Result, error) {
	if err := u.RequireUser(username); err != nil {
		return recommend.Result{}, err
	}

	history := u.history.Get(username)
	return recommend.Recommend(history, u.books.List(), ResolveRecommendOptions(u.settings.Recommend)), nil
}

// HistoryItem is one viewed book. Found is false when the ISBN is no longer in
// the catalog.
type HistoryItem struct {
	Position int    `json:"position"`
	ISBN     string `json:"isbn"`
	Title    string `json:"title"`
	Found    bool   `json:"found"`
}

// History lists the books username has viewed, oldest first.
func (u *Library) History(username string) ([]HistoryItem, error) {
	if err := u.RequireUser(username); err != nil {
		return nil, err
	}

	history := u.history.Get(username)
	items := make([]HistoryItem, 0, history.Len())
	for i, isbn := range history.ISBNs {
		item := HistoryItem{Position: i + 1, ISBN: isbn}
		if book, err := u.books.Get(isbn); err == nil {
			item.Title = book.Title
			item.Found = true
		}
		items = append(items, item)
	}
	return items, nil
}

// RemoveFromHistory deletes isbn from the history of username.
func (u *Library) RemoveFromHistory(ctx context.Context, username, isbn string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := u.RequireUser(username); err != nil {
		return false, err
	}
	return u.history.Remove(username, isbn)
}

// ClearHistory empties the history of username.
func (u *Library) ClearHistory(ctx context.Context, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := u.RequireUser(username); err != nil {
		return err
	}
	return u.history.Clear(username)
}
