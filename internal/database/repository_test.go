package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmatch/bookmatch/internal/catalog"
)

func sampleBook(isbn string) catalog.Book {
	return catalog.Book{
		ISBN:        isbn,
		Title:       "Dom Casmurro",
		Author:      "Machado de Assis",
		Year:        1899,
		Publisher:   "Garnier",
		Genre:       "Romance",
		Description: "Bentinho e Capitu",
		Tags:        []string{"classico", "brasil"},
		Rating:      4.5,
		CreatedDate: "2024-01-02T03:04:05",
	}
}

func TestBookRepositoryRoundTrip(t *testing.T) {
	repo := NewBookRepository(setupTestDB(t))
	book := sampleBook("9788535910663")

	assert.False(t, repo.Exists(book.ISBN))
	require.NoError(t, repo.Save(book))

	got, ok := repo.Load(book.ISBN)
	require.True(t, ok)
	assert.Equal(t, book.Title, got.Title)
	assert.Equal(t, book.Author, got.Author)
	assert.Equal(t, book.Year, got.Year)
	assert.Equal(t, book.Publisher, got.Publisher)
	assert.Equal(t, book.Genre, got.Genre)
	assert.Equal(t, book.Description, got.Description)
	assert.Equal(t, book.Rating, got.Rating)
	assert.Equal(t, book.CreatedDate, got.CreatedDate)
	assert.ElementsMatch(t, []string{"classico", "brasil"}, got.Tags)
}

func TestBookRepositorySaveIsolation(t *testing.T) {
	repo := NewBookRepository(setupTestDB(t))
	first := sampleBook("1")
	second := sampleBook("2")
	second.Title = "Memorias Postumas"

	require.NoError(t, repo.Save(first))
	require.NoError(t, repo.Save(second))

	second.Rating = 1
	require.NoError(t, repo.Save(second))

	got, ok := repo.Load("1")
	require.True(t, ok)
	assert.Equal(t, first.Title, got.Title)
	assert.Equal(t, first.Rating, got.Rating)

	all := repo.All()
	require.Len(t, all, 2)
	assert.Equal(t, "1", all[0].ISBN)
	assert.Equal(t, "2", all[1].ISBN)
}

func TestBookRepositoryRemove(t *testing.T) {
	repo := NewBookRepository(setupTestDB(t))
	require.NoError(t, repo.Save(sampleBook("1")))

	removed, err := repo.Remove("1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove("1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestBookRepositoryReadsScraperFormat(t *testing.T) {
	ctx := setupTestDB(t)
	content := `{
    "111": {"title": "Scraped", "date": "2005-01-01", "tags": "", "createdDate": "2024-05-01T10:00:00.123456"},
    "222": {"title": "Tagged", "date": "May 1999", "tags": "fantasia"},
    "333": {"title": "Mixed", "date": "", "tags": ["a", 1, "a", "", "b"]},
    "444": "not an object"
}`
	require.NoError(t, os.WriteFile(ctx.Books.Path(), []byte(content), 0o600))
	repo := NewBookRepository(ctx)

	scraped, ok := repo.Load("111")
	require.True(t, ok)
	assert.Equal(t, 2005, scraped.Year)
	assert.Empty(t, scraped.Tags)

	tagged, _ := repo.Load("222")
	assert.Equal(t, 1999, tagged.Year)
	assert.Equal(t, []string{"fantasia"}, tagged.Tags)

	mixed, _ := repo.Load("333")
	assert.Zero(t, mixed.Year)
	assert.Len(t, mixed.Tags, 2)

	_, ok = repo.Load("444")
	assert.False(t, ok, "malformed entry must be reported as not found")
	assert.Len(t, repo.All(), 3)
}

func TestParseYear(t *testing.T) {
	tests := map[string]int{
		"2005":       2005,
		"2005-01-01": 2005,
		"May 1999":   1999,
		"c. 300 BC":  300,
		"":           0,
		"unknown":    0,
	}
	for input, want := range tests {
		assert.Equal(t, want, parseYear(input), "parseYear(%q)", input)
	}
}

func TestUserRepositoryCreateKeepsOtherUsers(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	require.NoError(t, repo.Create(catalog.User{Username: "ana", PasswordHash: "h1"}))
	require.NoError(t, repo.Create(catalog.User{Username: "bia", PasswordHash: "h2"}))

	err := repo.Create(catalog.User{Username: "ana", PasswordHash: "other"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	ana, ok := repo.Load("ana")
	require.True(t, ok)
	assert.Equal(t, "h1", ana.PasswordHash)

	bia, ok := repo.Load("bia")
	require.True(t, ok)
	assert.Equal(t, "h2", bia.PasswordHash)

	assert.False(t, repo.Exists("carla"))
}

func TestHistoryRepositoryLifecycle(t *testing.T) {
	repo := NewHistoryRepository(setupTestDB(t))

	empty := repo.Load("ana")
	assert.Zero(t, empty.Len())
	assert.Equal(t, "ana", empty.Username)

	h := repo.Load("ana")
	h.Add("1")
	h.Add("2")
	h.Add("1")
	require.NoError(t, repo.Save(h))
	require.NoError(t, repo.Save(catalog.History{Username: "bia", ISBNs: []string{"9"}}))

	assert.Equal(t, []string{"1", "2"}, repo.Load("ana").ISBNs)

	require.NoError(t, repo.Clear("ana"))
	assert.Zero(t, repo.Load("ana").Len())
	assert.Equal(t, 1, repo.Load("bia").Len(), "clearing ana must not touch bia")
}

func TestBookRepositoryCreateRejectsDuplicate(t *testing.T) {
	repo := NewBookRepository(setupTestDB(t))

	require.NoError(t, repo.Create(sampleBook("1")))
	dup := sampleBook("1")
	dup.Title = "Other"
	assert.ErrorIs(t, repo.Create(dup), ErrAlreadyExists)

	got, _ := repo.Load("1")
	assert.Equal(t, "Dom Casmurro", got.Title, "duplicate create must not overwrite")
}

func TestParseBooks(t *testing.T) {
	books, skipped, err := ParseBooks([]byte(`{"b": {"title": "B", "tags": "x"}, "a": {"title": "A"}, "c": 42}`))
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "a", books[0].ISBN)
	assert.Equal(t, "b", books[1].ISBN)
	assert.Equal(t, []string{"c"}, skipped)

	_, _, err = ParseBooks([]byte(`[1, 2]`))
	assert.Error(t, err)
}
