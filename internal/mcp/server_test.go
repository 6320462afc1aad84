package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmatch/bookmatch/internal/catalog"
	"github.com/bookmatch/bookmatch/internal/config"
	"github.com/bookmatch/bookmatch/internal/database"
	"github.com/bookmatch/bookmatch/internal/recommend"
	"github.com/bookmatch/bookmatch/internal/usecase"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	dbCtx, err := database.OpenDatabase(t.TempDir())
	require.NoError(t, err)

	settings := config.DefaultSettings()
	settings.Auth.Algorithm = "sha512"
	lib, err := usecase.NewLibrary(dbCtx, settings)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = lib.Signup(ctx, "ana", "pw")
	require.NoError(t, err)
	for _, b := range []catalog.Book{
		{ISBN: "1", Title: "O Alienista", Tags: []string{"conto"}, CreatedDate: "2020"},
		{ISBN: "2", Title: "A Cartomante", Tags: []string{"conto"}, CreatedDate: "2021"},
		{ISBN: "3", Title: "Iracema", Tags: []string{"romance"}, CreatedDate: "2022"},
	} {
		_, err := lib.AddBook(ctx, b)
		require.NoError(t, err)
	}

	return NewServer(lib, "ana", "test")
}

func TestHandleSearch(t *testing.T) {
	s := setupServer(t)

	_, out, err := s.handleSearch(context.Background(), nil, SearchInput{Query: "o alienista"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Results)
	assert.Equal(t, "1", out.Results[0].ISBN)

	bad := -1
	_, _, err = s.handleSearch(context.Background(), nil, SearchInput{Query: "x", Limit: &bad})
	assert.Error(t, err)
}

func TestHandleInfoRecordsHistory(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	noRecord := false
	_, out, err := s.handleInfo(ctx, nil, InfoInput{ISBN: "3", Record: &noRecord})
	require.NoError(t, err)
	assert.Equal(t, "Iracema", out.Book.Title)

	_, _, err = s.handleInfo(ctx, nil, InfoInput{ISBN: "1"})
	require.NoError(t, err)

	_, history, err := s.handleHistory(ctx, nil, HistoryInput{})
	require.NoError(t, err)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, "1", history.Entries[0].ISBN)

	_, _, err = s.handleInfo(ctx, nil, InfoInput{ISBN: "404"})
	assert.Error(t, err)
}

func TestHandleRecommend(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	_, _, err := s.handleInfo(ctx, nil, InfoInput{ISBN: "1"})
	require.NoError(t, err)

	_, out, err := s.handleRecommend(ctx, nil, RecommendInput{})
	require.NoError(t, err)
	assert.Equal(t, recommend.StrategyTags, out.Strategy)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "2", out.Recommendations[0].ISBN)
}

func TestHandlersRequireKnownUser(t *testing.T) {
	s := setupServer(t)
	s.username = "ghost"

	_, _, err := s.handleRecommend(context.Background(), nil, RecommendInput{})
	assert.ErrorIs(t, err, database.ErrNotFound)
}
