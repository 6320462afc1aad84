package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmatch/bookmatch/internal/config"
)

func setupTestDB(t *testing.T) *Context {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("BOOKMATCH_DIR", tmp)

	ctx, err := OpenDatabase("")
	require.NoError(t, err)
	return ctx
}

func TestOpenDatabaseUsesDataDir(t *testing.T) {
	ctx := setupTestDB(t)

	assert.Equal(t, config.GetDataDir(), ctx.Dir)

	want := map[*Store]string{
		ctx.Users:   config.UsersFile,
		ctx.Books:   config.BooksFile,
		ctx.History: config.HistoryFile,
	}
	for store, name := range want {
		assert.Equal(t, filepath.Join(ctx.Dir, name), store.Path())
	}
}

func TestOpenDatabaseCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "data")

	_, err := OpenDatabase(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Opening again is not an error.
	_, err = OpenDatabase(dir)
	assert.NoError(t, err)
}
