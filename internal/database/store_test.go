package database

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return NewStore(path)
}

func TestStoreLoadTolerance(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing", ""},
		{"whitespace", "  \n"},
		{"corrupt", `{"a": `},
		{"array", `["a", "b"]`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, tt.content)
			doc := store.Load()
			assert.NotNil(t, doc)
			assert.Empty(t, doc)
			assert.False(t, store.Has("a"))
		})
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	store := newTestStore(t, "")

	err := store.Save(Document{
		"b": json.RawMessage(`{"title":"B"}`),
		"a": json.RawMessage(`["x"]`),
	})
	require.NoError(t, err)

	raw, ok := store.Get("b")
	require.True(t, ok)
	assert.JSONEq(t, `{"title":"B"}`, string(raw))

	_, ok = store.Get("missing")
	assert.False(t, ok)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"a\"", "document is written with four space indent")
	assert.Less(t, strings.Index(string(data), `"a"`), strings.Index(string(data), `"b"`), "keys are sorted")
}

func TestStoreUpdateAbortLeavesFileUntouched(t *testing.T) {
	store := newTestStore(t, `{"keep": 1}`)
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Update(func(doc Document) error {
		doc["new"] = json.RawMessage(`2`)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStoreRemove(t *testing.T) {
	store := newTestStore(t, `{"a": 1, "b": 2}`)

	removed, err := store.Remove("a")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, store.Has("a"))
	assert.True(t, store.Has("b"))

	removed, err = store.Remove("a")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStoreSaveFailureKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	// A non-empty directory in place of the file makes the final rename fail.
	require.NoError(t, os.MkdirAll(filepath.Join(path, "child"), 0o750))

	store := NewStore(path)
	err := store.Save(Document{"a": json.RawMessage(`1`)})
	require.Error(t, err)

	info, statErr := os.Stat(path)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir(), "target must be left as it was")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must be cleaned up")
}
