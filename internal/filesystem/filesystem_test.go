package filesystem

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
	assert.True(t, FileExists(dir))
}

func TestReadFileMissingIsEmpty(t *testing.T) {
	data, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "books.json")

	for _, content := range []string{"first", "second"} {
		err := WriteFileAtomic(path, func(w io.Writer) error {
			_, err := io.WriteString(w, content)
			return err
		})
		require.NoError(t, err)

		got, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	}

	assertNoTempFiles(t, filepath.Dir(path))
}

func TestWriteFileAtomicFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "books.json")
	original := []byte(`{"123": {"title": "Original"}}`)
	require.NoError(t, os.WriteFile(path, original, 0o600))

	boom := errors.New("disk full")
	err := WriteFileAtomic(path, func(w io.Writer) error {
		if _, err := io.WriteString(w, `{"123": {"ti`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(original), string(got), "original file changed")

	assertNoTempFiles(t, dir)
}

func TestWriteFileAtomicRenameFailure(t *testing.T) {
	dir := t.TempDir()
	// A non-empty directory at the target path makes the rename fail.
	target := filepath.Join(dir, "books.json")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0o750))

	err := WriteFileAtomic(target, func(w io.Writer) error {
		_, err := io.WriteString(w, "{}")
		return err
	})
	assert.Error(t, err)

	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".tmp"), "temporary file left behind: %s", entry.Name())
	}
}
