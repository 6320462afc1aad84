package database

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/bookmatch/bookmatch/internal/filesystem"
	"github.com/bookmatch/bookmatch/internal/logging"
)

// Document is the decoded content of one store file: a JSON object keyed by
// record key (ISBN or username).
type Document map[string]json.RawMessage

// Store persists one Document in one file. Every mutation rewrites the whole
// file through an atomic rename; nothing is cached between calls.
type Store struct {
	path string
}

// NewStore returns a store backed by path. The file is created on first save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole document. A missing, empty or malformed file yields an
// empty document.
func (s *Store) Load() Document {
	data, err := filesystem.ReadFile(s.path)
	if err != nil {
		logging.Warn().Err(err).Str("path", s.path).Msg("ignoring unreadable store")
		return Document{}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		logging.Warn().Err(err).Str("path", s.path).Msg("ignoring malformed store")
		return Document{}
	}
	if doc == nil {
		return Document{}
	}
	return doc
}

// Get loads the document and returns the value stored under key.
func (s *Store) Get(key string) (json.RawMessage, bool) {
	value, ok := s.Load()[key]
	return value, ok
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Save serializes doc and atomically replaces the backing file.
func (s *Store) Save(doc Document) error {
	if doc == nil {
		doc = Document{}
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.path, err)
	}

	err = filesystem.WriteFileAtomic(s.path, func(w io.Writer) error {
		if _, err := w.Write(data); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save store: %w", err)
	}

	logging.Debug().Str("path", s.path).Int("records", len(doc)).Msg("store saved")
	return nil
}

// Update runs one load-modify-save cycle. If fn returns an error nothing is
// written and the error is returned unchanged.
func (s *Store) Update(fn func(doc Document) error) error {
	doc := s.Load()
	if err := fn(doc); err != nil {
		return err
	}
	return s.Save(doc)
}

// Remove deletes key and reports whether it was present.
func (s *Store) Remove(key string) (bool, error) {
	removed := false
	err := s.Update(func(doc Document) error {
		if _, ok := doc[key]; !ok {
			return errNoChange
		}
		delete(doc, key)
		removed = true
		return nil
	})
	if errors.Is(err, errNoChange) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return removed, nil
}
