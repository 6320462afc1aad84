// Package database provides the JSON record stores and the repositories for
// books, users and view history.
package database

import (
	"fmt"

	"github.com/bookmatch/bookmatch/internal/config"
	"github.com/bookmatch/bookmatch/internal/filesystem"
)

// Context holds the stores that live in one data directory.
type Context struct {
	Dir     string
	Users   *Store
	Books   *Store
	History *Store
}

// OpenDatabase prepares the data directory and returns its stores. An empty dir
// resolves to config.GetDataDir().
func OpenDatabase(dir string) (*Context, error) {
	if dir == "" {
		dir = config.GetDataDir()
	}

	if err := filesystem.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Context{
		Dir:     dir,
		Users:   NewStore(config.StorePath(dir, config.UsersFile)),
		Books:   NewStore(config.StorePath(dir, config.BooksFile)),
		History: NewStore(config.StorePath(dir, config.HistoryFile)),
	}, nil
}
