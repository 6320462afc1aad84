package database

import "errors"

// ErrNotFound indicates a requested record does not exist.
var ErrNotFound = errors.New("database: not found")

// ErrAlreadyExists indicates a create would overwrite an existing record.
var ErrAlreadyExists = errors.New("database: already exists")

// errNoChange aborts an Update without writing.
var errNoChange = errors.New("database: no change")
