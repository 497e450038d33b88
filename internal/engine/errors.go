package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrFileExists indicates a file with the same name is already open.
	ErrFileExists = errors.New("file already exists")

	// ErrFileNotFound indicates no file has the requested name.
	ErrFileNotFound = errors.New("file not found")

	// ErrEmptyClipboard indicates Paste was called before Copy or Cut.
	ErrEmptyClipboard = errors.New("clipboard is empty")

	// ErrEmptyName indicates a file was created without a name.
	ErrEmptyName = errors.New("file name is empty")
)
