package command

import "errors"

// Errors returned while configuring or applying commands.
var (
	// ErrModeAlreadySet is returned when a second SetMode call is made on a command.
	ErrModeAlreadySet = errors.New("command mode already set")

	// ErrNoAnnotations is returned when a per-object mode receives an empty list.
	ErrNoAnnotations = errors.New("no annotations")

	// ErrNilAnnotation is returned when an annotation list contains nil.
	ErrNilAnnotation = errors.New("nil annotation")

	// ErrNilFile is returned when a collection mode receives a nil file.
	ErrNilFile = errors.New("nil annotation file")

	// ErrInvalidValue is returned when a new property value is out of range.
	ErrInvalidValue = errors.New("invalid value")

	// ErrMismatchedLists is returned when before and after lists do not pair up.
	ErrMismatchedLists = errors.New("before and after annotations do not match")

	// ErrNotInFile is returned when delete or cut is given an annotation no file holds.
	ErrNotInFile = errors.New("annotation is not in a file")

	// ErrAlreadyInFile is returned when create or paste is given an annotation a file already holds.
	ErrAlreadyInFile = errors.New("annotation is already in a file")

	// ErrInvalidGroupKey is returned when a group key has the wrong type for the operation.
	ErrInvalidGroupKey = errors.New("invalid group key")

	// ErrEmptyGroup is returned when a group operation finds too few members.
	ErrEmptyGroup = errors.New("not enough annotations for group")

	// ErrStaleReference is returned by Redo and Undo when a referenced
	// annotation is no longer held by the file it was captured from.
	ErrStaleReference = errors.New("stale annotation reference")

	// ErrInvalidCommand is returned when an unconfigured command is applied.
	ErrInvalidCommand = errors.New("command is not valid")

	// ErrUnknownMode is returned by ParseMode.
	ErrUnknownMode = errors.New("unknown command mode")
)
