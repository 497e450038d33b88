package annotation

import "errors"

// Errors returned by File operations.
var (
	// ErrNilAnnotation indicates a nil annotation was supplied.
	ErrNilAnnotation = errors.New("nil annotation")

	// ErrDuplicateID indicates an annotation with the same identity is already in the file.
	ErrDuplicateID = errors.New("annotation already in file")

	// ErrOwnedElsewhere indicates the annotation belongs to another file.
	ErrOwnedElsewhere = errors.New("annotation owned by another file")

	// ErrNotFound indicates the annotation is not in the file.
	ErrNotFound = errors.New("annotation not found")

	// ErrIndexOutOfRange indicates an insertion index outside the collection.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnknownValue indicates an enumeration name that could not be parsed.
	ErrUnknownValue = errors.New("unknown value")
)
