package documents

import "errors"

var (
	// ErrNotFound indicates a document was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateContent indicates a document with the same content
	// fingerprint already exists. Expected during ingestion, not a fault.
	ErrDuplicateContent = errors.New("duplicate content")

	// ErrUnsupportedType indicates a file type outside the allow-list.
	ErrUnsupportedType = errors.New("file type not allowed")

	// ErrFileTooLarge indicates an upload over the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds size limit")
)
