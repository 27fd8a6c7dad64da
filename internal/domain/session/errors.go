package session

import "errors"

var (
	// ErrNotLoaded indicates an operation before the source was opened.
	ErrNotLoaded = errors.New("session not loaded")
	// ErrStaleSource indicates the source changed on disk while the session
	// holds unsaved edits.
	ErrStaleSource = errors.New("source changed since it was loaded")
	// ErrUnsavedChanges indicates a reload that would discard edits.
	ErrUnsavedChanges = errors.New("session has unsaved changes")
	// ErrUnknownPage indicates an edit request for a page that does not exist.
	ErrUnknownPage = errors.New("unknown page")
)
