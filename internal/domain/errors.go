package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	// Document loading.
	ErrDocumentNotFound   = errors.New("document not found")
	ErrDocumentUnreadable = errors.New("document unreadable")

	// Document structure.
	ErrIllegalDocument = errors.New("illegal document content")
	ErrMissingRootKey  = errors.New("document root key not found")
	ErrEmptyDocument   = errors.New("document has no tasks")
	ErrUnknownFormat   = errors.New("unknown document format")

	// Entries.
	ErrMissingName      = errors.New("task name missing or not a string")
	ErrMissingCommand   = errors.New("task cmd missing or not a string, and no override action")
	ErrInvalidPrecursor = errors.New("after must be a list of task ids")
	ErrDuplicateID      = errors.New("duplicate task id")

	// Resolution.
	ErrUnresolvedPrecursor = errors.New("precursor not found")

	// Actions.
	ErrCommandFailed = errors.New("command failed")
	ErrEmptyCommand  = errors.New("command cannot be empty")

	// Logs.
	ErrLoggingDisabled = errors.New("file logging is disabled (set [log] dir)")
	ErrNoLogFile       = errors.New("no log file")
)

// EntryError reports a malformed entry of a configuration document.
// Subject is the document id for a missing name and the task name otherwise.
type EntryError struct {
	Err     error
	Subject string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Subject)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// UnresolvedPrecursorError reports a reference in `after` that matches no
// document id. The whole build is rejected when it occurs.
type UnresolvedPrecursorError struct {
	Task      string // Name of the task holding the reference
	Reference string // The document id that could not be found
}

func (e *UnresolvedPrecursorError) Error() string {
	return fmt.Sprintf("task %q: %v: %q", e.Task, ErrUnresolvedPrecursor, e.Reference)
}

func (e *UnresolvedPrecursorError) Unwrap() error {
	return ErrUnresolvedPrecursor
}

// DecodeError reports a document that could not be turned into entries.
// Err is one of the document structure errors.
type DecodeError struct {
	Err    error
	Source string
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Source, e.Err, e.Detail)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
