// Package filestore provides a file-based implementation of DocumentSource.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/runoshun/taskgraph/internal/domain"
)

// StdinSource is the source name that reads from standard input.
const StdinSource = "-"

// Ensure Store implements domain.DocumentSource.
var _ domain.DocumentSource = (*Store)(nil)

// Store reads documents from the local filesystem.
type Store struct {
	stdin io.Reader
}

// New creates a new Store. stdin is read for the "-" source and may be nil.
func New(stdin io.Reader) *Store {
	return &Store{stdin: stdin}
}

// Load returns the full text of the file at source.
func (s *Store) Load(source string) (string, error) {
	if source == StdinSource {
		return s.loadStdin()
	}

	f, err := os.Open(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, source)
		}
		return "", fmt.Errorf("%w: %s: %w", domain.ErrDocumentUnreadable, source, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrDocumentUnreadable, source, err)
	}
	return string(data), nil
}

func (s *Store) loadStdin() (string, error) {
	if s.stdin == nil {
		return "", fmt.Errorf("%w: no standard input", domain.ErrDocumentNotFound)
	}
	data, err := io.ReadAll(s.stdin)
	if err != nil {
		return "", fmt.Errorf("%w: standard input: %w", domain.ErrDocumentUnreadable, err)
	}
	return string(data), nil
}
