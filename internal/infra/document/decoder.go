// Package document decodes configuration text into format-neutral task documents.
package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/runoshun/taskgraph/internal/domain"
)

// Ensure Decoder implements domain.DocumentDecoder.
var _ domain.DocumentDecoder = (*Decoder)(nil)

// Decoder dispatches to the YAML or HCL decoder.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses text read from source. An empty rootKey means domain.DefaultRootKey.
func (d *Decoder) Decode(source, text, format, rootKey string) (*domain.Document, error) {
	if rootKey == "" {
		rootKey = domain.DefaultRootKey
	}

	format, err := DetectFormat(source, format)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, &domain.DecodeError{Err: domain.ErrEmptyDocument, Source: source}
	}

	switch format {
	case domain.FormatHCL:
		return decodeHCL(source, text, rootKey)
	default:
		return decodeYAML(source, text, rootKey)
	}
}

// DetectFormat returns the document format to use for source.
// An explicit format wins; otherwise ".hcl" files are HCL and everything
// else, including standard input, is YAML.
func DetectFormat(source, format string) (string, error) {
	switch strings.ToLower(format) {
	case domain.FormatYAML, "yml":
		return domain.FormatYAML, nil
	case domain.FormatHCL:
		return domain.FormatHCL, nil
	case domain.FormatAuto:
		if strings.EqualFold(filepath.Ext(source), ".hcl") {
			return domain.FormatHCL, nil
		}
		return domain.FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
	}
}

// entrySet collects entries while rejecting repeated document ids.
type entrySet struct {
	seen    map[string]int
	source  string
	entries []domain.RawEntry
}

func newEntrySet(source string) *entrySet {
	return &entrySet{source: source, seen: make(map[string]int)}
}

func (s *entrySet) add(e domain.RawEntry) error {
	if line, dup := s.seen[e.ID]; dup {
		return &domain.DecodeError{
			Err:    domain.ErrDuplicateID,
			Source: s.source,
			Detail: fmt.Sprintf("%q at line %d was already defined at line %d", e.ID, e.Line, line),
		}
	}
	s.seen[e.ID] = e.Line
	s.entries = append(s.entries, e)
	return nil
}
