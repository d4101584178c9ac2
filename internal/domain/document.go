package domain

import "fmt"

// DefaultRootKey is the key the task mapping lives under.
const DefaultRootKey = "dagrs"

// Document formats.
const (
	FormatAuto = ""
	FormatYAML = "yaml"
	FormatHCL  = "hcl"
)

// Document is a configuration document decoded into a format-neutral tree.
// Entries keep the order in which they appear in the text.
type Document struct {
	RootKey string
	Entries []RawEntry
}

// RawEntry is one task entry of a document, keyed by its document id.
// Field values are string for scalars, []any for sequences and
// map[string]any for mappings; a field written as null is present with a nil value.
type RawEntry struct {
	Fields map[string]any
	ID     string
	Line   int // 1-based line of the entry in its source, 0 if unknown
}

// Entry field names.
const (
	FieldName  = "name"
	FieldAfter = "after"
	FieldCmd   = "cmd"
)

// Len returns the number of entries.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Entries)
}

// String returns the field value if it is a string.
func (e RawEntry) String(key string) (string, bool) {
	s, ok := e.Fields[key].(string)
	return s, ok
}

// StringList returns the field as a list of strings.
// A missing or null field is an empty list. Anything other than a
// sequence of strings is ErrInvalidPrecursor.
func (e RawEntry) StringList(key string) ([]string, error) {
	v, ok := e.Fields[key]
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s is %T", ErrInvalidPrecursor, e.ID, key, v)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s[%d] is %T", ErrInvalidPrecursor, e.ID, key, i, item)
		}
		out = append(out, s)
	}
	return out, nil
}
