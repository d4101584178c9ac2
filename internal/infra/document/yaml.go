package document

import (
	"errors"
	"fmt"

	"github.com/runoshun/taskgraph/internal/domain"
	"gopkg.in/yaml.v3"
)

// decodeYAML walks the node tree rather than decoding into a map so that
// entries keep their order.
func decodeYAML(source, text, rootKey string) (*domain.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, &domain.DecodeError{Err: domain.ErrIllegalDocument, Source: source, Detail: err.Error()}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &domain.DecodeError{Err: domain.ErrEmptyDocument, Source: source}
	}

	top := resolveAlias(root.Content[0])
	if isNull(top) {
		return nil, &domain.DecodeError{Err: domain.ErrEmptyDocument, Source: source}
	}
	if top.Kind != yaml.MappingNode {
		return nil, &domain.DecodeError{Err: domain.ErrMissingRootKey, Source: source, Detail: "top level is not a mapping"}
	}

	tasks := lookup(top, rootKey)
	if tasks == nil {
		return nil, &domain.DecodeError{Err: domain.ErrMissingRootKey, Source: source, Detail: rootKey}
	}
	tasks = resolveAlias(tasks)
	if isNull(tasks) {
		return nil, &domain.DecodeError{Err: domain.ErrEmptyDocument, Source: source}
	}
	if tasks.Kind != yaml.MappingNode {
		return nil, &domain.DecodeError{
			Err:    domain.ErrIllegalDocument,
			Source: source,
			Detail: fmt.Sprintf("%s must be a mapping (line %d)", rootKey, tasks.Line),
		}
	}

	set := newEntrySet(source)
	w := &nodeWalker{budget: maxExpandedNodes}
	for i := 0; i+1 < len(tasks.Content); i += 2 {
		key, value := tasks.Content[i], resolveAlias(tasks.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return nil, &domain.DecodeError{
				Err:    domain.ErrIllegalDocument,
				Source: source,
				Detail: fmt.Sprintf("task id must be a scalar (line %d)", key.Line),
			}
		}
		if value.Kind != yaml.MappingNode {
			return nil, &domain.DecodeError{
				Err:    domain.ErrIllegalDocument,
				Source: source,
				Detail: fmt.Sprintf("task %q must be a mapping (line %d)", key.Value, key.Line),
			}
		}

		fields := make(map[string]any, len(entryFields))
		for j := 0; j+1 < len(value.Content); j += 2 {
			name := value.Content[j].Value
			if !entryFields[name] {
				continue
			}
			v, err := w.value(value.Content[j+1])
			if err != nil {
				return nil, &domain.DecodeError{
					Err:    domain.ErrIllegalDocument,
					Source: source,
					Detail: fmt.Sprintf("task %q field %s: %v", key.Value, name, err),
				}
			}
			fields[name] = v
		}
		if err := set.add(domain.RawEntry{ID: key.Value, Fields: fields, Line: key.Line}); err != nil {
			return nil, err
		}
	}

	if len(set.entries) == 0 {
		return nil, &domain.DecodeError{Err: domain.ErrEmptyDocument, Source: source}
	}
	return &domain.Document{RootKey: rootKey, Entries: set.entries}, nil
}

// lookup returns the value node under key in a mapping node.
func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if k := m.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// entryFields are the only entry fields read by the graph builder.
// Other keys are skipped without being expanded.
var entryFields = map[string]bool{
	domain.FieldName:  true,
	domain.FieldAfter: true,
	domain.FieldCmd:   true,
}

// maxExpandedNodes bounds the nodes one document may expand to once aliases
// are followed. yaml.v3 does not apply its own alias limit when decoding into
// a yaml.Node.
const maxExpandedNodes = 10000

var errTooManyNodes = errors.New("document expands to too many nodes (alias chain?)")

// nodeWalker converts nodes into plain values while counting every node it
// visits, aliases included.
type nodeWalker struct {
	budget int
}

// value converts a node. A !!str scalar becomes a string, null becomes nil,
// and other scalars keep their YAML type (int, float64, bool, ...), so that
// `name: 42` is not mistaken for a string.
func (w *nodeWalker) value(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	w.budget--
	if w.budget < 0 {
		return nil, errTooManyNodes
	}
	switch n.Kind {
	case yaml.ScalarNode:
		switch {
		case isNull(n):
			return nil, nil
		case n.ShortTag() == "!!str":
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := w.value(c)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			item, err := w.value(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = item
		}
		return m, nil
	default:
		return nil, nil
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
