package domain

import "fmt"

// GraphBuilder turns decoded documents into resolved task sets.
type GraphBuilder struct {
	alloc *IDAllocator
	exec  CommandExecutor
	shell string
}

// NewGraphBuilder creates a builder drawing ids from alloc. Command actions
// it creates run through exec in shell (empty means DefaultShell).
func NewGraphBuilder(alloc *IDAllocator, exec CommandExecutor, shell string) *GraphBuilder {
	return &GraphBuilder{alloc: alloc, exec: exec, shell: shell}
}

// Build parses every entry of doc and resolves all precursor references.
//
// Overrides are keyed by document id. An override that matches an entry is
// removed from the map and used as that entry's action; the rest stay in the
// map untouched. Build is all or nothing: on any error no tasks are returned.
// Tasks come back in document order.
func (b *GraphBuilder) Build(doc *Document, overrides map[string]Action) ([]*Task, error) {
	if doc.Len() == 0 {
		return nil, ErrEmptyDocument
	}

	// Allocate ids before looking at references so entries may refer
	// forward as well as backward.
	pending := make([]*PendingTask, 0, len(doc.Entries))
	ids := make(map[string]TaskID, len(doc.Entries))
	for _, entry := range doc.Entries {
		if _, dup := ids[entry.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, entry.ID)
		}

		override, ok := overrides[entry.ID]
		if ok {
			delete(overrides, entry.ID)
		}

		p, err := b.ParseEntry(entry, override)
		if err != nil {
			return nil, err
		}
		ids[entry.ID] = p.ID()
		pending = append(pending, p)
	}

	tasks := make([]*Task, 0, len(pending))
	for _, p := range pending {
		t, err := p.resolve(ids)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
