package domain

import "slices"

// PendingTask is a task whose precursors are still the document ids written
// in the configuration. It becomes a Task once every reference is resolved.
type PendingTask struct {
	action     Action
	documentID string
	name       string
	after      []string
	id         TaskID
}

// ID returns the numeric id allocated at construction.
func (p *PendingTask) ID() TaskID { return p.id }

// DocumentID returns the key the entry appeared under.
func (p *PendingTask) DocumentID() string { return p.documentID }

// Name returns the human-readable name.
func (p *PendingTask) Name() string { return p.name }

// After returns the textual precursor references in written order.
func (p *PendingTask) After() []string { return slices.Clone(p.after) }

// Action returns the task's action.
func (p *PendingTask) Action() Action { return p.action }

// resolve maps every textual reference through ids. It fails on the first
// reference with no entry and leaves the pending task untouched.
func (p *PendingTask) resolve(ids map[string]TaskID) (*Task, error) {
	precursors := make([]TaskID, 0, len(p.after))
	for _, ref := range p.after {
		id, ok := ids[ref]
		if !ok {
			return nil, &UnresolvedPrecursorError{Task: p.name, Reference: ref}
		}
		precursors = append(precursors, id)
	}
	return &Task{
		id:         p.id,
		documentID: p.documentID,
		name:       p.name,
		precursors: precursors,
		action:     p.action,
	}, nil
}

// Task is a fully resolved unit of work: the vertex a scheduler consumes.
// It is immutable once built.
type Task struct {
	action     Action
	documentID string
	name       string
	precursors []TaskID
	id         TaskID
}

// ID returns the process-unique numeric id.
func (t *Task) ID() TaskID { return t.id }

// DocumentID returns the key the entry appeared under.
func (t *Task) DocumentID() string { return t.documentID }

// Name returns the human-readable name.
func (t *Task) Name() string { return t.name }

// Precursors returns a copy of the numeric ids this task depends on.
func (t *Task) Precursors() []TaskID { return slices.Clone(t.precursors) }

// Action returns the task's action.
func (t *Task) Action() Action { return t.action }

// IsRoot returns true if the task has no precursors.
func (t *Task) IsRoot() bool {
	return len(t.precursors) == 0
}
