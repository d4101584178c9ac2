package domain

// ParseEntry turns one document entry into a pending task.
//
// The entry must carry a string name. When override is non-nil it becomes
// the action and any cmd field is ignored; otherwise a string cmd is required
// and wrapped in a CommandAction. References in after are not checked here.
// An id is allocated only for entries that parse.
func (b *GraphBuilder) ParseEntry(entry RawEntry, override Action) (*PendingTask, error) {
	name, ok := entry.String(FieldName)
	if !ok {
		return nil, &EntryError{Err: ErrMissingName, Subject: entry.ID}
	}

	after, err := entry.StringList(FieldAfter)
	if err != nil {
		return nil, err
	}

	action := override
	if action == nil {
		cmd, ok := entry.String(FieldCmd)
		if !ok {
			return nil, &EntryError{Err: ErrMissingCommand, Subject: name}
		}
		action = NewCommandAction(cmd, b.exec, b.shell)
	}

	return &PendingTask{
		id:         b.alloc.Next(),
		documentID: entry.ID,
		name:       name,
		after:      after,
		action:     action,
	}, nil
}
