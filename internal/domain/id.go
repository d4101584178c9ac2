package domain

import (
	"strconv"
	"sync/atomic"
)

// TaskID is the numeric handle a scheduler uses as the vertex key of a task.
// The zero value never identifies a task.
type TaskID uint64

// String returns the decimal form of the id.
func (id TaskID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IDAllocator hands out task ids. Every id returned by one allocator is
// strictly greater than the ones it returned before, including under
// concurrent callers. The first id is 1.
type IDAllocator struct {
	last atomic.Uint64
}

// NewIDAllocator creates an allocator whose first id is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns a fresh id.
func (a *IDAllocator) Next() TaskID {
	return TaskID(a.last.Add(1))
}
