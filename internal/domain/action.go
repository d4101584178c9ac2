package domain

import (
	"context"
	"slices"
	"sort"
	"sync"
)

// Action is the executable payload of a task.
// A scheduler calls Run with the outputs of the task's precursors.
type Action interface {
	Run(ctx context.Context, in Input, env *Env) (Output, error)
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc func(ctx context.Context, in Input, env *Env) (Output, error)

// Run calls f.
func (f ActionFunc) Run(ctx context.Context, in Input, env *Env) (Output, error) {
	return f(ctx, in, env)
}

// Output is the result of a successful action run.
type Output struct {
	value any
}

// NewOutput wraps a value.
func NewOutput(v any) Output {
	return Output{value: v}
}

// EmptyOutput returns an output carrying no value.
func EmptyOutput() Output {
	return Output{}
}

// Value returns the wrapped value, or nil for an empty output.
func (o Output) Value() any {
	return o.value
}

// IsEmpty reports whether the output carries no value.
func (o Output) IsEmpty() bool {
	return o.value == nil
}

// Input holds the outputs of a task's precursors, in precursor order.
type Input struct {
	outputs []Output
}

// NewInput creates an input from precursor outputs.
func NewInput(outputs ...Output) Input {
	return Input{outputs: slices.Clone(outputs)}
}

// Len returns the number of outputs.
func (in Input) Len() int {
	return len(in.outputs)
}

// Get returns the i-th output, or an empty output when i is out of range.
func (in Input) Get(i int) Output {
	if i < 0 || i >= len(in.outputs) {
		return EmptyOutput()
	}
	return in.outputs[i]
}

// Outputs returns a copy of all outputs.
func (in Input) Outputs() []Output {
	return slices.Clone(in.outputs)
}

// Env is the environment shared by all actions of one graph.
// It is safe for concurrent use.
type Env struct {
	vars map[string]any
	mu   sync.RWMutex
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]any)}
}

// Set stores a value under key.
func (e *Env) Set(key string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars[key] = value
}

// Get returns the value stored under key.
func (e *Env) Get(key string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.vars[key]
	return v, ok
}

// GetString returns the value under key if it is a string.
func (e *Env) GetString(key string) (string, bool) {
	v, ok := e.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Keys returns the stored keys in sorted order.
func (e *Env) Keys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
