package domain

import (
	"context"
	"fmt"
	"strings"
)

// DefaultShell is the program command strings are handed to.
const DefaultShell = "sh"

// ExecCommand represents an external command to be executed.
// This type is used to pass command information between layers
// without exposing implementation details.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
	Env     []string // Extra KEY=VALUE pairs appended to the process environment
}

// NewCommand creates a command that runs program with args.
func NewCommand(program string, args []string, dir string) *ExecCommand {
	return &ExecCommand{Program: program, Args: args, Dir: dir}
}

// NewShellCommand creates a command that runs script through DefaultShell.
func NewShellCommand(script, dir string) *ExecCommand {
	return NewShellCommandWith(DefaultShell, script, dir)
}

// NewShellCommandWith creates a command that runs script through shell.
func NewShellCommandWith(shell, script, dir string) *ExecCommand {
	if shell == "" {
		shell = DefaultShell
	}
	return &ExecCommand{Program: shell, Args: []string{"-c", script}, Dir: dir}
}

// ExecResult is what an executed process left behind.
// ExitCode is -1 when the process could not be started.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandAction is the built-in action: it runs a command string through a
// shell and returns the trimmed stdout.
type CommandAction struct {
	exec    CommandExecutor
	command string
	shell   string
}

// Ensure CommandAction implements Action.
var _ Action = (*CommandAction)(nil)

// NewCommandAction creates an action running command with exec.
// An empty shell means DefaultShell.
func NewCommandAction(command string, exec CommandExecutor, shell string) *CommandAction {
	if shell == "" {
		shell = DefaultShell
	}
	return &CommandAction{command: command, exec: exec, shell: shell}
}

// Command returns the command string.
func (a *CommandAction) Command() string {
	return a.command
}

// Shell returns the shell program the command runs in.
func (a *CommandAction) Shell() string {
	return a.shell
}

// Run spawns the command and waits for it.
// String values of env are exported to the process as KEY=VALUE.
func (a *CommandAction) Run(ctx context.Context, _ Input, env *Env) (Output, error) {
	if strings.TrimSpace(a.command) == "" {
		return EmptyOutput(), ErrEmptyCommand
	}

	cmd := NewShellCommandWith(a.shell, a.command, "")
	cmd.Env = envPairs(env)

	res, err := a.exec.Execute(ctx, cmd)
	if err != nil || (res != nil && res.ExitCode != 0) {
		cerr := &CommandError{Command: a.command, ExitCode: -1, Err: err}
		if res != nil {
			cerr.ExitCode = res.ExitCode
			cerr.Stderr = strings.TrimSpace(res.Stderr)
		}
		return EmptyOutput(), cerr
	}

	if res == nil {
		return EmptyOutput(), nil
	}
	return NewOutput(strings.TrimSpace(res.Stdout)), nil
}

// envPairs returns the string values of env as KEY=VALUE pairs in key order.
func envPairs(env *Env) []string {
	if env == nil {
		return nil
	}
	var pairs []string
	for _, k := range env.Keys() {
		if v, ok := env.GetString(k); ok {
			pairs = append(pairs, k+"="+v)
		}
	}
	return pairs
}

// CommandError reports a command that could not be started or exited non-zero.
type CommandError struct {
	Err      error
	Command  string
	Stderr   string
	ExitCode int
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%v: %q (exit %d)", ErrCommandFailed, e.Command, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Unwrap returns both ErrCommandFailed and the executor error.
func (e *CommandError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCommandFailed}
	}
	return []error{ErrCommandFailed, e.Err}
}
