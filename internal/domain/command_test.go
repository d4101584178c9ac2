package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor records the last command and replays a canned result.
type fakeExecutor struct {
	result *ExecResult
	err    error
	last   *ExecCommand
	calls  int
}

func (f *fakeExecutor) Execute(_ context.Context, cmd *ExecCommand) (*ExecResult, error) {
	f.calls++
	f.last = cmd
	return f.result, f.err
}

func TestNewShellCommand(t *testing.T) {
	cmd := NewShellCommand("echo hi", "/tmp")
	assert.Equal(t, "sh", cmd.Program)
	assert.Equal(t, []string{"-c", "echo hi"}, cmd.Args)
	assert.Equal(t, "/tmp", cmd.Dir)

	cmd = NewShellCommandWith("bash", "echo hi", "")
	assert.Equal(t, "bash", cmd.Program)

	cmd = NewShellCommandWith("", "echo hi", "")
	assert.Equal(t, DefaultShell, cmd.Program)
}

func TestCommandAction_Run_Success(t *testing.T) {
	exec := &fakeExecutor{result: &ExecResult{Stdout: "hello\n"}}
	action := NewCommandAction("echo hello", exec, "")

	env := NewEnv()
	env.Set("NAME", "world")
	env.Set("COUNT", 3) // not exported

	out, err := action.Run(context.Background(), NewInput(), env)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Value())

	require.NotNil(t, exec.last)
	assert.Equal(t, DefaultShell, exec.last.Program)
	assert.Equal(t, []string{"-c", "echo hello"}, exec.last.Args)
	assert.Equal(t, []string{"NAME=world"}, exec.last.Env)
}

func TestCommandAction_Run_CustomShell(t *testing.T) {
	exec := &fakeExecutor{result: &ExecResult{}}
	action := NewCommandAction("true", exec, "bash")
	assert.Equal(t, "bash", action.Shell())
	assert.Equal(t, "true", action.Command())

	_, err := action.Run(context.Background(), NewInput(), nil)
	require.NoError(t, err)
	assert.Equal(t, "bash", exec.last.Program)
	assert.Empty(t, exec.last.Env)
}

func TestCommandAction_Run_NonZeroExit(t *testing.T) {
	exitErr := errors.New("exit status 2")
	exec := &fakeExecutor{
		result: &ExecResult{Stderr: "bad things\n", ExitCode: 2},
		err:    exitErr,
	}
	action := NewCommandAction("false", exec, "")

	_, err := action.Run(context.Background(), NewInput(), NewEnv())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.ErrorIs(t, err, exitErr)

	var cerr *CommandError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.ExitCode)
	assert.Equal(t, "bad things", cerr.Stderr)
	assert.Contains(t, cerr.Error(), "exit 2")
}

func TestCommandAction_Run_SpawnFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("executable file not found")}
	action := NewCommandAction("echo a", exec, "no-such-shell")

	_, err := action.Run(context.Background(), NewInput(), NewEnv())
	var cerr *CommandError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, -1, cerr.ExitCode)
}

func TestCommandAction_Run_EmptyCommand(t *testing.T) {
	exec := &fakeExecutor{}
	action := NewCommandAction("   ", exec, "")

	_, err := action.Run(context.Background(), NewInput(), NewEnv())
	assert.ErrorIs(t, err, ErrEmptyCommand)
	assert.Zero(t, exec.calls)
}

func TestCommandAction_Run_NonZeroExitWithoutError(t *testing.T) {
	exec := &fakeExecutor{result: &ExecResult{Stdout: "partial", ExitCode: 1}}
	action := NewCommandAction("false", exec, "")

	out, err := action.Run(context.Background(), NewInput(), NewEnv())
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.True(t, out.IsEmpty())
}
