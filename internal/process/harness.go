// Package process implements the child-process harness of spec.md §4.6:
// one spawned child per test, owning its stdin/stdout exclusively,
// line-buffered, with deterministic send/read-line/terminate operations.
// The command string is split into argv with github.com/google/shlex
// rather than a naive whitespace split, so a quoted argument containing
// spaces (spec.md §8 scenario B's `python3 -c '...'`) still reaches the
// child as one argument — without ever invoking a shell (spec.md §4.6:
// "a shell-free command string").
//
// Grounded on _examples/original_source/src/process.rs's spawn/pipe
// protocol and on the teacher's own os/exec usage in std/os.go
// (execCmd).
package process

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/tesc-lang/tesc/internal/exitcode"
)

// SpawnError classifies a failed spawn into one of spec.md §6's exit
// codes, so the CLI layer can map it without re-inspecting the OS error.
type SpawnError struct {
	Command string
	Code    exitcode.Code
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to run %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// FailureError is a RuntimeError::TestFailed (spec.md §7): an assertion
// mismatch, an EOF on read, a nonzero exit, or a signal termination.
type FailureError struct {
	Message string
}

func (e *FailureError) Error() string { return e.Message }

// Tracer receives --debug trace lines (spec.md §9's supplemented
// `process.rs` debug guards).
type Tracer interface {
	Trace(format string, args ...any)
}

type noopTracer struct{}

func (noopTracer) Trace(string, ...any) {}

// Harness owns one spawned child's stdio.
type Harness struct {
	command string
	debug   bool
	timeout time.Duration
	tracer  Tracer

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	reader *bufio.Reader
}

// Options configures a Harness.
type Options struct {
	Debug   bool
	Timeout time.Duration // spec.md §4.6's configurable read deadline, default 5s
	Tracer  Tracer
}

// Spawn starts command (split into argv, shell-free, per spec.md §4.6)
// and returns a Harness wired to its stdin/stdout. It performs the
// pre-flight spawn classification of spec.md §4.6 / process.rs before
// the real, line-buffered spawn.
func Spawn(command string, opts Options) (*Harness, error) {
	fields, err := shlex.Split(command)
	if err != nil {
		return nil, &SpawnError{Command: command, Code: exitcode.Unknown, Err: err}
	}
	if len(fields) == 0 {
		return nil, &SpawnError{Command: command, Code: exitcode.Unknown, Err: fmt.Errorf("empty command")}
	}

	if err := preflight(fields[0], fields[1:]); err != nil {
		return nil, err
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = noopTracer{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if opts.Debug {
		if _, err := exec.LookPath("stdbuf"); err != nil {
			tracer.Trace("stdbuf not found; running %q without line buffering", command)
		}
	}

	cmd, stdin, stdout, err := spawnLineBuffered(fields)
	if err != nil {
		return nil, &SpawnError{Command: command, Code: exitcode.Unknown, Err: err}
	}

	return &Harness{
		command: command,
		debug:   opts.Debug,
		timeout: timeout,
		tracer:  tracer,
		cmd:     cmd,
		stdin:   stdin,
		reader:  bufio.NewReader(stdout),
	}, nil
}

// preflight spawns the binary once with default stdio and immediately
// kills it, purely to classify spawn errors before the real spawn
// (spec.md §4.6; exit codes per spec.md §6).
func preflight(name string, args []string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		if isNotFound(err) {
			return &SpawnError{Command: name, Code: exitcode.ProcessNotFound, Err: err}
		}
		if isPermissionDenied(err) {
			return &SpawnError{Command: name, Code: exitcode.ProcessPermissionDenied, Err: err}
		}
		return &SpawnError{Command: name, Code: exitcode.Unknown, Err: err}
	}
	_ = cmd.Process.Kill()
	_, _ = cmd.Process.Wait()
	return nil
}

// spawnLineBuffered wraps argv in `stdbuf -o0 -e0` so the child's
// stdout stays unbuffered even though it's piped (process.rs), running
// the target binary directly — never through a shell, per spec.md
// §4.6's "shell-free command string". If stdbuf isn't on PATH the
// harness falls back to spawning argv directly — not in the original
// spec, but needed so the interpreter degrades gracefully on hosts
// without coreutils (SPEC_FULL.md §4).
func spawnLineBuffered(argv []string) (*exec.Cmd, io.WriteCloser, io.ReadCloser, error) {
	var cmd *exec.Cmd
	if _, err := exec.LookPath("stdbuf"); err == nil {
		cmd = exec.Command("stdbuf", append([]string{"-o0", "-e0"}, argv...)...)
	} else {
		cmd = exec.Command(argv[0], argv[1:]...)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, nil, err
	}
	return cmd, stdin, stdout, nil
}

// Send writes line, followed by `\n`, to the child's stdin and flushes.
// A multi-line input is split on `\n` and each line is framed and sent
// separately (spec.md §4.6).
func (h *Harness) Send(input string) error {
	for _, line := range strings.Split(input, "\n") {
		if h.debug {
			h.tracer.Trace("sending: %s", line)
		}
		if _, err := fmt.Fprintf(h.stdin, "%s\n", line); err != nil {
			return &FailureError{Message: "failed to write to stdin"}
		}
		if f, ok := h.stdin.(interface{ Sync() error }); ok {
			_ = f.Sync()
		}
	}
	if h.debug {
		h.tracer.Trace("sent: %s", input)
	}
	return nil
}

// ReadLine reads one line from stdout per line of expected, comparing
// after stripping only the right-hand newline from the line actually
// read (spec.md §4.6). A timeout or EOF produces a FailureError.
func (h *Harness) ReadLine(expected string) error {
	for _, line := range strings.Split(expected, "\n") {
		if h.debug {
			h.tracer.Trace("reading line")
		}
		got, err := h.readLineWithTimeout()
		if err != nil {
			return &FailureError{Message: "EOF on read"}
		}
		if h.debug {
			h.tracer.Trace("read: %s", got)
		}
		trimmed := strings.TrimRight(got, "\n")
		if trimmed != line {
			return &FailureError{Message: fmt.Sprintf("expected: %q, got: %q", line, trimmed)}
		}
	}
	return nil
}

func (h *Harness) readLineWithTimeout() (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := h.reader.ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	select {
	case r := <-ch:
		if r.err != nil && r.line == "" {
			return "", r.err
		}
		return r.line, nil
	case <-ctx.Done():
		return "", fmt.Errorf("read timed out after %s", h.timeout)
	}
}

// Terminate closes the child's stdin and waits for the child to exit.
// Spec.md §4.6: killed-by-signal or nonzero exit is a FailureError; exit
// 0 is success.
func (h *Harness) Terminate() error {
	_ = h.stdin.Close()
	err := h.cmd.Wait()
	if err == nil {
		return nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		if status, ok := exitErr.Sys().(interface{ Signaled() bool }); ok && status.Signaled() {
			if signaled, ok := exitErr.Sys().(interface{ Signal() interface{ String() string } }); ok {
				return &FailureError{Message: fmt.Sprintf("process terminated by signal: %s", signaled.Signal())}
			}
		}
		return &FailureError{Message: fmt.Sprintf("process exited with code: %d", exitErr.ExitCode())}
	}
	return &FailureError{Message: "failed to wait for child process"}
}

// Kill forcibly stops the child; used when a test aborts early.
func (h *Harness) Kill() {
	if h.cmd != nil && h.cmd.Process != nil {
		_ = h.cmd.Process.Kill()
	}
}
