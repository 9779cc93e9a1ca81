// Package stdio provides the transport to a tool server subprocess.
// The server is spawned once, owned for the life of the session, and
// spoken to with newline-delimited JSON over its standard streams.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// ErrClosed is returned by Send and Receive after the transport is closed.
var ErrClosed = errors.New("transport is closed")

// maxLineSize bounds a single JSON-RPC message line read from the server.
const maxLineSize = 1024 * 1024

// Transport owns a tool server subprocess and frames JSON-RPC messages
// over its stdin/stdout pipes.
type Transport struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  io.ReadCloser
	scanner *bufio.Scanner
	logger  *slog.Logger

	writeMu sync.Mutex
	closeMu sync.Mutex
	closed  bool
}

// CommandForScript builds the command that runs a tool server script.
// Python scripts run under python, JavaScript under node; anything else
// is rejected before a process is spawned.
func CommandForScript(path string) (*exec.Cmd, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return exec.Command("python", path), nil
	case ".js":
		return exec.Command("node", path), nil
	default:
		return nil, fmt.Errorf("server script must be a .py or .js file, got %q", path)
	}
}

// New creates a transport for the given command. The command must not
// have been started yet; Start wires the pipes and launches it.
func New(cmd *exec.Cmd, logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Transport{cmd: cmd, logger: logger}
}

// NewWithIO creates a transport over an already-connected reader/writer
// pair instead of a subprocess. Used by tests and by callers that manage
// the server process themselves.
func NewWithIO(r io.Reader, w io.WriteCloser, logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Transport{
		stdin:   w,
		stdout:  io.NopCloser(r),
		scanner: scanner,
		logger:  logger,
	}
}

// Start launches the subprocess and takes ownership of its pipes.
// The child's stderr is routed to the parent's stderr so server-side
// diagnostics stay visible.
func (t *Transport) Start() error {
	stdin, err := t.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	stdout, err := t.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	t.cmd.Stderr = os.Stderr

	if err := t.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start tool server: %w", err)
	}

	t.stdin = stdin
	t.stdout = stdout
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	t.scanner = scanner

	t.logger.Debug("tool server started", "path", t.cmd.Path, "pid", t.cmd.Process.Pid)
	return nil
}

// Send writes one message to the server, terminated by exactly one newline.
func (t *Transport) Send(data []byte) error {
	t.closeMu.Lock()
	closed := t.closed
	t.closeMu.Unlock()
	if closed {
		return ErrClosed
	}
	if len(data) == 0 {
		return fmt.Errorf("cannot send empty message")
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	data = bytes.TrimRight(data, "\n")
	data = append(data, '\n')

	t.logger.Debug("send", "line", string(bytes.TrimRight(data, "\n")))
	if _, err := t.stdin.Write(data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// Receive blocks until the next non-empty line arrives from the server,
// the context is cancelled, or the stream ends. A clean child exit
// surfaces as io.EOF. Lines that are not valid JSON are an error: the
// framing has broken and resynchronizing is not possible.
func (t *Transport) Receive(ctx context.Context) ([]byte, error) {
	t.closeMu.Lock()
	closed := t.closed
	t.closeMu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	type result struct {
		data []byte
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		for t.scanner.Scan() {
			line := bytes.TrimSpace(t.scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			if !json.Valid(line) {
				resultCh <- result{err: fmt.Errorf("received invalid JSON line: %q", string(line))}
				return
			}
			data := make([]byte, len(line))
			copy(data, line)
			t.logger.Debug("receive", "line", string(data))
			resultCh <- result{data: data}
			return
		}
		if err := t.scanner.Err(); err != nil {
			resultCh <- result{err: fmt.Errorf("failed to read message line: %w", err)}
			return
		}
		resultCh <- result{err: io.EOF}
	}()

	select {
	case <-ctx.Done():
		// Closing the pipe unblocks the scanner goroutine.
		_ = t.Close()
		return nil, ctx.Err()
	case res := <-resultCh:
		return res.data, res.err
	}
}

// Close tears the subprocess down. It is idempotent and safe to call on
// every exit path: stdin is closed first so a well-behaved server exits
// on its own, then the process is killed if still running and reaped.
func (t *Transport) Close() error {
	t.closeMu.Lock()
	defer t.closeMu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.logger.Debug("closing transport")

	var firstErr error
	if t.stdin != nil {
		if err := t.stdin.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			firstErr = err
		}
	}
	if t.cmd != nil && t.cmd.Process != nil {
		if err := t.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			if firstErr == nil {
				firstErr = err
			}
		}
		// Wait also closes the stdout pipe; "killed" is the expected outcome.
		if err := t.cmd.Wait(); err != nil {
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
