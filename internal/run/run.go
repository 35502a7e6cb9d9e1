// Package run spawns the external OCR engine and reports how it exited.
//
// The engine is an opaque executable driven purely through its command line:
// it reads one input file, writes <output base>.<extension>, and reports
// diagnostics on stderr with a non-zero exit status. This package builds the
// argument list, enforces an optional hard timeout, and maps process-level
// failures onto a small error taxonomy the facade re-exports.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
)

var (
	// ErrNotFound indicates the engine executable could not be resolved.
	// Surfaced distinctly from other spawn failures so callers can give
	// actionable install guidance.
	ErrNotFound = errors.New("tesseract is not installed or it's not in your PATH")

	// ErrTimedOut indicates the timeout elapsed and the engine process was
	// forcibly killed before it exited on its own.
	ErrTimedOut = errors.New("tesseract process timeout")
)

// ExitError reports an engine run that exited with a non-zero status.
type ExitError struct {
	// Status is the engine's exit status.
	Status int

	// Message is the engine's stderr collapsed to a single
	// whitespace-joined line.
	Message string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("tesseract failed with status %d: %s", e.Status, e.Message)
}

// implicitSelector holds the extensions whose output selector is built into
// the engine; appending them to the argument list would be rejected.
var implicitSelector = map[string]bool{
	"box": true,
	"osd": true,
	"tsv": true,
}

// Invocation is the full description of one engine run. It exists only for
// the duration of that run.
type Invocation struct {
	// Command is the engine executable name or path.
	Command string

	// InputPath is the raster file handed to the engine.
	InputPath string

	// OutputBase is the path prefix the engine appends ".<extension>" to.
	OutputBase string

	// Extension selects the output encoding (txt, box, osd, tsv, pdf, hocr).
	Extension string

	// Lang is the recognition language passed via -l; empty means engine
	// default.
	Lang string

	// Config holds extra engine flags, split on shell-word boundaries.
	Config string

	// Nice adjusts process priority via a "nice -n" prefix. Zero means no
	// prefix; it is also skipped on platforms without a niceness concept.
	Nice int

	// Timeout is the hard deadline for the run; zero waits indefinitely.
	Timeout time.Duration
}

// args assembles the engine argument list, including the nice prefix when
// applicable.
func (inv Invocation) args() ([]string, error) {
	var argv []string

	if runtime.GOOS != "windows" && inv.Nice != 0 {
		argv = append(argv, "nice", "-n", strconv.Itoa(inv.Nice))
	}

	argv = append(argv, inv.Command, inv.InputPath, inv.OutputBase)

	if inv.Lang != "" {
		argv = append(argv, "-l", inv.Lang)
	}

	if inv.Config != "" {
		tokens, err := shlex.Split(inv.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to split config: %w", err)
		}
		argv = append(argv, tokens...)
	}

	if inv.Extension != "" && !implicitSelector[inv.Extension] {
		argv = append(argv, inv.Extension)
	}

	return argv, nil
}

// Run executes one engine invocation and blocks until it exits or the
// timeout fires. On success <output base>.<extension> has been written by
// the engine. The child inherits the current process environment; its stdin
// is not connected (the engine is never fed through stdin) and its stderr is
// captured for diagnostics.
func Run(inv Invocation) error {
	argv, err := inv.args()
	if err != nil {
		return err
	}

	ctx := context.Background()
	cancel := func() {}
	if inv.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
	}
	// Cancelling on every path stops the countdown the moment a normal
	// completion returns, so a late kill can never race with cleanup.
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	if err == nil {
		return nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimedOut, inv.Timeout)
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		return fmt.Errorf("%w (looked for %q)", ErrNotFound, inv.Command)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Status:  exitErr.ExitCode(),
			Message: collapse(stderr.Bytes()),
		}
	}

	return fmt.Errorf("failed to run %s: %w", inv.Command, err)
}

// collapse joins engine diagnostics into a single whitespace-separated line.
func collapse(stderr []byte) string {
	return strings.Join(strings.Fields(string(stderr)), " ")
}
