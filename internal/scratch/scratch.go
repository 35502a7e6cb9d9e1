// Package scratch manages the temporary files one engine invocation needs.
//
// Each acquisition generates a process-unique base name under the system
// temp directory. The engine derives its own output file names from that
// base plus a per-operation extension, so the base name is decoupled from
// any extension until the operation is selected. Release removes every file
// sharing the base name, which catches the input file and whatever outputs
// the engine produced, without ever touching caller-owned files.
package scratch

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ironsheep/tesseract/internal/prepare"
)

// Handle is one invocation's scratch allocation. It is owned by exactly one
// engine run; the caller must guarantee Release runs on every exit path,
// typically via defer.
type Handle struct {
	// Base is the unique path prefix the engine appends output extensions to.
	Base string

	// InputPath is the file handed to the engine as input. It shares the
	// base prefix when the input was persisted here, or is the caller's own
	// file when acquired via AcquirePath.
	InputPath string
}

func newBase() string {
	return filepath.Join(os.TempDir(), "tess_"+uuid.NewString())
}

// Acquire persists a normalized image as engine input and returns the handle
// for the run. The input file is written as <base>.<format>.
func Acquire(img image.Image, format string) (*Handle, error) {
	h := &Handle{Base: newBase()}
	h.InputPath = h.Base + "." + format
	if err := prepare.Save(img, format, h.InputPath); err != nil {
		// A partial input file may exist; sweep it before reporting.
		_ = h.Release()
		return nil, fmt.Errorf("failed to write engine input: %w", err)
	}
	return h, nil
}

// AcquirePath treats an existing caller-owned file as the engine input. A
// fresh base name is still generated for the engine's outputs; Release only
// removes files matching that base, so the caller's file is never touched.
func AcquirePath(path string) (*Handle, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input path: %w", err)
	}
	return &Handle{Base: newBase(), InputPath: abs}, nil
}

// Release removes every file beginning with the handle's base name. Files
// already gone are a no-op; any other removal failure propagates, since
// silently leaking scratch files is worse than a noisy error.
func (h *Handle) Release() error {
	matches, err := filepath.Glob(h.Base + "*")
	if err != nil {
		return fmt.Errorf("failed to list scratch files: %w", err)
	}
	for _, name := range matches {
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove scratch file %s: %w", name, err)
		}
	}
	return nil
}
