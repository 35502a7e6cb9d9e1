package run

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	version "github.com/hashicorp/go-version"
)

// Version queries the engine with --version and parses the reported dotted
// version. The engine prints a leading label ("tesseract 5.3.0 ..."), so the
// second whitespace-delimited token is taken, with any leading non-digit
// characters stripped to tolerate spellings like "v4.1.1".
//
// Older engine releases print the version banner on stderr, so stdout and
// stderr are read combined.
func Version(command string) (*version.Version, error) {
	out, err := exec.Command(command, "--version").CombinedOutput()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w (looked for %q)", ErrNotFound, command)
		}
		return nil, fmt.Errorf("failed to query %s version: %w", command, err)
	}

	fields := strings.Fields(string(out))
	if len(fields) < 2 {
		return nil, fmt.Errorf("unexpected version output %q", strings.TrimSpace(string(out)))
	}

	raw := strings.TrimLeftFunc(fields[1], func(r rune) bool {
		return r < '0' || r > '9'
	})
	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse version %q: %w", fields[1], err)
	}
	return v, nil
}
