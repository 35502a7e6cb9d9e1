package tesseract

import (
	"errors"

	"github.com/ironsheep/tesseract/internal/prepare"
	"github.com/ironsheep/tesseract/internal/run"
)

var (
	// ErrNotFound indicates the engine executable is missing from the
	// resolvable path.
	ErrNotFound = run.ErrNotFound

	// ErrTimedOut indicates the engine was killed after Options.Timeout
	// elapsed.
	ErrTimedOut = run.ErrTimedOut

	// ErrUnsupportedInput indicates a source value that is not an
	// image.Image, an encoded raster []byte, or a file path string.
	ErrUnsupportedInput = errors.New("unsupported image object")

	// ErrUnsupportedFormat indicates an image whose declared format is
	// outside the engine's supported set.
	ErrUnsupportedFormat = prepare.ErrUnsupportedFormat

	// ErrTSVNotSupported indicates a data extraction against an engine older
	// than 3.05, which cannot emit TSV.
	ErrTSVNotSupported = errors.New("TSV output not supported, Tesseract >= 3.05 required")

	// ErrNotApplicable indicates an output kind the requested operation
	// cannot produce.
	ErrNotApplicable = errors.New("output kind not applicable to this operation")

	// ErrUnsupportedExtension indicates a PDF/hOCR request with an extension
	// other than "pdf" or "hocr".
	ErrUnsupportedExtension = errors.New("unsupported extension")
)

// ExitError reports an engine run that exited with a non-zero status. It
// carries the exit status and the engine's stderr collapsed to one line.
type ExitError = run.ExitError
