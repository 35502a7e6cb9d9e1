// Package tesseract drives the external Tesseract OCR executable through its
// command-line interface and converts its file-based outputs into typed,
// queryable results.
//
// Callers hand an in-memory image (or a path to one) to a high-level
// operation and get back recognized text, character boxes, per-word layout
// data, orientation/script metadata, or rendered PDF/hOCR bytes. The package
// handles format negotiation, alpha flattening, temporary-file lifecycle,
// subprocess plumbing, timeouts, and output parsing; the engine itself stays
// an opaque executable resolved via DefaultCommand or Options.Command.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each recognition language, e.g.
// tesseract-ocr-eng for English.
//
// # Operations
//
//   - ImageToString: plain recognized text
//   - ImageToBoxes / ImageToBoxesDict: character bounding boxes
//   - ImageToData / ImageToDataDict / ImageToDataObject: word-level layout
//     table (requires Tesseract 3.05+)
//   - ImageToOSD / ImageToOSDDict: orientation and script detection
//   - ImageToPDFOrHOCR: searchable PDF or hOCR bytes
//   - Do: dynamic (operation, output kind) dispatch for callers selecting
//     the representation at runtime
//
// Every operation accepts an image.Image, a []byte holding an encoded
// raster, or a string path to an image file.
//
// # Temporary Files
//
// Each invocation allocates a unique scratch base name under the system temp
// directory; the engine input and every output it derives from that base are
// removed on all exit paths, including timeout-induced kills. Concurrent
// invocations never share scratch names.
//
// # Error Handling
//
// Failures surface as sentinel errors (ErrNotFound, ErrTimedOut,
// ErrTSVNotSupported, ErrNotApplicable, ErrUnsupportedInput,
// ErrUnsupportedFormat, ErrUnsupportedExtension) or as *ExitError carrying
// the engine's exit status and collapsed stderr. Nothing is retried
// automatically; retry policy belongs to the caller.
package tesseract
