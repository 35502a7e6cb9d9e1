package tesseract

import "fmt"

// Operation identifies one of the engine-driving operations for dynamic
// dispatch through Do.
type Operation int

const (
	// OpText extracts recognized plain text.
	OpText Operation = iota
	// OpBoxes extracts character bounding boxes.
	OpBoxes
	// OpData extracts the word-level layout table (Tesseract 3.05+).
	OpData
	// OpOSD detects page orientation and script.
	OpOSD
	// OpPDF renders a searchable PDF.
	OpPDF
	// OpHOCR renders hOCR markup.
	OpHOCR
)

func (op Operation) String() string {
	switch op {
	case OpText:
		return "text"
	case OpBoxes:
		return "boxes"
	case OpData:
		return "data"
	case OpOSD:
		return "osd"
	case OpPDF:
		return "pdf"
	case OpHOCR:
		return "hocr"
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// OutputKind selects the result representation an operation produces.
type OutputKind int

const (
	// OutputString is the decoded textual form (UTF-8, trimmed).
	OutputString OutputKind = iota
	// OutputBytes is the raw output file contents.
	OutputBytes
	// OutputDict is the structured mapping form.
	OutputDict
	// OutputObject is the decoded native form (*Data for OpData).
	OutputObject
	// OutputDataFrame is reserved for downstream tabular consumers of the
	// TSV parse; no operation in this package produces it.
	OutputDataFrame
)

func (k OutputKind) String() string {
	switch k {
	case OutputString:
		return "string"
	case OutputBytes:
		return "bytes"
	case OutputDict:
		return "dict"
	case OutputObject:
		return "object"
	case OutputDataFrame:
		return "data.frame"
	}
	return fmt.Sprintf("OutputKind(%d)", int(k))
}

// validKinds is the static table of representations each operation can
// produce. Do rejects anything outside it before any process is spawned.
var validKinds = map[Operation]map[OutputKind]bool{
	OpText:  {OutputString: true, OutputBytes: true, OutputDict: true},
	OpBoxes: {OutputString: true, OutputBytes: true, OutputDict: true},
	OpData:  {OutputString: true, OutputBytes: true, OutputDict: true, OutputObject: true},
	OpOSD:   {OutputString: true, OutputBytes: true, OutputDict: true},
	OpPDF:   {OutputBytes: true},
	OpHOCR:  {OutputBytes: true},
}

// Do runs one operation and decodes the requested representation. It is the
// dynamic counterpart of the typed ImageTo* functions for callers that
// select operation and output kind at runtime. Illegal combinations fail
// with ErrNotApplicable before any engine process is spawned.
//
// Result types by kind: OutputString yields string; OutputBytes yields
// []byte; OutputDict yields map[string]any for OpText and OpOSD and
// map[string][]any for OpBoxes and OpData; OutputObject yields *Data.
func Do(op Operation, kind OutputKind, src any, opts *Options) (any, error) {
	if !validKinds[op][kind] {
		return nil, fmt.Errorf("%w: %s output for %s", ErrNotApplicable, kind, op)
	}

	switch op {
	case OpText:
		if kind == OutputBytes {
			return runAndGetOutput(src, "txt", opts.resolved())
		}
		s, err := ImageToString(src, opts)
		if err != nil {
			return nil, err
		}
		if kind == OutputDict {
			return map[string]any{"text": s}, nil
		}
		return s, nil

	case OpBoxes:
		if kind == OutputBytes {
			return runAndGetOutput(src, "box", boxOptions(opts))
		}
		if kind == OutputDict {
			return ImageToBoxesDict(src, opts)
		}
		return ImageToBoxes(src, opts)

	case OpData:
		switch kind {
		case OutputBytes:
			if err := requireTSV(); err != nil {
				return nil, err
			}
			return runAndGetOutput(src, "tsv", dataOptions(opts))
		case OutputDict:
			return ImageToDataDict(src, opts)
		case OutputObject:
			return ImageToDataObject(src, opts)
		}
		return ImageToData(src, opts)

	case OpOSD:
		if kind == OutputBytes {
			o, err := osdOptions(opts)
			if err != nil {
				return nil, err
			}
			return runAndGetOutput(src, "osd", o)
		}
		if kind == OutputDict {
			return ImageToOSDDict(src, opts)
		}
		return ImageToOSD(src, opts)

	case OpPDF:
		return ImageToPDFOrHOCR(src, "pdf", opts)

	case OpHOCR:
		return ImageToPDFOrHOCR(src, "hocr", opts)
	}

	return nil, fmt.Errorf("%w: %s output for %s", ErrNotApplicable, kind, op)
}
