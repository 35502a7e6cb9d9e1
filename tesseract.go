package tesseract

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/ironsheep/tesseract/internal/prepare"
	"github.com/ironsheep/tesseract/internal/run"
	"github.com/ironsheep/tesseract/internal/scratch"
)

// DefaultCommand is the engine executable invoked when Options.Command is
// empty. Set it to an absolute path when tesseract is not on PATH.
var DefaultCommand = "tesseract"

// Options configures one engine invocation. The zero value is usable: engine
// default language, no extra config, normal priority, no timeout.
type Options struct {
	// Lang is the recognition language (e.g. "eng", or "eng+deu" for
	// multiple). Empty means the engine default.
	Lang string

	// Config holds extra engine flags, split on shell-word boundaries
	// before being appended to the argument list.
	Config string

	// Nice lowers (or raises) the engine's scheduling priority via a
	// "nice -n" prefix on platforms that have one. Zero means no prefix.
	Nice int

	// Timeout is the hard deadline for the engine run. When it elapses the
	// process is killed and the call fails with ErrTimedOut. Zero means the
	// run is awaited to completion no matter how long it takes.
	Timeout time.Duration

	// Command overrides DefaultCommand for this call.
	Command string

	// Enhance applies grayscale/contrast/sharpen preprocessing to the image
	// before it is handed to the engine. Helps with low-contrast scans.
	Enhance bool
}

// resolved returns a value copy with nil handled and the command defaulted.
func (o *Options) resolved() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.Command == "" {
		out.Command = DefaultCommand
	}
	return out
}

// acquire turns a source value into a scratch handle holding the engine
// input. Accepted sources: a string path to an existing image file (used
// as-is, no normalization), an encoded raster as []byte, or an image.Image.
func acquire(src any, o Options) (*scratch.Handle, error) {
	switch v := src.(type) {
	case string:
		return scratch.AcquirePath(v)
	case []byte:
		img, format, err := prepare.Decode(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
		}
		return acquireImage(img, format, o)
	case image.Image:
		return acquireImage(v, "", o)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, src)
	}
}

func acquireImage(img image.Image, declared string, o Options) (*scratch.Handle, error) {
	if o.Enhance {
		img = prepare.Enhance(img)
	}
	img, format, err := prepare.Normalize(img, declared)
	if err != nil {
		return nil, err
	}
	return scratch.Acquire(img, format)
}

// runAndGetOutput is the shared operation pipeline: acquire scratch files,
// run the engine, read back <base>.<extension>. Scratch release runs on
// every exit path, and a release failure on an otherwise successful run
// surfaces rather than being swallowed.
func runAndGetOutput(src any, extension string, o Options) (out []byte, err error) {
	h, err := acquire(src, o)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := h.Release(); rerr != nil && err == nil {
			out, err = nil, rerr
		}
	}()

	inv := run.Invocation{
		Command:    o.Command,
		InputPath:  h.InputPath,
		OutputBase: h.Base,
		Extension:  extension,
		Lang:       o.Lang,
		Config:     o.Config,
		Nice:       o.Nice,
		Timeout:    o.Timeout,
	}
	if err := run.Run(inv); err != nil {
		return nil, err
	}

	return readOutput(h.Base, extension)
}

func runAndGetString(src any, extension string, o Options) (string, error) {
	out, err := runAndGetOutput(src, extension, o)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ImageToString runs OCR on the source image and returns the recognized
// text.
func ImageToString(src any, opts *Options) (string, error) {
	return runAndGetString(src, "txt", opts.resolved())
}

// boxOptions appends the fixed config tokens box extraction requires.
func boxOptions(opts *Options) Options {
	o := opts.resolved()
	o.Config = strings.TrimSpace(o.Config + " batch.nochop makebox")
	return o
}

// ImageToBoxes returns recognized characters and their box boundaries, one
// "<char> <left> <bottom> <right> <top> <page>" line per character.
func ImageToBoxes(src any, opts *Options) (string, error) {
	return runAndGetString(src, "box", boxOptions(opts))
}

// ImageToBoxesDict returns the box output as a column-keyed table. Box files
// carry no header row, so the fixed header "char left bottom right top page"
// is supplied, with char as the free-text column.
func ImageToBoxesDict(src any, opts *Options) (map[string][]any, error) {
	boxes, err := ImageToBoxes(src, opts)
	if err != nil {
		return nil, err
	}
	return parseTable("char left bottom right top page\n"+boxes, " ", 0), nil
}

// dataOptions injects the config token that enables TSV creation.
func dataOptions(opts *Options) Options {
	o := opts.resolved()
	o.Config = strings.TrimSpace("-c tessedit_create_tsv=1 " + strings.TrimSpace(o.Config))
	return o
}

// requireTSV gates data extraction on the engine version that introduced
// TSV output. The check runs before any scratch file or process work.
func requireTSV() error {
	v, err := Version()
	if err != nil {
		return err
	}
	if v.LessThan(minTSVVersion) {
		return ErrTSVNotSupported
	}
	return nil
}

// ImageToData returns the word-level layout table (box boundaries,
// confidences, page/block/paragraph/line/word numbering) as raw TSV text.
// Requires Tesseract 3.05+.
func ImageToData(src any, opts *Options) (string, error) {
	if err := requireTSV(); err != nil {
		return "", err
	}
	return runAndGetString(src, "tsv", dataOptions(opts))
}

// ImageToDataDict returns the layout table as column-keyed cells; the final
// column is the free-text one.
func ImageToDataDict(src any, opts *Options) (map[string][]any, error) {
	data, err := ImageToData(src, opts)
	if err != nil {
		return nil, err
	}
	return parseTable(data, "\t", -1), nil
}

// ImageToDataObject returns the layout table decoded into typed DataLine
// records.
func ImageToDataObject(src any, opts *Options) (*Data, error) {
	data, err := ImageToData(src, opts)
	if err != nil {
		return nil, err
	}
	return parseData(data), nil
}

// osdOptions selects the page-segmentation-mode flag, whose spelling changed
// in engine 3.05, and defaults the language to the osd data pack.
func osdOptions(opts *Options) (Options, error) {
	v, err := Version()
	if err != nil {
		return Options{}, err
	}
	psm := "--psm 0"
	if v.LessThan(minTSVVersion) {
		psm = "-psm 0"
	}

	o := opts.resolved()
	if o.Lang == "" {
		o.Lang = "osd"
	}
	o.Config = strings.TrimSpace(psm + " " + strings.TrimSpace(o.Config))
	return o, nil
}

// ImageToOSD returns the engine's orientation and script detection report as
// text.
func ImageToOSD(src any, opts *Options) (string, error) {
	o, err := osdOptions(opts)
	if err != nil {
		return "", err
	}
	return runAndGetString(src, "osd", o)
}

// ImageToOSDDict returns orientation/script detection as a field-keyed
// mapping (page_num, orientation, rotate, orientation_conf, script,
// script_conf). The report is best-effort metadata: unrecognized labels and
// malformed values are dropped, not surfaced, so absent keys are expected.
func ImageToOSDDict(src any, opts *Options) (map[string]any, error) {
	osd, err := ImageToOSD(src, opts)
	if err != nil {
		return nil, err
	}
	return parseOSD(osd), nil
}

// ImageToPDFOrHOCR renders the OCR result as a searchable PDF or as hOCR
// markup. extension must be "pdf" or "hocr"; both are binary-oriented
// formats, so the output is always raw bytes.
func ImageToPDFOrHOCR(src any, extension string, opts *Options) ([]byte, error) {
	if extension != "pdf" && extension != "hocr" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, extension)
	}
	return runAndGetOutput(src, extension, opts.resolved())
}
