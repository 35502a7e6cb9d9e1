package tesseract

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Sentinel defaults for DataLine fields the engine's header did not include.
// They keep the struct forward-compatible with engine versions that add or
// omit columns: -2 never occurs as a real coordinate or confidence, and a
// bare tab never occurs as recognized text.
const (
	defaultInt  = -2
	defaultText = "\t"
)

// readOutput reads the single output file the engine left behind. A missing
// or unreadable file after a reported success is an internal-consistency
// violation and always surfaces.
func readOutput(base, extension string) ([]byte, error) {
	name := base + "." + extension
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine output: %w", err)
	}
	return data, nil
}

// isDigits reports whether s is non-empty and entirely ASCII digits. Signed
// or fractional cells do not count; they stay strings.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseTable decodes a delimited engine table into column-keyed cells.
//
// The first line is the header row. Cells that are all digits are coerced to
// int unless they belong to the free-text column, identified by textCol; a
// negative textCol counts back from the last column. When the final text
// cell is empty the engine omits it entirely, leaving the last row one cell
// short, so that row is padded with a single empty string.
func parseTable(table, delimiter string, textCol int) map[string][]any {
	result := make(map[string][]any)

	var rows [][]string
	for _, line := range strings.Split(table, "\n") {
		rows = append(rows, strings.Split(line, delimiter))
	}
	if len(rows) == 0 {
		return result
	}

	header := rows[0]
	rows = rows[1:]
	if len(rows) > 0 && len(rows[len(rows)-1]) < len(header) {
		last := rows[len(rows)-1]
		rows[len(rows)-1] = append(last, "")
	}

	if textCol < 0 {
		textCol += len(header)
	}

	for i, name := range header {
		cells := make([]any, 0, len(rows))
		for _, row := range rows {
			if len(row) <= i {
				continue
			}
			if i != textCol && isDigits(row[i]) {
				n, _ := strconv.Atoi(row[i])
				cells = append(cells, n)
			} else {
				cells = append(cells, row[i])
			}
		}
		result[name] = cells
	}

	return result
}

// DataLine is one detail row of the engine's TSV data output. Fields absent
// from the header keep their sentinel defaults (-2 for numbers, a tab for
// text). Raw preserves every header cell exactly as received, which covers
// columns this struct does not model and numeric cells that do not parse as
// integers (fractional confidences, for example).
type DataLine struct {
	Level    int    `json:"level"`
	PageNum  int    `json:"page_num"`
	BlockNum int    `json:"block_num"`
	ParNum   int    `json:"par_num"`
	LineNum  int    `json:"line_num"`
	WordNum  int    `json:"word_num"`
	Left     int    `json:"left"`
	Top      int    `json:"top"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Conf     int    `json:"conf"`
	Text     string `json:"text"`

	Raw map[string]string `json:"-"`
}

// set records one header cell on the line, coercing to int where the field
// is numeric and the cell parses.
func (l *DataLine) set(name, cell string) {
	l.Raw[name] = cell

	if name == "text" {
		l.Text = cell
		return
	}

	n, err := strconv.Atoi(cell)
	if err != nil {
		return
	}
	switch name {
	case "level":
		l.Level = n
	case "page_num":
		l.PageNum = n
	case "block_num":
		l.BlockNum = n
	case "par_num":
		l.ParNum = n
	case "line_num":
		l.LineNum = n
	case "word_num":
		l.WordNum = n
	case "left":
		l.Left = n
	case "top":
		l.Top = n
	case "width":
		l.Width = n
	case "height":
		l.Height = n
	case "conf":
		l.Conf = n
	}
}

// Data is the engine's TSV data output decoded into typed detail lines.
type Data struct {
	// Headers is the engine's header row in original column order.
	Headers []string `json:"headers"`

	// Lines holds one DataLine per detail row, in file order.
	Lines []DataLine `json:"lines"`
}

// parseData expands a TSV data string into a Data value, mapping each
// tab-separated field to its attribute via the header row.
func parseData(data string) *Data {
	rows := strings.Split(data, "\n")
	d := &Data{Headers: strings.Split(rows[0], "\t")}

	for _, row := range rows[1:] {
		line := DataLine{
			Level:    defaultInt,
			PageNum:  defaultInt,
			BlockNum: defaultInt,
			ParNum:   defaultInt,
			LineNum:  defaultInt,
			WordNum:  defaultInt,
			Left:     defaultInt,
			Top:      defaultInt,
			Width:    defaultInt,
			Height:   defaultInt,
			Conf:     defaultInt,
			Text:     defaultText,
			Raw:      make(map[string]string, len(d.Headers)),
		}
		cells := strings.Split(row, "\t")
		for i, name := range d.Headers {
			if i >= len(cells) {
				break
			}
			line.set(name, cells[i])
		}
		d.Lines = append(d.Lines, line)
	}

	return d
}

// String re-serializes the decoded table with the original delimiters, cells
// in header order.
func (d *Data) String() string {
	out := []string{strings.Join(d.Headers, "\t")}
	for _, line := range d.Lines {
		cells := make([]string, 0, len(d.Headers))
		for _, name := range d.Headers {
			cells = append(cells, line.Raw[name])
		}
		out = append(out, strings.Join(cells, "\t"))
	}
	return strings.Join(out, "\n")
}

type osdKind int

const (
	osdInt osdKind = iota
	osdFloat
	osdString
)

type osdKey struct {
	field string
	kind  osdKind
}

// osdKeys maps the engine's orientation/script labels to output field names
// and target types. Labels outside this table are dropped.
var osdKeys = map[string]osdKey{
	"Page number":            {"page_num", osdInt},
	"Orientation in degrees": {"orientation", osdInt},
	"Rotate":                 {"rotate", osdInt},
	"Orientation confidence": {"orientation_conf", osdFloat},
	"Script":                 {"script", osdString},
	"Script confidence":      {"script_conf", osdFloat},
}

// parseOSD decodes "<label>: <value>" lines into a field-keyed mapping. OSD
// output is best-effort metadata: lines with unknown labels, and values that
// fail to parse as their declared type, are silently dropped rather than
// failing the whole call.
func parseOSD(osd string) map[string]any {
	result := make(map[string]any)
	for _, line := range strings.Split(osd, "\n") {
		label, value, found := strings.Cut(line, ": ")
		if !found {
			continue
		}
		key, ok := osdKeys[label]
		if !ok {
			continue
		}
		switch key.kind {
		case osdInt:
			if isDigits(value) {
				n, _ := strconv.Atoi(value)
				result[key.field] = n
			}
		case osdFloat:
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				result[key.field] = f
			}
		case osdString:
			result[key.field] = value
		}
	}
	return result
}
