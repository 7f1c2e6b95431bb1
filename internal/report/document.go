package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/user/classex_explore_go/internal/analysis"
)

// Format selects how a Document is rendered.
type Format string

const (
	FormatHTML  Format = "html"
	FormatText  Format = "text"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatPDF   Format = "pdf"
	FormatPNG   Format = "png"
	FormatChart Format = "chart"
)

// Formats lists every supported output format.
var Formats = []Format{FormatHTML, FormatText, FormatCSV, FormatJSON, FormatPDF, FormatPNG, FormatChart}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", fmt.Errorf("unknown output format '%s' (supported: %s)", name, strings.Join(names, ", "))
}

// Document is one query result ready for rendering: a heading line, the
// numeric table and optional trailing notes.
type Document struct {
	Title string
	Table *analysis.Table
	Notes []string
}

// Headers returns the column names of the table.
func (d *Document) Headers() []string {
	return append([]string(nil), d.Table.Columns...)
}

// Cells formats every table value with format.
func (d *Document) Cells(format func(float64) string) [][]string {
	rows, cols := d.Table.Dims()
	out := make([][]string, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]string, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = format(d.Table.At(i, j))
		}
	}
	return out
}

// Write renders doc to w in the requested format.
func Write(w io.Writer, doc *Document, format Format) error {
	if doc == nil || doc.Table == nil {
		return fmt.Errorf("nothing to render")
	}
	switch format {
	case FormatHTML:
		return WriteHTML(w, doc)
	case FormatText:
		return WriteText(w, doc)
	case FormatCSV:
		return WriteCSV(w, doc)
	case FormatJSON:
		return WriteJSON(w, doc)
	case FormatPNG:
		img, err := CreateLinePlot(doc.Table, doc.Title)
		if err != nil {
			return err
		}
		_, err = w.Write(img)
		return err
	case FormatPDF:
		img, err := CreateLinePlot(doc.Table, doc.Title)
		if err != nil {
			return err
		}
		return BuildPDFReport(w, doc, map[string][]byte{doc.Title: img})
	case FormatChart:
		return WriteChart(w, doc)
	default:
		return fmt.Errorf("unknown output format '%s'", format)
	}
}

// shortFloat mirrors the six significant digits of a printed table.
func shortFloat(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }

// exactFloat is the shortest representation that round-trips.
func exactFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func pngBytes(wt io.WriterTo) ([]byte, error) {
	buf := new(bytes.Buffer)
	if _, err := wt.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}
