package report

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/user/classex_explore_go/internal/analysis"
)

type jsonDocument struct {
	Title   string      `json:"title,omitempty"`
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
	Notes   []string    `json:"notes,omitempty"`
}

// WriteJSON renders doc as a single JSON object with row-major values.
func WriteJSON(w io.Writer, doc *Document) error {
	rows, _ := doc.Table.Dims()
	out := jsonDocument{
		Title:   doc.Title,
		Columns: doc.Headers(),
		Rows:    make([][]float64, rows),
		Notes:   doc.Notes,
	}
	for i := range out.Rows {
		out.Rows[i] = doc.Table.Row(i)
	}
	return encodeJSON(w, out)
}

type jsonSigma struct {
	Title   string                 `json:"title,omitempty"`
	Results []analysis.SigmaResult `json:"results"`
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
