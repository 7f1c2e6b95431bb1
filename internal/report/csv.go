package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV renders doc as comma-separated values with full precision. The
// title and notes become leading '#' comment lines.
func WriteCSV(w io.Writer, doc *Document) error {
	comments := doc.Notes
	if doc.Title != "" {
		comments = append([]string{doc.Title}, comments...)
	}
	for _, c := range comments {
		if _, err := fmt.Fprintf(w, "# %s\n", c); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(doc.Headers()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(doc.Cells(exactFloat)); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}
