package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText renders doc as right-aligned plain-text columns.
func WriteText(w io.Writer, doc *Document) error {
	if doc.Title != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", doc.Title); err != nil {
			return err
		}
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "%s\t\n", strings.Join(doc.Headers(), "\t")); err != nil {
		return fmt.Errorf("failed to write text table: %w", err)
	}
	for _, row := range doc.Cells(shortFloat) {
		if _, err := fmt.Fprintf(tw, "%s\t\n", strings.Join(row, "\t")); err != nil {
			return fmt.Errorf("failed to write text table: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write text table: %w", err)
	}
	for _, note := range doc.Notes {
		if _, err := fmt.Fprintf(w, "\n%s\n", note); err != nil {
			return err
		}
	}
	return nil
}
