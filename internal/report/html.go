package report

import (
	"fmt"
	"html/template"
	"io"
)

var tableTemplate = template.Must(template.New("table").Parse(`{{if .Title}}<p>{{.Title}}</p>
{{end}}<table>
<thead>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td style="text-align: right;">{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{range .Notes}}<p>{{.}}</p>
{{end}}`))

type htmlTable struct {
	Title   string
	Headers []string
	Rows    [][]string
	Notes   []string
}

// WriteHTML renders doc as an HTML fragment: the title paragraph followed by
// the table.
func WriteHTML(w io.Writer, doc *Document) error {
	data := htmlTable{
		Title:   doc.Title,
		Headers: doc.Headers(),
		Rows:    doc.Cells(shortFloat),
		Notes:   doc.Notes,
	}
	if err := tableTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render html table: %w", err)
	}
	return nil
}
