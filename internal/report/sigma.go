package report

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"

	"github.com/user/classex_explore_go/internal/analysis"
)

var sigmaTemplate = template.Must(template.New("sigma").Parse(`{{if .Title}}<p>{{.Title}}</p>
{{end}}<table>
<thead>
<tr><th>function</th><th>sigma</th></tr>
</thead>
<tbody>
{{range .Results}}<tr><td>{{.Title}}</td><td style="text-align: right;">{{printf "%.6g" .Sigma}}</td></tr>
{{end}}</tbody>
</table>
`))

// WriteSigma renders smoothed fluctuation amplitudes as "title : sigma"
// pairs (text), a two-column table (html), csv or json.
func WriteSigma(w io.Writer, title string, results []analysis.SigmaResult, format Format) error {
	switch format {
	case FormatText:
		if title != "" {
			if _, err := fmt.Fprintf(w, "%s\n\n", title); err != nil {
				return err
			}
		}
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "%s : %s\n", r.Title, exactFloat(r.Sigma)); err != nil {
				return err
			}
		}
		return nil
	case FormatHTML:
		data := jsonSigma{Title: title, Results: results}
		if err := sigmaTemplate.Execute(w, data); err != nil {
			return fmt.Errorf("failed to render html sigma table: %w", err)
		}
		return nil
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"function", "radius_mpc", "variance", "sigma"}); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
		for _, r := range results {
			row := []string{r.Title, exactFloat(r.Radius), exactFloat(r.Variance), exactFloat(r.Sigma)}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
		cw.Flush()
		return cw.Error()
	case FormatJSON:
		return encodeJSON(w, jsonSigma{Title: title, Results: results})
	default:
		return fmt.Errorf("format '%s' is not available for sigma results", format)
	}
}
