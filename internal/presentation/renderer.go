package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mohamedkhairy/stock-analysis/internal/models"
	"github.com/mohamedkhairy/stock-analysis/internal/pipeline"
)

// Renderer writes a report to an output stream
type Renderer interface {
	Render(w io.Writer, report *pipeline.Report) error
}

// NewRenderer returns the renderer for format ("text" or "json")
func NewRenderer(format string, rowLimit int) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return &TextRenderer{RowLimit: rowLimit}, nil
	case "json":
		return &JSONRenderer{Indent: true}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// TextRenderer prints aligned tables of the summary and metric rows.
// A positive RowLimit keeps only the most recent rows.
type TextRenderer struct {
	RowLimit int
}

// Render implements Renderer
func (r *TextRenderer) Render(w io.Writer, report *pipeline.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "Technical Analysis for %s (%s)\n\n", report.Symbol, report.Category)

	fmt.Fprintln(tw, "Descriptive Stats")
	fmt.Fprintln(tw, "\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax\t")
	for _, c := range report.Summary.Columns {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			c.Column, c.Count,
			num(c.Mean), num(c.Std), num(c.Min), num(c.Q25), num(c.Median), num(c.Q75), num(c.Max))
	}
	fmt.Fprintln(tw)

	rows := report.Rows
	if r.RowLimit > 0 && len(rows) > r.RowLimit {
		rows = rows[len(rows)-r.RowLimit:]
		fmt.Fprintf(tw, "Metrics (last %d of %d rows)\n", len(rows), len(report.Rows))
	} else {
		fmt.Fprintf(tw, "Metrics (%d rows)\n", len(rows))
	}
	fmt.Fprintln(tw, "date\tclose\tdaily_return\tvolatility_20\tsma_50\tsma_200\tcumulative_return\t")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			row.Date.Format(models.DateLayout),
			num(row.Close), num(row.DailyReturn), num(row.Volatility20),
			num(row.SMA50), num(row.SMA200), num(row.CumulativeReturn))
	}

	return tw.Flush()
}

func num(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

// JSONRenderer writes the report together with its chart specifications
type JSONRenderer struct {
	Indent bool
}

// Document is the JSON payload written by JSONRenderer
type Document struct {
	*pipeline.Report
	Charts []Chart `json:"charts"`
}

// Render implements Renderer
func (r *JSONRenderer) Render(w io.Writer, report *pipeline.Report) error {
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(Document{
		Report: report,
		Charts: Charts(report.Symbol, report.Rows),
	})
}
