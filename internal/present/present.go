package present

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"eodseries/internal/provider"
	"eodseries/internal/series"
)

// Presenter writes series as plain text, one observation per line.
type Presenter struct {
	w io.Writer
}

func New(w io.Writer) *Presenter { return &Presenter{w: w} }

// PrintYearly prints a yearly series, one "year<TAB>date<TAB>value" line per observation.
func (p *Presenter) PrintYearly(s series.Series) error {
	for _, o := range s {
		if _, err := fmt.Fprintf(p.w, "%d\t%s\t%s\n", o.Date.Year(), o.Date.Format(provider.DateLayout), formatFloat(o.Value)); err != nil {
			return err
		}
	}
	return nil
}

// PrintRange prints s verbatim, one "date<TAB>value" line per observation.
func (p *Presenter) PrintRange(s series.Series) error {
	for _, o := range s {
		if _, err := fmt.Fprintf(p.w, "%s\t%s\n", o.Date.Format(provider.DateLayout), formatFloat(o.Value)); err != nil {
			return err
		}
	}
	return nil
}

// PrintTable prints every column of d with a header line. Nulls print as NaN.
func (p *Presenter) PrintTable(d provider.Dataset) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Date\t%s\t\n", strings.Join(d.Columns, "\t"))
	cells := make([]string, len(d.Columns))
	for _, r := range d.Rows {
		for i := range cells {
			cells[i] = "NaN"
			if i < len(r.Values) && r.Values[i] != nil {
				cells[i] = formatFloat(*r.Values[i])
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", r.Date.Format(provider.DateLayout), strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
