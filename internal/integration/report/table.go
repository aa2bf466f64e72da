package report

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

const barWidth = 30

// RenderTable renders the summary as boxed terminal tables.
func RenderTable(r Report) string {
	s := r.Summary
	var b strings.Builder

	b.WriteString(pterm.DefaultSection.Sprint(r.title()))
	b.WriteString(pterm.FgGray.Sprint(r.period()) + "\n\n")

	overview := pterm.TableData{
		{"Total", "Expenses", "Unattributed", "Granularity"},
		{
			pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint(s.Total.StringFixed(2)),
			fmt.Sprintf("%d", s.ExpenseCount),
			s.Unattributed.StringFixed(2),
			string(s.Unit),
		},
	}
	b.WriteString(renderData(overview, true))
	b.WriteString("\n")

	if len(s.TopCategories) > 0 {
		top := pterm.TableData{{"#", "Category", "Total"}}
		for i, c := range s.TopCategories {
			top = append(top, []string{fmt.Sprintf("%d", i+1), pterm.FgMagenta.Sprint(c.Label), c.Value.StringFixed(2)})
		}
		b.WriteString(renderData(top, true))
		b.WriteString("\n")
	}

	peak := decimal.Zero
	for _, p := range s.TimeSeries {
		if p.Value.GreaterThan(peak) {
			peak = p.Value
		}
	}
	series := pterm.TableData{{"Bucket", "Total", ""}}
	for _, p := range s.TimeSeries {
		series = append(series, []string{p.Label, p.Value.StringFixed(2), pterm.FgBlue.Sprint(bar(p.Value, peak))})
	}
	b.WriteString(renderData(series, false))

	return b.String()
}

func renderData(data pterm.TableData, boxed bool) string {
	table := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data)
	if boxed {
		table = table.WithBoxed()
	}
	rendered, _ := table.Srender()
	return rendered + "\n"
}

// bar scales value against peak to at most barWidth blocks.
func bar(value, peak decimal.Decimal) string {
	if !peak.IsPositive() || !value.IsPositive() {
		return ""
	}
	n := int(value.Div(peak).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}
