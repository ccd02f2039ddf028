package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ndewijer/Stock-AI-Report/internal/model"
)

const notAvailable = "N/A"

// renderSummary prints the latest trading day of history as a one-row
// table. Every cell is N/A when history is empty.
func renderSummary(w io.Writer, sel model.TickerSelection, history model.PriceHistory) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	latest, ok := history.Latest()
	title := fmt.Sprintf("%s (%s)", sel.Name, sel.Code)
	if ok {
		title += " " + latest.Date
	}
	tw.SetTitle(title)

	tw.AppendHeader(table.Row{"OPEN", "CLOSE", "ADJ. CLOSE", "HIGH", "LOW"})
	if !ok {
		tw.AppendRow(table.Row{notAvailable, notAvailable, notAvailable, notAvailable, notAvailable})
	} else {
		tw.AppendRow(table.Row{
			price(sel.Currency, latest.Open),
			price(sel.Currency, latest.Close),
			price(sel.Currency, latest.AdjustedClose),
			price(sel.Currency, latest.High),
			price(sel.Currency, latest.Low),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	tw.Render()
}

func price(currency string, v float64) string {
	return fmt.Sprintf("%s %.2f", currency, v)
}
