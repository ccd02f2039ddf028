package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ndewijer/Stock-AI-Report/internal/catalog"
)

func newTickersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tickers [query]",
		Short: "List the tickers a report can be requested for",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Default()
			if err != nil {
				return err
			}

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			matches := c.Search(query)
			if len(matches) == 0 {
				return fmt.Errorf("no ticker matches %q", query)
			}

			renderTickers(cmd.OutOrStdout(), matches)
			return nil
		},
	}
}

func renderTickers(w io.Writer, tickers []catalog.Ticker) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false

	tw.AppendHeader(table.Row{"CODE", "NAME", "EXCHANGE", "CURRENCY"})
	for _, t := range tickers {
		tw.AppendRow(table.Row{t.Code, t.Name, t.Exchange, strings.ToUpper(t.Currency)})
	}
	tw.Render()
}
