package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"aniharvest/internal/harvest"
)

func renderSummaryTable(summary harvest.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRows([]table.Row{
		{"Identifiers attempted", summary.Attempted},
		{"Series harvested", summary.Succeeded},
		{"Failed requests", summary.Failed},
		{"Single-episode series", summary.SingleEpisode},
		{"Multi-episode series", summary.MultiEpisode},
		{"Elapsed", summary.Elapsed.Round(time.Second).String()},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func renderSampleTable(records []harvest.SeriesRecord, limit int) string {
	if limit <= 0 || len(records) == 0 {
		return ""
	}
	if limit > len(records) {
		limit = len(records)
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Title", "TMDB", "Year", "Episodes"})
	for _, record := range records[:limit] {
		tmdbID := "-"
		if record.CatalogID != nil {
			tmdbID = strconv.FormatInt(*record.CatalogID, 10)
		}
		year := "-"
		if record.Year != nil {
			year = strconv.Itoa(*record.Year)
		}
		tw.AppendRow(table.Row{
			record.SerialNo,
			record.Title,
			tmdbID,
			year,
			record.Episodes,
		})
	}
	if limit < len(records) {
		tw.AppendFooter(table.Row{"", fmt.Sprintf("and %d more", len(records)-limit), "", "", ""})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
