package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"go.seanlatimer.dev/folio/internal/records"
	"go.seanlatimer.dev/folio/internal/search"
)

var matchColor = color.New(color.Bold, color.Underline)

func markMatch(s string) string {
	return matchColor.Sprint(s)
}

func highlight(text, query string) string {
	return search.Render(search.Highlight(text, query), markMatch)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	return table
}

func renderRecordTable(w io.Writer, recs []records.Record) {
	table := newTable(w, []string{"ID", "Title", "Date", "Tags"})
	for _, rec := range recs {
		table.Append([]string{
			rec.ID,
			rec.Title,
			records.Value(rec.Date),
			strings.Join(rec.Tags, ", "),
		})
	}
	table.Render()
}
