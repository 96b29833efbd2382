package scoreboard

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteTable prints games as a plain-text table for the CLI
func WriteTable(w io.Writer, games []Game) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader([]string{"Away", "Score", "Home", "Score", "Status"})

	for _, g := range games {
		table.Append([]string{g.Away, g.AwayScore, g.Home, g.HomeScore, g.Status})
	}
	table.Render()
}
