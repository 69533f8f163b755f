package app

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"cerdito/internal/orchestrator"
)

// WriteSummary renders one row per backend, in run order.
func WriteSummary(w io.Writer, summary orchestrator.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetHeader([]string{
		"Backend",
		"Result",
		"Succeeded",
		"Attempted",
	})
	for _, o := range summary.Outcomes {
		result := "ok"
		switch {
		case o.Skipped:
			result = "skipped"
		case o.Failed():
			result = "failed"
		}
		table.Append([]string{
			o.Backend,
			result,
			fmt.Sprintf("%d", o.Succeeded),
			fmt.Sprintf("%d", o.Attempted),
		})
	}
	table.Render()
}
