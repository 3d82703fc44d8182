package batch

import (
	"errors"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteReport renders one table line per unit outcome. It is meant for
// stderr so it never collides with stream-mode JSON on stdout.
func WriteReport(w io.Writer, results []Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Input", "Output", "Rows", "Skipped", "Status"})

	for _, res := range results {
		out := res.Unit.Output
		if out == "" {
			out = "(stdout)"
		}

		status := "ok"
		if res.Err != nil {
			status = "failed"
			var ue *UnitError
			if errors.As(res.Err, &ue) {
				status = "failed: " + ue.Kind.String()
			}
		}

		table.Append([]string{
			res.Unit.Input,
			out,
			strconv.Itoa(res.Rows),
			strconv.Itoa(res.Skipped),
			status,
		})
	}

	table.Render()
}
