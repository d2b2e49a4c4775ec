package main

import (
	"github.com/dekarrin/rosed"
)

// renderTraceTable renders trace-check results as a text table, the same
// job rosed.Edit(...).InsertTableOpts(...) does for debug command output
// in the teacher's own interactive session - one row per checked trace
// here instead of one row per NPC or flag.
func renderTraceTable(rows []traceRow) string {
	data := [][]string{{"trace", "result"}}
	for _, r := range rows {
		result := "accept"
		if r.err != nil {
			result = "error: " + r.err.Error()
		} else if !r.accept {
			result = "reject"
		}
		data = append(data, []string{r.trace, result})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 80, tableOpts).
		String()
}
