package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/anvlkv/acknowledgements/internal/app"
	"github.com/olekukonko/tablewriter"
)

// printSummary writes up to limit top report entries as a table.
func printSummary(w io.Writer, report *app.Report, limit int) {
	table := tablewriter.NewWriter(w)

	switch report.Format {
	case app.FormatDepAndNames:
		table.SetHeader([]string{"Dependency", "Contributors"})
		for i, e := range report.DepAndNames {
			if i == limit {
				break
			}
			names := make([]string, 0, len(e.Contributors))
			for _, c := range e.Contributors {
				names = append(names, c.Name)
			}
			table.Append([]string{e.Name, strings.Join(names, ", ")})
		}
	case app.FormatNameAndDeps:
		table.SetHeader([]string{"Contributor", "Dependencies"})
		for i, e := range report.NameAndDeps {
			if i == limit {
				break
			}
			table.Append([]string{e.Name, strings.Join(e.Dependencies, ", ")})
		}
	default:
		table.SetHeader([]string{"Contributor", "Contributions"})
		for i, e := range report.NameAndCount {
			if i == limit {
				break
			}
			table.Append([]string{e.Name, strconv.FormatUint(uint64(e.Count), 10)})
		}
	}
	table.SetFooter([]string{"Others", strconv.Itoa(report.Others)})
	table.Render()
}
