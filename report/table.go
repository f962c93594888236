package report

import (
	"fmt"
	"strconv"

	"junit-reporter-cli/testreport"

	"github.com/olekukonko/tablewriter"
)

// PrintSummaryTable writes the per-class statistics as an aligned table, one
// row per failing class plus a totals row.
func (p *Printer) PrintSummaryTable(grouped *testreport.GroupedFailures) error {
	p.PrintHeader("JUnit Failures Summary")

	table := tablewriter.NewWriter(p.out)
	table.Header([]string{"#", "Class", "Failures", "Time (s)"})

	totalTime := 0.0
	for i, group := range grouped.Groups() {
		totalTime += group.TotalTime()
		if err := table.Append([]string{
			strconv.Itoa(i + 1),
			group.ClassName(),
			strconv.Itoa(group.TotalFailures()),
			fmt.Sprintf("%.3f", group.TotalTime()),
		}); err != nil {
			return err
		}
	}
	if err := table.Append([]string{
		"",
		"Total",
		strconv.Itoa(grouped.TotalFailures()),
		fmt.Sprintf("%.3f", totalTime),
	}); err != nil {
		return err
	}

	return table.Render()
}
