// Package report renders grouped test failures as human-readable text. It is
// a pure consumer of the aggregated model: summary, per-group details, or a
// single failure with its stack trace, selected by 1-based indices.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"junit-reporter-cli/testreport"
)

var (
	// ErrNoFailures is returned when a selection is made against an empty
	// or absent result set.
	ErrNoFailures = errors.New("the grouped failures cannot be empty")

	// ErrGroupIndexOutOfRange is returned when the requested group does
	// not exist.
	ErrGroupIndexOutOfRange = errors.New("the group index is out of bounds")

	// ErrFailureIndexOutOfRange is returned when the requested failure
	// does not exist within its group.
	ErrFailureIndexOutOfRange = errors.New("the failure index is out of bounds")

	// ErrInvalidSelection is returned when a selection argument is not a
	// group or group.failure index.
	ErrInvalidSelection = errors.New("invalid selection")
)

const (
	defaultIndentSize = 8
	minSeparatorWidth = 50
)

// Printer writes failure reports to an output stream.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// GroupByIndex resolves a 0-based group index against the ordered groups. An
// empty result set is reported as a distinct condition from an out-of-range
// index.
func GroupByIndex(grouped *testreport.GroupedFailures, index int) (*testreport.ClassFailures, error) {
	if grouped == nil || grouped.Len() == 0 {
		return nil, ErrNoFailures
	}
	if index < 0 || index >= grouped.Len() {
		return nil, ErrGroupIndexOutOfRange
	}
	return grouped.Groups()[index], nil
}

// Indent prefixes every line of text with size spaces. A zero size returns
// the text unchanged; a negative size is rejected.
func Indent(text string, size int) (string, error) {
	if size < 0 {
		return "", errors.New("indent size cannot be negative")
	}
	if size == 0 || text == "" {
		return text, nil
	}

	prefix := strings.Repeat(" ", size)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n"), nil
}

func indent(text string) string {
	indented, _ := Indent(text, defaultIndentSize)
	return indented
}

// PrintSummary writes the failure summary: one header line per class with its
// count and accumulated time, one indented line per failure, and a total
// footer.
func (p *Printer) PrintSummary(grouped *testreport.GroupedFailures) {
	p.PrintHeader("JUnit Failures Summary")

	var sb strings.Builder
	groupCount := 0
	for _, group := range grouped.Groups() {
		groupCount++
		sb.WriteString(fmt.Sprintf("[%d] %s (%d failures, %.3fs)\n",
			groupCount, group.ClassName(), group.TotalFailures(), group.TotalTime()))

		failureCount := 0
		for _, failure := range group.Failures() {
			failureCount++
			sb.WriteString(fmt.Sprintf("  - [%d.%d] %s\n",
				groupCount, failureCount, summaryTestName(failure)))
		}
	}
	fmt.Fprint(p.out, sb.String())

	fmt.Fprintf(p.out, "\nTotal Failures: %d\n", grouped.TotalFailures())
}

// summaryTestName appends the display name when it adds information beyond
// the raw test name.
func summaryTestName(failure *testreport.TestFailure) string {
	if strings.TrimSpace(failure.DisplayName) == "" || failure.DisplayName == failure.TestName {
		return failure.TestName
	}
	return failure.TestName + " (" + failure.DisplayName + ")"
}

// PrintDetails resolves a 1-based selection argument: "N" prints a whole
// group, "N.M" prints one failure with its stack trace.
func (p *Printer) PrintDetails(arg string, grouped *testreport.GroupedFailures) error {
	dotIndex := strings.Index(arg, ".")
	if dotIndex == -1 {
		groupIndex, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidSelection, arg)
		}
		group, err := GroupByIndex(grouped, groupIndex-1)
		if err != nil {
			return err
		}
		p.PrintFailures(group, groupIndex-1)
		return nil
	}

	groupIndex, err := strconv.Atoi(arg[:dotIndex])
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSelection, arg)
	}
	failureIndex, err := strconv.Atoi(arg[dotIndex+1:])
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSelection, arg)
	}

	group, err := GroupByIndex(grouped, groupIndex-1)
	if err != nil {
		return err
	}
	failures := group.Failures()
	if failureIndex-1 < 0 || failureIndex-1 >= len(failures) {
		return ErrFailureIndexOutOfRange
	}

	p.PrintFailureWithStackTrace(failures[failureIndex-1], groupIndex-1, failureIndex-1)
	return nil
}

// PrintFailure writes one failure. Both indexes are 1-based for humans; pass
// zero for either to omit the prefix.
func (p *Printer) PrintFailure(failure *testreport.TestFailure, groupIndex, failureIndex int) {
	prefix := ""
	if groupIndex > 0 && failureIndex > 0 {
		prefix = fmt.Sprintf("[%d.%d] ", groupIndex, failureIndex)
	}

	fmt.Fprintf(p.out, "%sTest: %s\n    - Name: %s\n    - Type: %s\n    - Message:\n%s\n    - Time: %vs\n",
		prefix,
		failure.TestName,
		failure.DisplayName,
		failure.FailureType,
		indent(strings.TrimSpace(failure.FailureMessage)),
		failure.Time)
}

// PrintFailureWithStackTrace writes one failure under its group header,
// followed by the stack trace. Indexes are 0-based.
func (p *Printer) PrintFailureWithStackTrace(failure *testreport.TestFailure, groupIndex, failureIndex int) {
	p.PrintHeader(fmt.Sprintf("[%d] %s", groupIndex+1, failure.ClassName))
	p.PrintFailure(failure, groupIndex+1, failureIndex+1)
	p.PrintStackTrace(failure)
}

// PrintFailures writes every failure of one group under its header. The
// group index is 0-based.
func (p *Printer) PrintFailures(group *testreport.ClassFailures, groupIndex int) {
	p.PrintHeader(fmt.Sprintf("[%d] %s", groupIndex+1, group.ClassName()))

	failureCount := 1
	for _, failure := range group.Failures() {
		p.PrintFailure(failure, groupIndex+1, failureCount)
		failureCount++
		fmt.Fprintln(p.out)
	}
}

// PrintHeader writes a title between separator lines.
func (p *Printer) PrintHeader(title string) {
	fmt.Fprintln(p.out)

	width := len(title)
	if width < minSeparatorWidth {
		width = minSeparatorWidth
	}
	separator := strings.Repeat("-", width)

	fmt.Fprintf(p.out, "%s\n%s\n%s\n\n", separator, title, separator)
}

// PrintStackTrace writes the failure's stack trace, omitting the section
// entirely when there is none.
func (p *Printer) PrintStackTrace(failure *testreport.TestFailure) {
	if failure.StackTrace != "" {
		fmt.Fprintf(p.out, "    - Trace:\n%s\n", indent(failure.StackTrace))
	}
}
