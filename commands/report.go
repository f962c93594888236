// Package commands wires the report pipeline together: resolve the report
// path, extract the grouped failures, and hand them to the requested
// rendering mode.
package commands

import (
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"junit-reporter-cli/filesystem"
	"junit-reporter-cli/report"
	"junit-reporter-cli/testreport"
	"junit-reporter-cli/tracing"
)

// ErrFailuresReported signals that failures were found and the caller asked
// for a failure exit status in that case.
var ErrFailuresReported = errors.New("test failures were reported")

// ReportConfig holds the caller's selections for one report run.
type ReportConfig struct {
	ReportFile    string
	BuildDir      string
	Index         string
	All           bool
	Table         bool
	FailOnSummary bool
}

// ReportCmd handles the report command
type ReportCmd struct {
	config  ReportConfig
	parser  *testreport.Parser
	printer *report.Printer
	files   *filesystem.Manager
	tracer  tracing.Tracer
}

// NewReportCmd creates a report command writing to out. A nil tracer falls
// back to the no-op tracer.
func NewReportCmd(config ReportConfig, out io.Writer, tracer tracing.Tracer) *ReportCmd {
	if tracer == nil {
		tracer = tracing.NewNoOpTracer()
	}
	return &ReportCmd{
		config:  config,
		parser:  testreport.NewParser(),
		printer: report.NewPrinter(out),
		files:   filesystem.NewManager(),
		tracer:  tracer,
	}
}

// ReportPath resolves the report file: the explicit path when given,
// otherwise the conventional location under the build directory. When the
// conventional file is absent, the newest TEST-*.xml in the results directory
// is used instead, so runners that name their report differently still work.
func (c *ReportCmd) ReportPath() string {
	if c.config.ReportFile != "" {
		return c.config.ReportFile
	}

	conventional := c.files.DefaultReportPath(c.config.BuildDir)
	if c.files.FileExists(conventional) {
		return conventional
	}
	if latest, err := c.files.FindLatestReport(filepath.Dir(conventional)); err == nil {
		return latest
	}
	return conventional
}

// ExtractGroups parses the resolved report and returns the grouped failures.
func (c *ReportCmd) ExtractGroups() (*testreport.GroupedFailures, error) {
	path := c.ReportPath()

	start := time.Now()
	grouped, err := c.parser.ExtractGroupedFailures(path)
	if err != nil {
		_ = c.tracer.TrackError(*tracing.NewErrorEvent(c.tracer.SessionID(), "parse_failure", err.Error()))
		return nil, err
	}

	_ = c.tracer.TrackParse(*tracing.NewParseEvent(c.tracer.SessionID(), path, grouped.Len(), grouped.TotalFailures(), time.Since(start)))
	return grouped, nil
}

// Execute runs the full pipeline. A report with no failures is a success and
// produces no output.
func (c *ReportCmd) Execute() error {
	grouped, err := c.ExtractGroups()
	if err != nil {
		return err
	}

	if grouped.Len() == 0 {
		return nil
	}

	switch {
	case c.config.All:
		_ = c.tracer.TrackRender(*tracing.NewRenderEvent(c.tracer.SessionID(), "all", "", grouped.Len()))
		for i := 1; i <= grouped.Len(); i++ {
			if err := c.printer.PrintDetails(strconv.Itoa(i), grouped); err != nil {
				return err
			}
		}
	case c.config.Index != "":
		_ = c.tracer.TrackRender(*tracing.NewRenderEvent(c.tracer.SessionID(), "details", c.config.Index, grouped.Len()))
		if err := c.printer.PrintDetails(c.config.Index, grouped); err != nil {
			_ = c.tracer.TrackError(*tracing.NewErrorEvent(c.tracer.SessionID(), "index_out_of_range", err.Error()))
			return err
		}
	case c.config.Table:
		_ = c.tracer.TrackRender(*tracing.NewRenderEvent(c.tracer.SessionID(), "table", "", grouped.Len()))
		if err := c.printer.PrintSummaryTable(grouped); err != nil {
			return err
		}
	default:
		_ = c.tracer.TrackRender(*tracing.NewRenderEvent(c.tracer.SessionID(), "summary", "", grouped.Len()))
		c.printer.PrintSummary(grouped)
	}

	if c.config.FailOnSummary {
		return ErrFailuresReported
	}
	return nil
}
