package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/urfave/cli"

	"junit-reporter-cli/commands"
	"junit-reporter-cli/config"
	"junit-reporter-cli/tracing"
	"junit-reporter-cli/tui"
)

// version is set at compile-time via -ldflags
var version = "dev"

// indexPattern matches a group selection ("3") or a single failure
// selection ("3.2").
var indexPattern = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

func main() {
	app := cli.NewApp()
	app.Name = "junit-reporter"
	app.Usage = "Summarize JUnit XML test reports by failing class"
	app.Version = version
	app.Action = run
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "report, r",
			Usage:  "path to the JUnit XML report file",
			EnvVar: config.EnvReportFile,
		},
		cli.StringFlag{
			Name:   "build-dir, b",
			Usage:  "build directory holding test-results (used when --report is not set)",
			EnvVar: config.EnvBuildDir,
		},
		cli.StringFlag{
			Name:  "index, i",
			Usage: "print details for a group (\"3\") or a single failure (\"3.2\")",
		},
		cli.BoolFlag{
			Name:  "all, a",
			Usage: "print details for every failing class",
		},
		cli.BoolFlag{
			Name:  "table, t",
			Usage: "print the summary as a table",
		},
		cli.BoolFlag{
			Name:   "fail-on-summary",
			Usage:  "exit non-zero when the report contains failures",
			EnvVar: config.EnvFailOnSummary,
		},
		cli.BoolFlag{
			Name:  "interactive",
			Usage: "browse the grouped failures interactively",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log the resolved report path and timing to stderr",
		},
		cli.BoolFlag{
			Name:   "tracing",
			Usage:  "record parse and render events to the local trace directory",
			EnvVar: config.EnvTracing,
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "version",
			Usage:  "print the version and check for a newer release",
			Action: runVersion,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.NewManager().Load()

	if c.IsSet("report") {
		cfg.ReportFile = c.String("report")
	}
	if c.IsSet("build-dir") {
		cfg.BuildDir = c.String("build-dir")
	}
	if c.IsSet("fail-on-summary") {
		cfg.FailOnSummary = c.Bool("fail-on-summary")
	}
	if c.IsSet("tracing") {
		cfg.TracingEnabled = c.Bool("tracing")
	}

	index := c.String("index")
	if index != "" && !indexPattern.MatchString(index) {
		return cli.NewExitError(fmt.Sprintf("invalid index %q: expected N or N.M", index), 1)
	}

	tracer := newTracer(cfg)
	defer tracer.Close()

	cmd := commands.NewReportCmd(commands.ReportConfig{
		ReportFile:    cfg.ReportFile,
		BuildDir:      cfg.BuildDir,
		Index:         index,
		All:           c.Bool("all"),
		Table:         c.Bool("table"),
		FailOnSummary: cfg.FailOnSummary,
	}, os.Stdout, tracer)

	if c.Bool("verbose") {
		log.Printf("reading report from %s", cmd.ReportPath())
	}

	if c.Bool("interactive") {
		grouped, err := cmd.ExtractGroups()
		if err != nil {
			return err
		}
		return tui.Run(grouped)
	}

	start := time.Now()
	err := cmd.Execute()
	if c.Bool("verbose") {
		log.Printf("report completed in %s", time.Since(start).Round(time.Millisecond))
	}
	if errors.Is(err, commands.ErrFailuresReported) {
		return cli.NewExitError(err.Error(), 1)
	}
	return err
}

// newTracer builds the session tracer from config, falling back to the
// no-op tracer when tracing is disabled or the local store cannot be set up.
func newTracer(cfg config.Config) tracing.Tracer {
	tc := tracing.DefaultConfig()
	tc.Enabled = cfg.TracingEnabled

	tracer, err := tracing.NewTracer(tc, version)
	if err != nil {
		return tracing.NewNoOpTracer()
	}
	return tracer
}

func runVersion(c *cli.Context) error {
	fmt.Printf("junit-reporter %s\n", version)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	checker := NewVersionChecker()
	info := checker.CheckForUpdates(ctx)
	if msg := checker.GetUpdateMessage(info); msg != "" {
		fmt.Println(msg)
	}
	return nil
}
