// Package main is the entry point for the flowstate application.
// This file contains the report subcommand handler.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flowstate/internal/fsutil"
	"flowstate/internal/reports"
)

const reportHelpText = `flowstate report - Generate productivity reports

USAGE:
    flowstate report [OPTIONS] [DATE]

OPTIONS:
    -d, --daily        Generate daily report (default)
    -w, --weekly       Generate weekly report
    -f, --format FMT   Output format: markdown (default) or json
    -o, --output FILE  Write to file instead of stdout
    -h, --help         Show this help message

ARGUMENTS:
    DATE               Date for report (YYYY-MM-DD). Defaults to today.
                       For weekly reports, any date inside the week works.

DESCRIPTION:
    Summarizes focus sessions and habit completions for a day or a week,
    as Markdown for reading or JSON for further processing.

EXAMPLES:
    # Today's report in Markdown
    flowstate report

    # A past date
    flowstate report 2026-08-14

    # This week as JSON
    flowstate report --weekly --format json

    # Write the weekly report to a file
    flowstate report --weekly --output weekly.md
`

// runReport handles the "flowstate report" subcommand.
func runReport(args []string) {
	sc := newSubcommand("report", reportHelpText)

	dailyFlag := sc.fs.Bool("daily", false, "generate daily report")
	sc.fs.BoolVar(dailyFlag, "d", false, "generate daily report (shorthand)")
	weeklyFlag := sc.fs.Bool("weekly", false, "generate weekly report")
	sc.fs.BoolVar(weeklyFlag, "w", false, "generate weekly report (shorthand)")
	formatFlag := sc.fs.String("format", "markdown", "output format: markdown or json")
	sc.fs.StringVar(formatFlag, "f", "markdown", "output format (shorthand)")
	outputFlag := sc.fs.String("output", "", "write to file instead of stdout")
	sc.fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	sc.parse(args)

	if *formatFlag != "markdown" && *formatFlag != "json" {
		fatalf("unknown format %q (want markdown or json)", *formatFlag)
	}

	date := time.Now()
	if sc.fs.NArg() > 0 {
		parsed, err := time.ParseInLocation("2006-01-02", sc.fs.Arg(0), time.Local)
		if err != nil {
			fatalf("invalid date %q (want YYYY-MM-DD)", sc.fs.Arg(0))
		}
		date = parsed
	}

	snap := loadSnapshot(loadConfig().GetDataDir())

	gen := reports.NewGenerator(snap.Sessions, snap.Habits, snap.Completions)
	output := renderReport(gen, date, *weeklyFlag, *formatFlag)

	if *outputFlag == "" {
		fmt.Println(output)
		return
	}
	writeReport(*outputFlag, output)
}

// renderReport builds the requested report in the requested format.
func renderReport(gen *reports.Generator, date time.Time, weekly bool, format string) string {
	if weekly {
		report := gen.GenerateWeekly(date)
		if format == "json" {
			data, err := reports.FormatWeeklyJSON(report)
			if err != nil {
				fatalf("format report: %v", err)
			}
			return string(data)
		}
		return reports.FormatWeeklyMarkdown(report)
	}

	report := gen.GenerateDaily(date)
	if format == "json" {
		data, err := reports.FormatDailyJSON(report)
		if err != nil {
			fatalf("format report: %v", err)
		}
		return string(data)
	}
	return reports.FormatDailyMarkdown(report)
}

func writeReport(path, output string) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fatalf("create output directory: %v", err)
		}
	}
	if err := fsutil.WriteFileAtomic(path, []byte(output+"\n"), 0644); err != nil {
		fatalf("write report: %v", err)
	}
	fmt.Printf("✓ Report written to %s\n", path)
}
