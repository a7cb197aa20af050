// Package main is the entry point for the flowstate application.
// It loads configuration, restores the state snapshot, and starts the TUI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"flowstate/internal/app"
	"flowstate/internal/config"
	"flowstate/internal/notify"
	"flowstate/internal/store"
	"flowstate/internal/ui"

	"github.com/charmbracelet/log"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `flowstate - A pomodoro timer and habit tracker for your terminal

USAGE:
    flowstate [OPTIONS]
    flowstate <command> [ARGS]

COMMANDS:
    backup           Create a backup of all data
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    report           Generate a daily report (Markdown)
    report --weekly  Generate a weekly report
    report -f json   Output report as JSON
    export           Write the full state snapshot to stdout or a file
    import FILE      Replace the current state with a snapshot file

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    flowstate combines a pomodoro focus timer, daily habit tracking, and
    derived analytics in a single, keyboard-driven interface.

FEATURES:
    • Timer      - Focus/break intervals with categories and session counting
    • Habits     - Daily, weekly, or custom-day habits with streaks
    • Analytics  - Focus totals, streaks, peak hours, weekly habit rate
    • Local Data - One JSON snapshot in ~/.flowstate/

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        1, 2, 3      Jump to timer / habits / analytics
        Ctrl+T       Toggle dark mode
        ?            Show help overlay
        q            Quit

    Timer Pane:
        Space        Start / pause / resume
        r            Reset the current interval
        s            Skip to the next interval
        c            Pick the focus category
        o            Open pomodoro settings

    Habits Pane:
        j/k, ↓/↑     Navigate
        a            Add habit
        e            Edit habit
        d/Space      Toggle today's completion
        z            Archive habit
        x            Delete habit

DATA STORAGE:
    All data lives in a single snapshot at ~/.flowstate/state.json.
    Writes are atomic with a rolling .bak of the previous good state.

CONFIGURATION:
    Optional config file: ~/.config/flowstate/config.yaml
    See documentation for configuration options.

EXAMPLES:
    # Start the app
    flowstate

    # Create a backup
    flowstate backup

    # Restore from the latest backup
    flowstate restore --latest

    # Generate this week's report as JSON
    flowstate report --weekly --format json

    # Show version
    flowstate --version
`

func main() {
	// Subcommands dispatch before flag parsing.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "report":
			runReport(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		}
	}

	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() { fmt.Fprint(os.Stderr, helpText) }
	flag.Parse()

	switch {
	case *showVersion:
		fmt.Printf("flowstate version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		return
	case *showHelp:
		fmt.Print(helpText)
		return
	case flag.NArg() > 0:
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	cfg := loadConfig()
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatalf("create data directory: %v", err)
	}

	// The TUI owns the terminal, so diagnostics go to a log file.
	logger := newFileLogger(dataDir)

	snap, err := store.LoadSnapshot(dataDir)
	if err != nil {
		if !errors.Is(err, store.ErrSnapshotRecovered) {
			fatalf("load state: %v", err)
		}
		// Recovered state is usable; note how it was rebuilt and keep going.
		logger.Warn("state snapshot recovered", "detail", err)
	}

	persister := store.NewPersister(dataDir, logger)
	st := store.New(snap, persister, logger)

	wireNotifications(st, cfg)

	styles := ui.NewStyles(cfg, st.UI().DarkMode)

	runErr := ui.Run(st, styles, cfg)

	// Flush the pending snapshot write before exit.
	persister.Close()

	if runErr != nil {
		fatalf("run app: %v", runErr)
	}
}

// wireNotifications forwards completed sessions to the desktop notifier.
func wireNotifications(st *store.Store, cfg *config.Config) {
	if !cfg.Notifications.Enabled {
		return
	}
	notifier := notify.New()
	if !notifier.IsSupported() {
		return
	}

	sound := cfg.Notifications.Sound
	st.Subscribe(func(s app.FocusSession) {
		title, message := notify.SessionAlert(s)
		if sound && st.Settings().SoundEnabled {
			notifier.SendWithSound(title, message)
			return
		}
		notifier.Send(title, message)
	})
}

// newFileLogger opens the app log in the data directory, discarding logs if
// the file cannot be opened.
func newFileLogger(dataDir string) *log.Logger {
	f, err := os.OpenFile(filepath.Join(dataDir, "flowstate.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(io.Discard)
	}
	return log.New(f)
}

// fatalf reports a fatal CLI error on stderr and exits non-zero.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the config file or dies; every subcommand needs it.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fatalf("load config: %v", err)
	}
	return cfg
}

// loadSnapshot loads state for one-shot commands. A recovered snapshot is
// still usable, so it prints a warning and proceeds; every other failure
// is fatal.
func loadSnapshot(dataDir string) *store.Snapshot {
	snap, err := store.LoadSnapshot(dataDir)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrSnapshotRecovered):
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	default:
		fatalf("load state: %v", err)
	}
	return snap
}

// subcommand wraps a flag set with the shared help-text plumbing: usage
// output on stderr, -h/--help on stdout with a zero exit.
type subcommand struct {
	fs   *flag.FlagSet
	help *bool
	text string
}

func newSubcommand(name, text string) *subcommand {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, text) }

	help := fs.Bool("help", false, "show help message")
	fs.BoolVar(help, "h", false, "show help message (shorthand)")

	return &subcommand{fs: fs, help: help, text: text}
}

func (s *subcommand) parse(args []string) {
	if err := s.fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *s.help {
		fmt.Print(s.text)
		os.Exit(0)
	}
}
