// Package main is the entry point for the flowstate application.
// This file contains the export and import subcommand handlers.
package main

import (
	"fmt"
	"io"
	"os"

	"flowstate/internal/fsutil"
	"flowstate/internal/store"

	"github.com/charmbracelet/log"
)

const exportHelpText = `flowstate export - Export the full state snapshot

USAGE:
    flowstate export [OPTIONS]

OPTIONS:
    -o, --output FILE  Write to file instead of stdout
    -h, --help         Show this help message

DESCRIPTION:
    Writes the complete state (settings, timer position, sessions, habits,
    completions, UI preferences) as a single JSON document. The output can
    be re-imported with 'flowstate import'.

EXAMPLES:
    # Print the snapshot
    flowstate export

    # Save to a file
    flowstate export --output flowstate-backup.json
`

const importHelpText = `flowstate import - Replace state with an exported snapshot

USAGE:
    flowstate import FILE

OPTIONS:
    -h, --help     Show this help message

ARGUMENTS:
    FILE           A snapshot file produced by 'flowstate export'.
                   Pass '-' to read from stdin.

DESCRIPTION:
    Validates the snapshot and replaces the current state with it. The
    existing state file is kept as state.json.bak. Invalid documents are
    rejected without touching the current state.

EXAMPLES:
    # Import from a file
    flowstate import flowstate-backup.json

    # Import from stdin
    cat flowstate-backup.json | flowstate import -
`

// runExport handles the "flowstate export" subcommand.
func runExport(args []string) {
	sc := newSubcommand("export", exportHelpText)

	outputFlag := sc.fs.String("output", "", "write to file instead of stdout")
	sc.fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	sc.parse(args)

	data, err := loadStoreForCLI().Export()
	if err != nil {
		fatalf("export state: %v", err)
	}

	if *outputFlag == "" {
		os.Stdout.Write(data)
		fmt.Println()
		return
	}

	if err := fsutil.WriteFileAtomic(*outputFlag, data, 0644); err != nil {
		fatalf("write export: %v", err)
	}
	fmt.Printf("✓ State exported to %s\n", *outputFlag)
}

// runImport handles the "flowstate import" subcommand.
func runImport(args []string) {
	sc := newSubcommand("import", importHelpText)
	sc.parse(args)

	if sc.fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no snapshot file specified")
		fmt.Fprintln(os.Stderr, "Use 'flowstate import FILE' or 'flowstate import -' for stdin.")
		os.Exit(1)
	}

	var data []byte
	var err error
	if sc.fs.Arg(0) == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(sc.fs.Arg(0))
	}
	if err != nil {
		fatalf("read snapshot: %v", err)
	}

	dataDir := loadConfig().GetDataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatalf("create data directory: %v", err)
	}

	snap := loadSnapshot(dataDir)

	logger := newFileLogger(dataDir)
	persister := store.NewPersister(dataDir, logger)
	st := store.New(snap, persister, logger)

	importErr := st.Import(data)
	persister.Close()
	if importErr != nil {
		fatalf("import snapshot: %v", importErr)
	}

	fmt.Printf("✓ Imported %d habit(s) and %d session(s)\n",
		len(st.Habits()), len(st.Sessions()))
}

// loadStoreForCLI opens the state read-only for one-shot commands. No saver
// is attached, so queries cannot mutate the snapshot on disk.
func loadStoreForCLI() *store.Store {
	snap := loadSnapshot(loadConfig().GetDataDir())
	return store.New(snap, nil, log.New(io.Discard))
}
