// Package main is the entry point for the flowstate application.
// This file contains the restore subcommand handler.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"flowstate/internal/backup"
)

const restoreHelpText = `flowstate restore - Restore data from a backup

USAGE:
    flowstate restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest       Restore from the most recent backup
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the backup to restore (e.g., 2026-08-15_143022_000)
                   Use 'flowstate backup --list' to see available backups.

DESCRIPTION:
    Restores the state snapshot (timer, sessions, habits, settings) from a
    backup. A safety backup is automatically created before restoring.

EXAMPLES:
    # Restore a named backup
    flowstate restore 2026-08-15_143022_000

    # Restore whatever is newest
    flowstate restore --latest

    # Skip the confirmation prompt
    flowstate restore --force 2026-08-15_143022_000
`

// runRestore handles the "flowstate restore" subcommand.
func runRestore(args []string) {
	sc := newSubcommand("restore", restoreHelpText)

	latestFlag := sc.fs.Bool("latest", false, "restore from most recent backup")
	forceFlag := sc.fs.Bool("force", false, "skip confirmation prompt")
	sc.fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	sc.parse(args)

	manager := backup.NewManager(loadConfig().GetDataDir(), version)

	name := pickBackup(sc, manager, *latestFlag)

	info, err := manager.GetBackup(name)
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Restoring from backup: %s\n", info.Name)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Sessions: %d, Habits: %d, Completions: %d\n",
		info.Stats["sessions"], info.Stats["habits"], info.Stats["completions"])
	fmt.Println()

	if !*forceFlag && !confirm("⚠ This will overwrite your current data.") {
		fmt.Println("Restore cancelled.")
		return
	}

	fmt.Println("✓ Creating safety backup first...")
	if err := manager.Restore(name); err != nil {
		fatalf("restore backup: %v", err)
	}

	fmt.Printf("✓ Restored successfully from %s\n", name)
}

// pickBackup resolves which backup to restore: the newest with --latest,
// otherwise the positional argument.
func pickBackup(sc *subcommand, manager *backup.Manager, latest bool) string {
	if latest {
		backups, err := manager.List()
		if err != nil {
			fatalf("list backups: %v", err)
		}
		if len(backups) == 0 {
			fatalf("no backups available")
		}
		return backups[0].Name
	}

	if sc.fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no backup specified")
		fmt.Fprintln(os.Stderr, "Use 'flowstate restore BACKUP_NAME' or 'flowstate restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'flowstate backup --list' to see available backups.")
		os.Exit(1)
	}
	return sc.fs.Arg(0)
}

// confirm prints the warning and asks for a y/N answer on stdin.
func confirm(warning string) bool {
	fmt.Println(warning)
	fmt.Print("Continue? [y/N] ")

	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		fatalf("read input: %v", err)
	}

	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}
