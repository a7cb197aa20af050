// Package main is the entry point for the flowstate application.
// This file contains the backup subcommand handler.
package main

import (
	"fmt"
	"time"

	"flowstate/internal/backup"
)

const backupHelpText = `flowstate backup - Create and manage backups

USAGE:
    flowstate backup [OPTIONS]

OPTIONS:
    -l, --list       List available backups
    --prune N        Delete all but the N most recent backups
    -h, --help       Show this help message

DESCRIPTION:
    Creates a timestamped backup of the state snapshot (timer, sessions,
    habits, completions, settings). Backups are stored in
    ~/.flowstate/backups/ and can be restored later.

EXAMPLES:
    # Create a new backup
    flowstate backup

    # List all available backups
    flowstate backup --list

    # Keep only the five newest backups
    flowstate backup --prune 5
`

// runBackup handles the "flowstate backup" subcommand.
func runBackup(args []string) {
	sc := newSubcommand("backup", backupHelpText)

	listFlag := sc.fs.Bool("list", false, "list available backups")
	sc.fs.BoolVar(listFlag, "l", false, "list available backups (shorthand)")
	pruneFlag := sc.fs.Int("prune", 0, "delete all but the N most recent backups")

	sc.parse(args)

	manager := backup.NewManager(loadConfig().GetDataDir(), version)

	switch {
	case *listFlag:
		listBackups(manager)
	case *pruneFlag > 0:
		pruneBackups(manager, *pruneFlag)
	default:
		createBackup(manager)
	}
}

func createBackup(manager *backup.Manager) {
	name, err := manager.Create()
	if err != nil {
		fatalf("create backup: %v", err)
	}

	info, err := manager.GetBackup(name)
	if err != nil {
		fatalf("read backup info: %v", err)
	}

	fmt.Printf("✓ Backup created: %s\n", name)
	fmt.Printf("  Sessions: %d, Habits: %d, Completions: %d\n",
		info.Stats["sessions"], info.Stats["habits"], info.Stats["completions"])
	fmt.Printf("  Location: %s\n", info.Path)
}

func listBackups(manager *backup.Manager) {
	backups, err := manager.List()
	if err != nil {
		fatalf("list backups: %v", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups available.")
		fmt.Println("Run 'flowstate backup' to create one.")
		return
	}

	fmt.Println("Available backups:")
	for _, b := range backups {
		fmt.Printf("  %s  (%s)   Sessions: %d, Habits: %d\n",
			b.Name, formatAge(b.CreatedAt), b.Stats["sessions"], b.Stats["habits"])
	}
}

func pruneBackups(manager *backup.Manager, keep int) {
	deleted, err := manager.Prune(keep)
	if err != nil {
		fatalf("prune backups: %v", err)
	}
	fmt.Printf("✓ Pruned %d backup(s), kept the %d most recent\n", deleted, keep)
}

// formatAge renders how long ago t was in the coarsest sensible unit.
func formatAge(t time.Time) string {
	d := time.Since(t)

	unit := func(n int, name string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s ago", name)
		}
		return fmt.Sprintf("%d %ss ago", n, name)
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return unit(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return unit(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return unit(int(d.Hours()/24), "day")
	default:
		return unit(int(d.Hours()/24/7), "week")
	}
}
