// Package backup manages timestamped copies of the state snapshot under
// the data directory's backups/ subdirectory.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"flowstate/internal/fsutil"
)

const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"
	StateFile       = "state.json"
)

// Manager creates, lists, restores and prunes snapshot backups. Every
// backup is a directory named by its creation timestamp holding a copy of
// state.json plus a manifest with entity counts.
type Manager struct {
	dataDir    string
	backupDir  string
	appVersion string
}

// Manifest describes one backup directory.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo is the listing view of a backup.
type BackupInfo struct {
	Name      string
	Path      string
	CreatedAt time.Time
	Stats     map[string]int
}

func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
	}
}

// Create snapshots the current state.json into a fresh backup directory and
// returns the backup name. A missing snapshot still produces an (empty)
// backup so a first-run restore path stays exercisable.
func (m *Manager) Create() (string, error) {
	now := time.Now()
	name := fmt.Sprintf("%s_%03d", now.Format(nameFormat), now.Nanosecond()/1e6)
	dir := filepath.Join(m.backupDir, name)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Stats:      map[string]int{},
	}

	data, err := os.ReadFile(filepath.Join(m.dataDir, StateFile))
	switch {
	case err == nil:
		if werr := fsutil.WriteFileAtomic(filepath.Join(dir, StateFile), data, 0600); werr != nil {
			_ = os.RemoveAll(dir)
			return "", fmt.Errorf("copy snapshot: %w", werr)
		}
		manifest.Files = append(manifest.Files, StateFile)
		manifest.Stats = snapshotStats(data)
	case os.IsNotExist(err):
		// nothing to copy
	default:
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("read snapshot: %w", err)
	}

	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err == nil {
		err = fsutil.WriteFileAtomic(filepath.Join(dir, ManifestFile), raw, 0600)
	}
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("write manifest: %w", err)
	}

	return name, nil
}

// List returns every backup, newest first. Directories whose name does not
// parse as a backup timestamp are ignored.
func (m *Manager) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var out []BackupInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := m.describe(e.Name())
		if err != nil {
			continue
		}
		out = append(out, *info)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Restore copies the named backup's snapshot over state.json. A safety
// backup of the current state is taken first, so a bad restore is itself
// restorable.
func (m *Manager) Restore(name string) error {
	if _, err := parseName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}

	src := filepath.Join(m.backupDir, name, StateFile)
	data, err := os.ReadFile(src)
	if os.IsNotExist(err) {
		if _, derr := os.Stat(filepath.Join(m.backupDir, name)); os.IsNotExist(derr) {
			return fmt.Errorf("backup not found: %s", name)
		}
		return fmt.Errorf("backup %s contains no snapshot", name)
	}
	if err != nil {
		return fmt.Errorf("read backup snapshot: %w", err)
	}
	if !json.Valid(data) {
		return fmt.Errorf("backup %s is invalid: snapshot is not JSON", name)
	}

	safety, err := m.Create()
	if err != nil {
		return fmt.Errorf("create safety backup: %w", err)
	}

	dst := filepath.Join(m.dataDir, StateFile)
	if err := fsutil.WriteFileAtomic(dst, data, 0600); err != nil {
		return fmt.Errorf("restore snapshot (safety backup: %s): %w", safety, err)
	}
	return nil
}

// RestoreLatest restores from the newest backup.
func (m *Manager) RestoreLatest() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups available")
	}
	return m.Restore(backups[0].Name)
}

// Delete removes one backup directory.
func (m *Manager) Delete(name string) error {
	if _, err := parseName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	dir := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}
	return os.RemoveAll(dir)
}

// Prune deletes all but the keepCount newest backups and reports how many
// it removed.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil || len(backups) <= keepCount {
		return 0, err
	}

	deleted := 0
	for _, b := range backups[keepCount:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// GetBackup returns listing info for one backup by name.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if _, err := parseName(name); err != nil {
		return nil, fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := os.Stat(filepath.Join(m.backupDir, name)); os.IsNotExist(err) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}
	return m.describe(name)
}

// describe builds BackupInfo from the manifest, falling back to the
// timestamp encoded in the directory name when the manifest is missing or
// unreadable.
func (m *Manager) describe(name string) (*BackupInfo, error) {
	dir := filepath.Join(m.backupDir, name)

	var manifest Manifest
	raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err == nil {
		err = json.Unmarshal(raw, &manifest)
	}
	if err != nil {
		created, perr := parseName(name)
		if perr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest = Manifest{CreatedAt: created, Stats: map[string]int{}}
	}

	return &BackupInfo{
		Name:      name,
		Path:      dir,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

// snapshotStats pulls the entity collection lengths out of a raw snapshot.
// A snapshot that does not parse yields empty stats rather than failing
// the backup.
func snapshotStats(data []byte) map[string]int {
	stats := map[string]int{}

	var doc map[string]json.RawMessage
	if json.Unmarshal(data, &doc) != nil {
		return stats
	}
	for _, key := range []string{"sessions", "habits", "completions"} {
		var items []json.RawMessage
		if json.Unmarshal(doc[key], &items) == nil {
			stats[key] = len(items)
		}
	}
	return stats
}

const nameFormat = "2006-01-02_150405"

// parseName recovers the creation time from a backup directory name,
// accepting both the plain timestamp form and the millisecond-suffixed
// form Create produces. It doubles as name validation: anything that does
// not parse (including path separators) is rejected.
func parseName(name string) (time.Time, error) {
	if name != filepath.Base(name) {
		return time.Time{}, fmt.Errorf("not a bare name")
	}

	if len(name) == len(nameFormat)+4 && name[len(nameFormat)] == '_' {
		base, err := time.Parse(nameFormat, name[:len(nameFormat)])
		if err != nil {
			return time.Time{}, err
		}
		ms, err := strconv.Atoi(name[len(nameFormat)+1:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("bad millisecond suffix")
		}
		return base.Add(time.Duration(ms) * time.Millisecond), nil
	}

	return time.Parse(nameFormat, name)
}
