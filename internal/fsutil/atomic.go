// Package fsutil provides durable file-write helpers for the snapshot store.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// WriteFileAtomic replaces path with data without ever exposing a partial
// file: the bytes go to a temp file in the same directory, get fsynced,
// and are renamed over the destination. Windows cannot rename over an
// existing file, so there the old file is removed first and the swap is
// only best effort.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpPath, err := stageTemp(dir, filepath.Base(path), data, perm)
	if err != nil {
		return err
	}

	err = os.Rename(tmpPath, path)
	if err != nil && runtime.GOOS == "windows" && os.Remove(path) == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("swap %s into place: %w", path, err)
	}

	syncDir(dir)
	return nil
}

// stageTemp writes data to a fresh temp file in dir and returns its path.
// The file is synced and closed before returning so the caller only has to
// rename it.
func stageTemp(dir, base string, data []byte, perm os.FileMode) (string, error) {
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("stage temp file in %s: %w", dir, err)
	}
	name := tmp.Name()

	err = tmp.Chmod(perm)
	if err == nil {
		_, err = tmp.Write(data)
	}
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	return name, nil
}

// BestEffortBackup copies path to path.bak, ignoring all failures. It runs
// before every snapshot write so one generation of history survives a
// corrupting save.
func BestEffortBackup(path string, perm os.FileMode) {
	if data, err := os.ReadFile(path); err == nil {
		_ = WriteFileAtomic(path+".bak", data, perm)
	}
}

// syncDir flushes the directory entry so the rename survives a crash.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
