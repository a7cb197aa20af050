package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersister_WritesLatestSnapshot(t *testing.T) {
	dir := t.TempDir()
	p := NewPersister(dir, nil)

	p.Save([]byte(`{"version":1}`))
	p.Save([]byte(`{"version":1,"winner":true}`))
	p.Close()

	data, err := os.ReadFile(filepath.Join(dir, StateFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "winner", "the newest snapshot wins")
}

func TestPersister_BacksUpPreviousSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, StateFile)
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))

	p := NewPersister(dir, nil)
	p.Save([]byte("new"))
	p.Close()

	bak, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "old", string(bak))

	cur, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(cur))
}
