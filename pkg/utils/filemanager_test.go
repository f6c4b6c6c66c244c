package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempPath(t *testing.T) {
	fm := NewFileManager(filepath.Join("out", "ANALISIS_DETERIORO_2025_modificado.xlsx"))

	first := fm.TempPath()
	second := fm.TempPath()

	assert.NotEqual(t, first, second)
	assert.Equal(t, "out", filepath.Dir(first))
	assert.Equal(t, ".xlsx", filepath.Ext(first))
	assert.True(t, strings.HasPrefix(filepath.Base(first), ".~ANALISIS_DETERIORO_2025_modificado-"))
}

func TestCommit(t *testing.T) {
	dir := t.TempDir()
	fm := NewFileManager(filepath.Join(dir, "report.xlsx"))
	require.NoError(t, os.WriteFile(fm.Target, []byte("old"), 0644))

	tmp := fm.TempPath()
	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0644))
	require.NoError(t, fm.Commit(tmp))

	data, err := os.ReadFile(fm.Target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.False(t, FileExists(tmp))
}

func TestDiscard(t *testing.T) {
	fm := NewFileManager(filepath.Join(t.TempDir(), "report.xlsx"))

	tmp := fm.TempPath()
	require.NoError(t, os.WriteFile(tmp, []byte("partial"), 0644))

	fm.Discard(tmp)
	assert.False(t, FileExists(tmp))

	// Discarding a file that was never created is a no-op.
	fm.Discard(fm.TempPath())
}

func TestEnsureDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	fm := NewFileManager(filepath.Join(dir, "report.xlsx"))

	require.NoError(t, fm.EnsureDirectory())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
