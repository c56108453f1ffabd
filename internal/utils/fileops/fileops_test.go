package fileops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/implementor/internal/errors"
)

func TestFileOps_EnsureParentAndWrite(t *testing.T) {
	fo := NewFileOps()
	target := filepath.Join(t.TempDir(), "a", "b", "c", "File.java")

	require.NoError(t, fo.EnsureParent(target))
	assert.True(t, fo.IsDir(filepath.Dir(target)))

	require.NoError(t, fo.WriteFile(target, []byte("first")))
	require.NoError(t, fo.WriteFile(target, []byte("second")))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content), "writes overwrite existing files")
	assert.True(t, fo.IsFile(target))
}

func TestFileOps_EnsureParentBlockedByFile(t *testing.T) {
	fo := NewFileOps()
	root := t.TempDir()
	blocker := filepath.Join(root, "com")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	err := fo.EnsureParent(filepath.Join(blocker, "example", "X.java"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.PathConstructionFailureCode))
	assert.Contains(t, err.Error(), "com")
}

func TestFileOps_WriteIntoMissingDirectory(t *testing.T) {
	fo := NewFileOps()
	target := filepath.Join(t.TempDir(), "missing", "X.java")

	err := fo.WriteFile(target, []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.WriteFailureCode))
	assert.Contains(t, err.Error(), target)
}

func TestFileOps_CreateWorkspace(t *testing.T) {
	fo := NewFileOps()
	parent := t.TempDir()

	first, err := fo.CreateWorkspace(parent, "impl-")
	require.NoError(t, err)
	second, err := fo.CreateWorkspace(parent, "impl-")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, parent, filepath.Dir(first))
	assert.True(t, strings.HasPrefix(filepath.Base(first), "impl-"))
	assert.True(t, fo.IsDir(first))

	require.NoError(t, fo.RemoveAll(first))
	assert.False(t, fo.Exists(first))
}

func TestFileOps_CreateWorkspaceMissingParent(t *testing.T) {
	fo := NewFileOps()

	_, err := fo.CreateWorkspace(filepath.Join(t.TempDir(), "nope"), "impl-")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.WorkspaceFailureCode))
}

func TestPathValidator(t *testing.T) {
	pv := NewPathValidator()

	_, err := pv.Clean("")
	assert.Error(t, err)

	cleaned, err := pv.Clean("a/./b/../c")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("a", "c"), cleaned)

	dir := t.TempDir()
	assert.True(t, pv.IsDir(dir))
	assert.False(t, pv.IsFile(dir))
	assert.False(t, pv.Exists(filepath.Join(dir, "missing")))

	abs, err := pv.Absolute("rel")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
}
