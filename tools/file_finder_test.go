package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landate83/gopointpack/internal/conv"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestGetInputFilesToProcess_SingleFile(t *testing.T) {
	t.Parallel()

	finder := NewStandardFileFinder()
	files := finder.GetInputFilesToProcess(&conv.Options{Input: "cloud.ply"})
	assert.Equal(t, []string{"cloud.ply"}, files)
}

func TestGetInputFilesToProcess_Folder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.ply"))
	touch(t, filepath.Join(dir, "b.sog"))
	touch(t, filepath.Join(dir, "c.txt"))
	touch(t, filepath.Join(dir, "nested", "d.ply"))

	finder := NewStandardFileFinder()

	files := finder.GetInputFilesToProcess(&conv.Options{Input: dir, FolderProcessing: true})
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.ply"),
		filepath.Join(dir, "b.sog"),
	}, files)

	recursive := finder.GetInputFilesToProcess(&conv.Options{
		Input:            dir,
		FolderProcessing: true,
		Recursive:        true,
	})
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.ply"),
		filepath.Join(dir, "b.sog"),
		filepath.Join(dir, "nested", "d.ply"),
	}, recursive)
}

func TestIsSupportedInput(t *testing.T) {
	t.Parallel()

	assert.True(t, IsSupportedInput("cloud.ply"))
	assert.True(t, IsSupportedInput("cloud.SOG"))
	assert.False(t, IsSupportedInput("cloud.las"))
	assert.False(t, IsSupportedInput("cloud"))
}
