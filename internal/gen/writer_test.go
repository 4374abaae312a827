package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pkg")
	files := []GeneratedFile{{Dir: dir, Filename: "derive_gen.go", Content: []byte("package pkg\n")}}

	written, err := WriteFiles(files)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "derive_gen.go")}, written)

	b, err := os.ReadFile(filepath.Join(dir, "derive_gen.go"))
	require.NoError(t, err)
	assert.Equal(t, "package pkg\n", string(b))

	written, err = WriteFiles(files)
	require.NoError(t, err)
	assert.Empty(t, written, "unchanged files are not rewritten")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fresh.go"), []byte("package p\n"), filePerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.go"), []byte("package old\n"), filePerm))

	stale, err := Check([]GeneratedFile{
		{Dir: dir, Filename: "fresh.go", Content: []byte("package p\n")},
		{Dir: dir, Filename: "stale.go", Content: []byte("package p\n")},
		{Dir: dir, Filename: "missing.go", Content: []byte("package p\n")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "stale.go"), filepath.Join(dir, "missing.go")}, stale)
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "derive_gen.go", []byte("package ???")))

	b, err := os.ReadFile(filepath.Join(dir, "derive_gen.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "package ???", string(b))

	assert.NoError(t, writeDebugUnformatted("", "derive_gen.go", nil))
}
