package gen

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"
)

// formatSource formats src as the file at path and fixes its imports, so
// that packages referenced only by user default expressions get imported.
func formatSource(path string, src []byte) ([]byte, error) {
	return imports.Process(path, src, nil)
}

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. This is best-effort and should never make generation fail
// harder.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	// Keep it a .go file so editors can syntax highlight, but avoid colliding
	// with real output.
	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(outDir, debugName), content, filePerm)
}
