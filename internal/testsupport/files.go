package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteMediaFile fills the target path with the requested number of bytes
// using a repeating pattern. A size <= 0 writes a single byte. Parent
// directories are created as needed.
func WriteMediaFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// SeedLibrary creates each relative path under root as a one-byte file. A
// trailing separator marks a bare directory instead. It returns the root for
// chaining.
func SeedLibrary(t testing.TB, root string, relative ...string) string {
	t.Helper()

	for _, rel := range relative {
		target := filepath.Join(root, rel)
		if len(rel) > 0 && rel[len(rel)-1] == '/' {
			if err := os.MkdirAll(target, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", target, err)
			}
			continue
		}
		WriteMediaFile(t, target, 1)
	}
	return root
}
