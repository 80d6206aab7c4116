package testutil

import (
	"fmt"
	"io"
	"os"
	"testing"
)

// CopyFile duplicates a fixture file for a test, using a copy-on-write clone
// where the platform supports it.
func CopyFile(t testing.TB, src, dst string) {
	t.Helper()
	if err := cloneFile(src, dst); err == nil {
		return
	}
	if err := copyFileContents(src, dst); err != nil {
		t.Fatalf("copy %s to %s: %v", src, dst, err)
	}
}

func copyFileContents(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy contents: %w", err)
	}
	return out.Close()
}
