package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildPlagiatBinary compiles cmd/plagiat into a temporary directory
func buildPlagiatBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "plagiat")

	// Build the binary from the project root (one level up from e2e directory)
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/plagiat")
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build plagiat binary: %v\n%s", err, out)
	}

	return binaryPath
}

func createTestPythonFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}
	return filePath
}

// createPairList writes pairs as "a b" lines and returns the list path
func createPairList(t *testing.T, dir string, pairs ...[2]string) string {
	t.Helper()

	var sb strings.Builder
	for _, p := range pairs {
		sb.WriteString(p[0] + " " + p[1] + "\n")
	}
	return createTestPythonFile(t, dir, "pairs.txt", sb.String())
}
