package e2e

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const (
	originalSource = `def total(items):
    """Sum the prices."""
    result = 0
    for item in items:
        result += item.price
    return result
`
	renamedSource = `# copied from a classmate
def compute_sum(things):
    acc = 0
    for thing in things:
        acc += thing.price

    return acc
`
	unrelatedSource = `class Stack:
    def __init__(self):
        self.items = []

    def push(self, value):
        self.items.append(value)
`
)

func runPlagiat(t *testing.T, binaryPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "CI=true")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestCompareE2EBasic scores a list through the root command
func TestCompareE2EBasic(t *testing.T) {
	binaryPath := buildPlagiatBinary(t)

	testDir := t.TempDir()
	a := createTestPythonFile(t, testDir, "original.py", originalSource)
	b := createTestPythonFile(t, testDir, "renamed.py", renamedSource)
	c := createTestPythonFile(t, testDir, "unrelated.py", unrelatedSource)
	list := createPairList(t, testDir, [2]string{a, b}, [2]string{a, c}, [2]string{c, c})
	out := filepath.Join(testDir, "scores.txt")

	_, stderr, err := runPlagiat(t, binaryPath, list, out)
	if err != nil {
		t.Fatalf("Command failed: %v\n%s", err, stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), data)
	}
	if lines[0] != "1.0" {
		t.Errorf("Renamed copy should score 1.0, got %s", lines[0])
	}
	if lines[1] == "1.0" {
		t.Error("Unrelated files should not score 1.0")
	}
	if lines[2] != "1.0" {
		t.Errorf("Same file twice should score 1.0, got %s", lines[2])
	}
}

// TestCompareE2EJSONOutput checks the format is inferred from the extension
func TestCompareE2EJSONOutput(t *testing.T) {
	binaryPath := buildPlagiatBinary(t)

	testDir := t.TempDir()
	a := createTestPythonFile(t, testDir, "original.py", originalSource)
	b := createTestPythonFile(t, testDir, "renamed.py", renamedSource)
	list := createPairList(t, testDir, [2]string{a, b})
	out := filepath.Join(t.TempDir(), "report.json")

	_, stderr, err := runPlagiat(t, binaryPath, "compare", list, out, "--workers", "2")
	if err != nil {
		t.Fatalf("Command failed: %v\n%s", err, stderr)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	var report struct {
		Results []struct {
			Score    float64 `json:"score"`
			Distance int     `json:"distance"`
		} `json:"results"`
		Summary struct {
			TotalPairs int `json:"total_pairs"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if report.Summary.TotalPairs != 1 || len(report.Results) != 1 {
		t.Fatalf("Unexpected report: %s", data)
	}
	if report.Results[0].Score != 1.0 || report.Results[0].Distance != 0 {
		t.Errorf("Expected an exact match, got %+v", report.Results[0])
	}
}

// TestCompareE2EMalformedList checks the exit status and that no output is written
func TestCompareE2EMalformedList(t *testing.T) {
	binaryPath := buildPlagiatBinary(t)

	testDir := t.TempDir()
	list := createTestPythonFile(t, testDir, "pairs.txt", "lonely.py\n")
	out := filepath.Join(testDir, "scores.txt")

	_, stderr, err := runPlagiat(t, binaryPath, list, out)
	if err == nil {
		t.Fatal("Expected a non-zero exit status")
	}
	if exitErr, ok := err.(*exec.ExitError); !ok || exitErr.ExitCode() != 1 {
		t.Errorf("Expected exit status 1, got %v", err)
	}
	if !strings.Contains(stderr, "pairs.txt:1") {
		t.Errorf("Error should name the line, got %q", stderr)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("No output file should be written on failure")
	}
}

// TestDiffE2E checks the diff command on renamed copies
func TestDiffE2E(t *testing.T) {
	binaryPath := buildPlagiatBinary(t)

	testDir := t.TempDir()
	a := createTestPythonFile(t, testDir, "original.py", originalSource)
	b := createTestPythonFile(t, testDir, "renamed.py", renamedSource)

	stdout, stderr, err := runPlagiat(t, binaryPath, "diff", a, b)
	if err != nil {
		t.Fatalf("Command failed: %v\n%s", err, stderr)
	}
	if stdout != "similarity: 1.0 (distance 0)\n" {
		t.Errorf("Unexpected output: %q", stdout)
	}
}

// TestVersionE2E checks the version command
func TestVersionE2E(t *testing.T) {
	binaryPath := buildPlagiatBinary(t)

	stdout, _, err := runPlagiat(t, binaryPath, "version", "--short")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if strings.TrimSpace(stdout) == "" {
		t.Error("Version should not be empty")
	}
}
