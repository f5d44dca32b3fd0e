package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildLaastBinary builds cmd/laast into a temporary directory
func buildLaastBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "laast")

	// Build the binary from the project root (one level up from e2e directory)
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/laast")
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build laast binary: %v\n%s", err, out)
	}
	return binaryPath
}

// runLaast runs the binary and returns stdout, stderr and the exit code
func runLaast(t *testing.T, binaryPath string, args ...string) (string, string, int) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if exitErr, ok := err.(*exec.ExitError); ok {
		return stdout.String(), stderr.String(), exitErr.ExitCode()
	}
	if err != nil {
		t.Fatalf("Failed to run laast: %v", err)
	}
	return stdout.String(), stderr.String(), 0
}

// helloWorldCorpus returns the absolute path of the bundled corpus
func helloWorldCorpus(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("..", "testdata", "hello_world"))
	if err != nil {
		t.Fatalf("Failed to resolve corpus: %v", err)
	}
	return dir
}

func createSourceFile(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}
}

// createTestConfigFile writes a .laast.toml into dir
func createTestConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	createSourceFile(t, dir, ".laast.toml", content)
}
