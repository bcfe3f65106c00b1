// ABOUTME: Integration tests for the glucolog CLI.
// ABOUTME: Builds the binary and runs the seed/list/report/export workflow.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(projectRoot, "glucolog")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/glucolog")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(binary)

	// Use temp database
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--db", dbPath}, args...)
		cmd := exec.Command(binary, fullArgs...)
		cmd.Env = append(os.Environ(), "XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"))
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Seed demo data
	output, err := run("seed", "--days", "7")
	if err != nil {
		t.Fatalf("Failed to seed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Seeded") {
		t.Errorf("Expected 'Seeded' in output, got: %s", output)
	}

	// Seeding again skips duplicates
	output, err = run("seed", "--days", "7")
	if err != nil {
		t.Fatalf("Failed to re-seed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "0 glucose readings") {
		t.Errorf("Expected duplicate-free re-seed, got: %s", output)
	}

	// List readings
	output, err = run("list", "glucose", "-n", "5")
	if err != nil {
		t.Fatalf("Failed to list glucose: %v\n%s", err, output)
	}
	if !strings.Contains(output, "mg/dL") {
		t.Errorf("Expected 'mg/dL' in list output, got: %s", output)
	}

	output, err = run("list", "sleep")
	if err != nil {
		t.Fatalf("Failed to list sleep: %v\n%s", err, output)
	}
	if !strings.Contains(output, "asleep") {
		t.Errorf("Expected 'asleep' in sleep list, got: %s", output)
	}

	// Status shows counts per domain
	output, err = run("status")
	if err != nil {
		t.Fatalf("Failed to get status: %v\n%s", err, output)
	}
	for _, domain := range []string{"glucose", "sleep", "exercise"} {
		if !strings.Contains(output, domain) {
			t.Errorf("Expected %q in status output, got: %s", domain, output)
		}
	}

	// Pattern report
	output, err = run("report", "patterns")
	if err != nil {
		t.Fatalf("Failed to report patterns: %v\n%s", err, output)
	}
	if !strings.Contains(output, "time_in_range") {
		t.Errorf("Expected 'time_in_range' in patterns report, got: %s", output)
	}
	if !strings.Contains(output, "hourly") {
		t.Errorf("Expected 'hourly' in patterns report, got: %s", output)
	}

	// Correlation report
	output, err = run("report", "correlations")
	if err != nil {
		t.Fatalf("Failed to report correlations: %v\n%s", err, output)
	}
	if !strings.Contains(output, "coefficient") {
		t.Errorf("Expected 'coefficient' in correlations report, got: %s", output)
	}

	// Export
	exportFile := filepath.Join(tmpDir, "backup.json")
	output, err = run("export", "json", "-o", exportFile)
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if _, err := os.Stat(exportFile); err != nil {
		t.Errorf("Expected export file: %v", err)
	}

	// Date-range errors surface as command failures
	output, err = run("list", "glucose", "--start", "2025-03-01")
	if err == nil {
		t.Errorf("Expected partial-range error, got output: %s", output)
	}
}
