package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"veriq/internal/testutil"
)

const resultsFixture = `[
  {
    "metadata": {
      "question_id": "q1",
      "job_id": "job-1",
      "timestamp": "2026-03-01T10:00:00Z",
      "answering_model": "gpt-4",
      "parsing_model": "gpt-4-mini",
      "completed_without_errors": true
    },
    "template": {"verify_result": true}
  },
  {
    "metadata": {
      "question_id": "q2",
      "job_id": "job-1",
      "timestamp": "2026-03-01T11:00:00Z",
      "answering_model": "claude-3",
      "parsing_model": "gpt-4-mini",
      "completed_without_errors": true
    },
    "template": {"verify_result": false}
  }
]`

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// TestImportListExportFlow walks the whole pipeline against a scratch
// database: import twice (the second import is all duplicates), list, then
// export both formats.
func TestImportListExportFlow(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "results.duckdb")
	fixture := writeFixture(t, dir, "results.json", resultsFixture)

	code, stdout, stderr := runCLI(t, "import", "--db", dbPath, fixture)
	if code != ExitOK {
		t.Fatalf("import: exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "2 imported, 0 duplicates") {
		t.Fatalf("import output: %s", stdout)
	}

	code, stdout, stderr = runCLI(t, "import", "--db", dbPath, fixture)
	if code != ExitOK {
		t.Fatalf("re-import: exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "0 imported, 2 duplicates") {
		t.Fatalf("re-import output: %s", stdout)
	}

	code, stdout, stderr = runCLI(t, "list", "--db", dbPath)
	if code != ExitOK {
		t.Fatalf("list: exit %d: %s", code, stderr)
	}
	for _, want := range []string{"q1", "q2", "gpt-4", "2 results"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("list output missing %q:\n%s", want, stdout)
		}
	}

	code, stdout, stderr = runCLI(t, "list", "--db", dbPath, "--outcome", "failed")
	if code != ExitOK {
		t.Fatalf("filtered list: exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "q2") || strings.Contains(stdout, "q1") {
		t.Fatalf("filtered list should keep only q2:\n%s", stdout)
	}

	code, stdout, stderr = runCLI(t, "export", "--db", dbPath, "--format", "csv", "--output", dir, "--outcome", "passed")
	if code != ExitOK {
		t.Fatalf("export: exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Exported 1 results") {
		t.Fatalf("export output: %s", stdout)
	}
	entries, err := filepath.Glob(filepath.Join(dir, "filtered_results_*.csv"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("csv export file: %v %v", entries, err)
	}
	data, err := os.ReadFile(entries[0])
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "row_index,question_id") {
		t.Fatalf("csv header missing:\n%s", data)
	}
	if strings.Contains(string(data), "q2") {
		t.Fatalf("failed result leaked into passed export:\n%s", data)
	}
}

// TestImportMultipleFiles ingests several files in one run and reports a
// combined total. The second file is a copy of the first, so every row in it
// is a duplicate.
func TestImportMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "results.duckdb")
	first := writeFixture(t, dir, "a.json", resultsFixture)
	second := filepath.Join(dir, "b.json")
	testutil.CopyFile(t, first, second)

	code, stdout, stderr := runCLI(t, "import", "--db", dbPath, first, second)
	if code != ExitOK {
		t.Fatalf("import: exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Total: 2 imported, 2 duplicates skipped") {
		t.Fatalf("import total missing:\n%s", stdout)
	}
}

// TestExportEmptySetRefusesFile reports the no-results message and writes
// nothing when the filters match no rows.
func TestExportEmptySetRefusesFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "results.duckdb")
	fixture := writeFixture(t, dir, "results.json", resultsFixture)
	if code, _, stderr := runCLI(t, "import", "--db", dbPath, fixture); code != ExitOK {
		t.Fatalf("import: %s", stderr)
	}

	outDir := filepath.Join(dir, "exports")
	code, _, stderr := runCLI(t, "export", "--db", dbPath, "--output", outDir, "--answering-model", "nonexistent")
	if code != ExitError {
		t.Fatalf("expected error exit, got %d", code)
	}
	if !strings.Contains(stderr, "No results match") {
		t.Fatalf("stderr = %s", stderr)
	}
	if entries, _ := filepath.Glob(filepath.Join(outDir, "*")); len(entries) != 0 {
		t.Fatalf("export wrote files for an empty set: %v", entries)
	}
}

// TestInitThenValidate scaffolds a project and validates the generated
// config.
func TestInitThenValidate(t *testing.T) {
	root := t.TempDir()
	code, stdout, stderr := runCLI(t, "init", "--root", root)
	if code != ExitOK {
		t.Fatalf("init: exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Wrote ") {
		t.Fatalf("init output: %s", stdout)
	}

	configPath := filepath.Join(root, ".veriq", "config.yml")
	code, stdout, stderr = runCLI(t, "validate", "--config", configPath)
	if code != ExitOK {
		t.Fatalf("validate: exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Config OK") {
		t.Fatalf("validate output: %s", stdout)
	}

	if code, _, _ := runCLI(t, "init", "--root", root); code != ExitError {
		t.Fatalf("second init should fail")
	}
}

// TestInitAddsGitignoreEntry appends the data directory when the root is a
// git repository.
func TestInitAddsGitignoreEntry(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	if code, _, stderr := runCLI(t, "init", "--root", root); code != ExitOK {
		t.Fatalf("init: %s", stderr)
	}
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if !strings.Contains(string(data), ".veriq/") {
		t.Fatalf(".gitignore missing entry:\n%s", data)
	}
}
