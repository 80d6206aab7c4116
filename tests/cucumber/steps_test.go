package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"veriq/internal/cli"

	"github.com/cucumber/godog"
)

type featureState struct {
	workDir     string
	previousWD  string
	stdout      bytes.Buffer
	stderr      bytes.Buffer
	exitCode    int
	initialized bool
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a project directory with a results file$`, state.aProjectWithResultsFile)
	ctx.Step(`^a project directory with an invalid configuration$`, state.aProjectWithInvalidConfig)
	ctx.Step(`^a project directory with a checkpoint file$`, state.aProjectWithCheckpointFile)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the error message mentions "([^"]+)"$`, state.theErrorMessageMentions)
}

func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.initialized = false
}

func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	if s.workDir != "" {
		_ = os.RemoveAll(s.workDir)
	}
}

func (s *featureState) enterProjectDir() error {
	if s.initialized {
		return nil
	}
	dir, err := os.MkdirTemp("", "veriq-feature-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	s.workDir = dir
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	s.initialized = true
	return nil
}

func (s *featureState) aProjectWithResultsFile() error {
	if err := s.enterProjectDir(); err != nil {
		return err
	}
	return s.writeFile("results.json", resultsJSON())
}

func (s *featureState) aProjectWithInvalidConfig() error {
	if err := s.enterProjectDir(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(s.workDir, ".veriq"), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return s.writeFile(filepath.Join(".veriq", "config.yml"), invalidConfigYAML())
}

func (s *featureState) aProjectWithCheckpointFile() error {
	if err := s.enterProjectDir(); err != nil {
		return err
	}
	return s.writeFile("checkpoint.json", checkpointJSON())
}

func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "veriq" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) theOutputContains(expected string) error {
	if !strings.Contains(s.stdout.String(), expected) {
		return fmt.Errorf("expected %q in output, got %q", expected, s.stdout.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("expected zero exit code, got %d (%s)", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

func (s *featureState) theErrorMessageMentions(expected string) error {
	if !strings.Contains(s.stderr.String(), expected) {
		return fmt.Errorf("expected error to mention %q, got %q", expected, s.stderr.String())
	}
	return nil
}

func (s *featureState) writeFile(name, contents string) error {
	if s.workDir == "" {
		return fmt.Errorf("work dir is not set")
	}
	path := filepath.Join(s.workDir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func resultsJSON() string {
	return `[
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
}

func checkpointJSON() string {
	return `{
  "q1": {"question": "Q1?", "raw_answer": "A1.", "finished": true, "last_modified": "2026-01-01T00:00:00Z"}
}`
}

func invalidConfigYAML() string {
	return `results_db: results.duckdb
export_dir: exports
checkpoint: notes.txt
`
}
