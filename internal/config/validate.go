package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueAdder adds a validation issue to a shared collector.
type issueAdder func(field, message string)

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config for usable paths and addresses.
func Validate(cfg *Config) error {
	collector := &issueCollector{}
	validatePaths(cfg, collector.add)
	validateServe(cfg, collector.add)
	return collector.result()
}

func validatePaths(cfg *Config, add issueAdder) {
	if strings.TrimSpace(cfg.ResultsDB) == "" {
		add("results_db", "must not be empty")
	}
	if strings.TrimSpace(cfg.ExportDir) == "" {
		add("export_dir", "must not be empty")
	}
	if cfg.Checkpoint != "" && filepath.Ext(cfg.Checkpoint) != ".json" {
		add("checkpoint", "must be a .json file")
	}
}

func validateServe(cfg *Config, add issueAdder) {
	host, port, err := net.SplitHostPort(cfg.Serve.Addr)
	if err != nil {
		add("serve.addr", "must be host:port")
		return
	}
	if host == "" || port == "" {
		add("serve.addr", "must include both host and port")
	}
}
