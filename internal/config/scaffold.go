package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Scaffold writes a starter config under root/.veriq and returns its path.
// It refuses to overwrite an existing config.
func Scaffold(root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("project root is required")
	}
	path := ConfigPath(root)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("config path %q is a directory", path)
		}
		return "", fmt.Errorf("config file already exists at %q", path)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	content, err := renderScaffoldConfig()
	if err != nil {
		return "", fmt.Errorf("render config: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}
	return path, nil
}
