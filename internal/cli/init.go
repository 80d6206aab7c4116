package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"veriq/internal/config"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		root := fs.String("root", "", "Project root (default: current directory)")
		gitignore := fs.Bool("gitignore", true, "Add the data directory to .gitignore when the root is a git repo")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if code, ok := rejectExtraArgs(cmd, fs, stderr); !ok {
			return code
		}

		rootDir := *root
		if rootDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			rootDir = wd
		}

		path, err := config.Scaffold(rootDir)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", path)

		if *gitignore && isGitRoot(rootDir) {
			updated, err := addGitignoreEntry(rootDir, config.ConfigDirName)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
				return ExitError
			}
			if updated {
				fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(rootDir, ".gitignore"))
			}
		}
		return ExitOK
	}
}

// isGitRoot reports whether dir has a .git entry.
func isGitRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
