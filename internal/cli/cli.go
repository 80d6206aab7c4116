package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  veriq <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"veriq <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .veriq/config.yml", []string{
		"veriq init [--root <dir>]",
	}, runInit),
	command("validate", "Validate the project config", []string{
		"veriq validate [--config <path>]",
	}, runValidate),
	command("import", "Ingest verification result files", []string{
		"veriq import [--db <path>] <results.json>...",
	}, runImport),
	command("list", "List stored results", []string{
		"veriq list [--db <path>] [filter flags]",
	}, runList),
	command("export", "Export filtered results as JSON or CSV", []string{
		"veriq export [--db <path>] [--format json|csv] [--output <dir>] [--checkpoint <path>] [filter flags]",
	}, runExport),
	command("convert", "Convert a checkpoint between formats", []string{
		"veriq convert --to plain|unified|jsonld [--merge <path> --on-duplicate keep_old|keep_new] <in.json> [<out.json>]",
	}, runConvert),
	command("report", "Render an HTML report of filtered results", []string{
		"veriq report [--db <path>] [--output <path>] [filter flags]",
	}, runReport),
	command("review", "Browse filtered results interactively", []string{
		"veriq review [--db <path>] [--ui auto|live|plain] [filter flags]",
	}, runReview),
	command("serve", "Serve the report and export endpoints over HTTP", []string{
		"veriq serve [--db <path>] [--addr <host:port>]",
	}, runServe),
}
