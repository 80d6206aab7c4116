package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"veriq/internal/checkpoint"
)

// runConvert builds the handler for the convert command.
func runConvert(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		to := fs.String("to", "", "Target format: plain, unified, or jsonld")
		mergePath := fs.String("merge", "", "Merge another checkpoint's items before writing")
		onDuplicate := fs.String("on-duplicate", "", "Resolve merge conflicts: keep_old or keep_new (default: fail)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		target := checkpoint.Format(*to)
		switch target {
		case checkpoint.FormatPlain, checkpoint.FormatUnified, checkpoint.FormatLinkedData:
		default:
			fmt.Fprintf(stderr, "--to must be plain, unified, or jsonld: %q\n", *to)
			return ExitUsage
		}
		switch checkpoint.Resolution(*onDuplicate) {
		case "", checkpoint.KeepOld, checkpoint.KeepNew:
		default:
			fmt.Fprintf(stderr, "--on-duplicate must be keep_old or keep_new: %q\n", *onDuplicate)
			return ExitUsage
		}
		if fs.NArg() == 0 {
			fmt.Fprintln(stderr, "Missing <in.json>")
			return ExitUsage
		}
		if fs.NArg() > 2 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}

		unified, sourceFormat, err := checkpoint.Load(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Convert failed: %v\n", err)
			return ExitError
		}

		if *mergePath != "" {
			incoming, _, err := checkpoint.Load(*mergePath)
			if err != nil {
				fmt.Fprintf(stderr, "Convert failed: %v\n", err)
				return ExitError
			}
			merged, err := checkpoint.MergeCheckpoints(unified.Checkpoint, incoming.Checkpoint, resolver(*onDuplicate))
			if err != nil {
				var dup *checkpoint.DuplicateError
				if errors.As(err, &dup) {
					fmt.Fprintf(stderr, "Convert failed: %v\nUse --on-duplicate keep_old or keep_new to resolve.\n", dup)
					return ExitError
				}
				fmt.Fprintf(stderr, "Convert failed: %v\n", err)
				return ExitError
			}
			unified.Checkpoint = merged
		}

		data, err := checkpoint.Marshal(unified, target)
		if err != nil {
			fmt.Fprintf(stderr, "Convert failed: %v\n", err)
			return ExitError
		}

		outPath := fs.Arg(1)
		if outPath == "" {
			fmt.Fprintln(stdout, string(data))
		} else {
			if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
				fmt.Fprintf(stderr, "Convert failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Converted %s checkpoint to %s at %s\n", sourceFormat, target, outPath)
		}
		return ExitOK
	}
}

// resolver maps the --on-duplicate value to a merge resolver. An empty value
// returns nil so conflicts fail loudly.
func resolver(choice string) func(checkpoint.Duplicate) checkpoint.Resolution {
	switch checkpoint.Resolution(choice) {
	case checkpoint.KeepOld:
		return func(checkpoint.Duplicate) checkpoint.Resolution { return checkpoint.KeepOld }
	case checkpoint.KeepNew:
		return func(checkpoint.Duplicate) checkpoint.Resolution { return checkpoint.KeepNew }
	default:
		return nil
	}
}
