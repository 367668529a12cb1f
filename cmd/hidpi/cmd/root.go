// Package cmd implements the hidpi commands. Each command registers itself
// in init; Execute picks one by name after stripping the global flags.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/go-drift/hidpi/pkg/errors"
)

// Set at build time with -ldflags.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command is one hidpi subcommand.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

// registry keeps commands in registration order for the help listing.
var registry []*Command

// RegisterCommand makes cmd reachable as "hidpi <cmd.Name>".
func RegisterCommand(cmd *Command) {
	registry = append(registry, cmd)
}

func lookup(name string) *Command {
	for _, c := range registry {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// globals holds the flags accepted before or after the command name.
type globals struct {
	help    bool
	version bool
	verbose bool
}

// splitGlobals removes global flags from args. A help or version flag only
// counts as global when it precedes the command name; after it, help is
// per-command and version is left for the command to reject.
func splitGlobals(args []string) (globals, []string) {
	var g globals
	rest := make([]string, 0, len(args))
	for _, arg := range args {
		leading := len(rest) == 0
		switch {
		case arg == "--verbose":
			g.verbose = true
		case leading && (arg == "-h" || arg == "--help" || arg == "help"):
			g.help = true
		case leading && (arg == "-v" || arg == "--version" || arg == "version"):
			g.version = true
		default:
			rest = append(rest, arg)
		}
	}
	return g, rest
}

// Execute runs the command named by os.Args.
func Execute() error {
	return run(os.Args[1:], os.Stdout)
}

func run(args []string, out io.Writer) error {
	g, rest := splitGlobals(args)
	if g.verbose {
		errors.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		errors.SetHandler(&errors.LogHandler{Verbose: true})
	}
	switch {
	case g.version:
		fmt.Fprintf(out, "hidpi %s (built %s)\n", Version, BuildTime)
		return nil
	case g.help || len(rest) == 0:
		usage(out)
		return nil
	}

	cmd := lookup(rest[0])
	if cmd == nil {
		usage(out)
		return fmt.Errorf("unknown command %q", rest[0])
	}
	for _, arg := range rest[1:] {
		if arg == "-h" || arg == "--help" {
			fmt.Fprintf(out, "%s\n\nUsage: %s\n", cmd.Long, cmd.Usage)
			return nil
		}
	}
	return cmd.Run(rest[1:])
}

func usage(out io.Writer) {
	fmt.Fprint(out, `hidpi renders into a headless surface whose backing store is sized the
way a browser canvas binding would size it, and reports how that size was
chosen. Settings come from hidpi.yaml; flags override them.

Usage: hidpi [--verbose] <command> [flags]

Commands:
`)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, c := range registry {
		fmt.Fprintf(tw, "  %s\t%s\n", c.Name, c.Short)
	}
	tw.Flush()
	fmt.Fprint(out, `
Global flags:
  --verbose      debug logging of strategy selection and resizes on stderr
  -h, --help     this text, or a command's help after its name
  -v, --version  print the version
`)
}
