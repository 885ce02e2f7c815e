package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const sourceEnv = "QNA_SOURCE"

// errRejected reports that validation ran and the answers were refused; the
// issues have already been printed.
var errRejected = errors.New("answers rejected")

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *environment, args []string) error
}

var commands = []command{
	{"schema", "print the compiled Draft-7 answer schema", runSchema},
	{"ui", "print the UI-hint document", runUI},
	{"validate", "validate an answer document", runValidate},
	{"openapi", "export an OpenAPI 3 description", runOpenAPI},
	{"diff", "compare the schemas of two definitions", runDiff},
	{"take", "answer a questionnaire interactively", runTake},
}

// environment carries process handles so commands stay testable.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
}

func main() {
	color.NoColor = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env := &environment{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, getenv: os.Getenv}
	err := dispatch(ctx, env, os.Args[1:])
	switch {
	case err == nil:
	case errors.Is(err, errRejected):
		stop()
		os.Exit(1)
	case errors.Is(err, flag.ErrHelp):
		stop()
		os.Exit(2)
	default:
		log.Fatalf("qna: %v", err)
	}
}

func dispatch(ctx context.Context, env *environment, args []string) error {
	if len(args) == 0 {
		usage(env.stderr)
		return flag.ErrHelp
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(ctx, env, args[1:])
		}
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(env.stdout)
		return nil
	}
	usage(env.stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <command> [flags]\n\nCommands:\n", filepath.Base(os.Args[0]))
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintf(w, "\nDefinition sources default to $%s when -source is omitted.\n", sourceEnv)
}

func newFlagSet(env *environment, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	return fs
}

func resolveSource(env *environment, flagValue string) (string, error) {
	raw := strings.TrimSpace(flagValue)
	if raw == "" {
		raw = strings.TrimSpace(env.getenv(sourceEnv))
	}
	if raw == "" {
		return "", fmt.Errorf("no definition source: pass -source or set %s", sourceEnv)
	}
	return raw, nil
}
