package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	qna "github.com/goliatone/go-qna"
	"github.com/goliatone/go-qna/pkg/definition"
	"github.com/goliatone/go-qna/pkg/jsonschema"
	"github.com/goliatone/go-qna/pkg/openapi"
	"github.com/goliatone/go-qna/pkg/orchestrator"
	"github.com/goliatone/go-qna/pkg/question"
	"github.com/goliatone/go-qna/pkg/taker"
	"github.com/goliatone/go-qna/pkg/validation"
)

// sourceFlags configures where definitions are read from.
type sourceFlags struct {
	source   string
	timeout  time.Duration
	s3Region string
}

func (s *sourceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.source, "source", "", "definition path, fs:<path>, http(s):// URL or s3://bucket/key")
	fs.DurationVar(&s.timeout, "timeout", 10*time.Second, "timeout for remote definitions")
	fs.StringVar(&s.s3Region, "s3-region", "", "AWS region for s3:// sources (defaults to the shared config)")
}

func (s *sourceFlags) resolve(env *environment) (definition.Source, error) {
	raw, err := resolveSource(env, s.source)
	if err != nil {
		return nil, err
	}
	return definition.ParseSource(raw)
}

// loader enables the remote backends a CLI user reasonably expects: URLs,
// S3 through the ambient AWS configuration, and fs: paths relative to the
// working directory.
func (s *sourceFlags) loader() definition.Loader {
	return qna.NewLoader(
		definition.WithFileSystem(os.DirFS(".")),
		definition.WithHTTPFallback(s.timeout),
		definition.WithS3DefaultConfig(s.s3Region),
	)
}

func (s *sourceFlags) questions(ctx context.Context, env *environment) (*question.QuestionList, error) {
	src, err := s.resolve(env)
	if err != nil {
		return nil, err
	}
	return qna.LoadQuestionList(ctx, s.loader(), src)
}

func (s *sourceFlags) orchestrator(env *environment, options ...orchestrator.Option) *orchestrator.Orchestrator {
	logger := slog.New(slog.NewTextHandler(env.stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	base := []orchestrator.Option{
		orchestrator.WithLoader(s.loader()),
		orchestrator.WithLogger(logger),
	}
	return qna.NewOrchestrator(append(base, options...)...)
}

func overridesOption(dir string) orchestrator.Option {
	if dir == "" {
		return nil
	}
	return orchestrator.WithUISchemaFS(os.DirFS(dir))
}

func runSchema(ctx context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "schema")
	var src sourceFlags
	src.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := src.questions(ctx, env)
	if err != nil {
		return err
	}
	schema, _ := qna.Compile(list)
	payload, err := jsonschema.MarshalIndent(schema)
	if err != nil {
		return err
	}
	return writeLine(env.stdout, payload)
}

func runUI(ctx context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "ui")
	var src sourceFlags
	src.register(fs)
	overrides := fs.String("overrides", "", "directory of UI-hint override files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	source, err := src.resolve(env)
	if err != nil {
		return err
	}
	snap, err := src.orchestrator(env, overridesOption(*overrides)).Load(ctx, source)
	if err != nil {
		return err
	}
	return writeJSON(env.stdout, snap.UI)
}

func runValidate(ctx context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "validate")
	var src sourceFlags
	src.register(fs)
	answers := fs.String("answers", "-", "answer document path, - for stdin")
	engine := fs.String("engine", string(orchestrator.EngineNative), "validation engine: native or draft7")
	asJSON := fs.Bool("json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	source, err := src.resolve(env)
	if err != nil {
		return err
	}
	raw, err := readInput(env, *answers)
	if err != nil {
		return err
	}

	orch := src.orchestrator(env, orchestrator.WithEngine(orchestrator.Engine(*engine)))
	if _, err := orch.Load(ctx, source); err != nil {
		return err
	}
	report, err := orch.Validate(raw)
	if err != nil {
		return err
	}

	if *asJSON {
		if err := writeJSON(env.stdout, report); err != nil {
			return err
		}
	} else {
		printResult(env.stdout, report.Result)
	}
	if !report.Result.Valid {
		return errRejected
	}
	return nil
}

func runOpenAPI(ctx context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "openapi")
	var src sourceFlags
	src.register(fs)
	var opts openapi.Options
	fs.StringVar(&opts.Title, "title", "", "document title (defaults to the questionnaire title)")
	fs.StringVar(&opts.Version, "version", "", "document version")
	fs.StringVar(&opts.BasePath, "base-path", "", "path prefix for the operations")
	fs.StringVar(&opts.ServerURL, "server", "", "server URL")
	format := fs.String("format", "json", "output format: json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := src.questions(ctx, env)
	if err != nil {
		return err
	}
	doc, err := openapi.Export(ctx, list, opts)
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	switch *format {
	case "json":
		return writeLine(env.stdout, payload)
	case "yaml":
		out, err := jsonToYAML(payload)
		if err != nil {
			return err
		}
		_, err = env.stdout.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func runDiff(ctx context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "diff")
	var src sourceFlags
	src.register(fs)
	after := fs.String("after", "", "definition to compare against -source")
	patch := fs.Bool("merge-patch", false, "print an RFC 7386 merge patch instead of a line diff")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *after == "" {
		return errors.New("diff: -after is required")
	}

	before, err := src.questions(ctx, env)
	if err != nil {
		return err
	}
	next := sourceFlags{source: *after, timeout: src.timeout, s3Region: src.s3Region}
	updated, err := next.questions(ctx, env)
	if err != nil {
		return err
	}

	beforeSchema, _ := qna.Compile(before)
	afterSchema, _ := qna.Compile(updated)

	if *patch {
		out, err := jsonschema.MergePatch(beforeSchema, afterSchema)
		if err != nil {
			return err
		}
		return writeLine(env.stdout, out)
	}

	diff, err := jsonschema.Diff(beforeSchema, afterSchema)
	if err != nil {
		return err
	}
	if diff == "" {
		fmt.Fprintln(env.stdout, color.GreenString("schemas are identical"))
		return nil
	}
	printDiff(env.stdout, diff)
	return nil
}

func runTake(ctx context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "take")
	var src sourceFlags
	src.register(fs)
	overrides := fs.String("overrides", "", "directory of UI-hint override files")
	prefill := fs.String("prefill", "", "previous answer document used as defaults")
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	source, err := src.resolve(env)
	if err != nil {
		return err
	}
	snap, err := src.orchestrator(env, overridesOption(*overrides)).Load(ctx, source)
	if err != nil {
		return err
	}

	options := []taker.Option{
		taker.WithValidator(snap.Validator),
		taker.WithHints(snap.UI),
	}
	if *prefill != "" {
		raw, err := readInput(env, *prefill)
		if err != nil {
			return err
		}
		var values map[string]any
		if err := json.Unmarshal(raw, &values); err != nil {
			return fmt.Errorf("read prefill: %w", err)
		}
		options = append(options, taker.WithPrefill(values))
	}

	session, err := taker.New(snap.List, options...)
	if err != nil {
		return err
	}
	answers, err := session.Run(ctx)
	if err != nil {
		var issues validation.Issues
		if errors.As(err, &issues) {
			printResult(env.stderr, validation.Result{Issues: issues})
			return errRejected
		}
		return err
	}

	payload, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return err
	}
	if *output == "" {
		return writeLine(env.stdout, payload)
	}
	if err := os.WriteFile(*output, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write answers: %w", err)
	}
	fmt.Fprintf(env.stderr, "Answers written to %s\n", *output)
	return nil
}

func readInput(env *environment, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(env.stdin)
	}
	return os.ReadFile(path)
}

func writeJSON(w io.Writer, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeLine(w, payload)
}

func writeLine(w io.Writer, payload []byte) error {
	_, err := fmt.Fprintln(w, string(payload))
	return err
}

func printResult(w io.Writer, result validation.Result) {
	if len(result.Issues) == 0 {
		fmt.Fprintln(w, color.GreenString("valid"))
		return
	}
	fmt.Fprintln(w, color.RedString("invalid: %d issue(s)", len(result.Issues)))
	code := color.New(color.FgYellow).SprintFunc()
	for _, issue := range result.Issues {
		fmt.Fprintf(w, "  [%s] %s\n", code(issue.Code), issue.Message)
	}
}

func printDiff(w io.Writer, diff string) {
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case len(line) > 0 && line[0] == '+':
			fmt.Fprintln(w, color.GreenString(line))
		case len(line) > 0 && line[0] == '-':
			fmt.Fprintln(w, color.RedString(line))
		default:
			fmt.Fprintln(w, line)
		}
	}
}

// jsonToYAML re-encodes a JSON document as block-style YAML, keeping key
// order.
func jsonToYAML(payload []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(payload, &node); err != nil {
		return nil, err
	}
	clearStyle(&node)
	return yaml.Marshal(&node)
}

func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}
