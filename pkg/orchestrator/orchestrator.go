package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	internalLoader "github.com/goliatone/go-qna/internal/definition/loader"
	"github.com/goliatone/go-qna/pkg/compiler"
	"github.com/goliatone/go-qna/pkg/definition"
	"github.com/goliatone/go-qna/pkg/jsonschema"
	"github.com/goliatone/go-qna/pkg/uischema"
	"github.com/goliatone/go-qna/pkg/validation"
)

// ErrNotLoaded is returned by operations that need a snapshot before the
// first successful Load.
var ErrNotLoaded = errors.New("orchestrator: no questionnaire loaded")

// Orchestrator coordinates loading, compiling and validating a questionnaire.
// Readers always observe a complete snapshot; Load publishes atomically and a
// failed load keeps the previous one.
type Orchestrator struct {
	loader        definition.Loader
	logger        *slog.Logger
	engine        Engine
	uiSchemaFS    fs.FS
	now           func() time.Time
	decorator     *uischema.Decorator
	initialiseErr error

	current atomic.Pointer[Snapshot]
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		engine: EngineNative,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(definition.NewLoaderOptions())
	}
	store, err := uischema.LoadFS(o.uiSchemaFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
		return
	}
	o.decorator = uischema.NewDecorator(store)
}

// Snapshot returns the current snapshot, or nil before the first load.
func (o *Orchestrator) Snapshot() *Snapshot {
	return o.current.Load()
}

// Load runs load → parse → compile → decorate → validator construction for
// src and publishes the result.
func (o *Orchestrator) Load(ctx context.Context, src definition.Source) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("orchestrator: source is required")
	}

	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		o.logger.Error("questionnaire load failed", "source", src.Location(), "error", err)
		return nil, fmt.Errorf("orchestrator: load definition: %w", err)
	}
	snap, err := o.build(src, doc)
	if err != nil {
		o.logger.Error("questionnaire compile failed", "source", src.Location(), "error", err)
		return nil, err
	}

	o.current.Store(snap)
	o.logger.Info("questionnaire loaded",
		"source", src.Location(),
		"snapshot", snap.ID.String(),
		"questions", len(snap.List.Questions),
		"engine", string(o.engine),
	)
	return snap, nil
}

func (o *Orchestrator) build(src definition.Source, doc definition.Document) (*Snapshot, error) {
	list, err := definition.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	schema := compiler.Compile(list)
	ui := uischema.Compile(list)
	if err := o.decorator.Decorate(ui); err != nil {
		return nil, fmt.Errorf("orchestrator: decorate ui schema: %w", err)
	}

	validator, err := o.newValidator(schema)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		ID:        uuid.New(),
		Source:    src,
		List:      list,
		Schema:    schema,
		UI:        ui,
		Validator: validator,
		LoadedAt:  o.now(),
		raw:       doc.Raw(),
	}, nil
}

func (o *Orchestrator) newValidator(schema *jsonschema.ObjectNode) (validation.Validator, error) {
	switch o.engine {
	case EngineNative, "":
		return validation.NewValidator(schema), nil
	case EngineDraft7:
		v, err := validation.NewDraft7Validator(schema)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: build draft7 validator: %w", err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("orchestrator: unknown engine %q", o.engine)
	}
}

// Validate decodes raw as an answer document and checks it against the
// current snapshot. Malformed input returns an error matching
// validation.ErrMalformedInput.
func (o *Orchestrator) Validate(raw []byte) (Report, error) {
	snap := o.current.Load()
	if snap == nil {
		return Report{}, ErrNotLoaded
	}
	result, err := validation.ValidateJSON(snap.Validator, raw)
	if err != nil {
		return Report{}, err
	}
	if !result.Valid {
		o.logger.Debug("answers rejected",
			"snapshot", snap.ID.String(),
			"issues", len(result.Issues),
		)
	}
	return Report{SnapshotID: snap.ID, Result: result}, nil
}

// Watch polls src every interval and publishes a new snapshot whenever the
// document content changes. Failures are logged and the previous snapshot is
// kept. Watch blocks until ctx is cancelled.
func (o *Orchestrator) Watch(ctx context.Context, src definition.Source, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("orchestrator: watch interval must be positive, got %s", interval)
	}
	if src == nil {
		return errors.New("orchestrator: source is required")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			o.poll(ctx, src)
		}
	}
}

func (o *Orchestrator) poll(ctx context.Context, src definition.Source) {
	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		if ctx.Err() == nil {
			o.logger.Warn("questionnaire poll failed", "source", src.Location(), "error", err)
		}
		return
	}
	if prev := o.current.Load(); prev != nil && bytes.Equal(prev.raw, doc.Raw()) {
		return
	}
	snap, err := o.build(src, doc)
	if err != nil {
		o.logger.Warn("questionnaire reload rejected", "source", src.Location(), "error", err)
		return
	}
	o.current.Store(snap)
	o.logger.Info("questionnaire reloaded",
		"source", src.Location(),
		"snapshot", snap.ID.String(),
	)
}
