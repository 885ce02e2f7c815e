package orchestrator

import (
	"io/fs"
	"log/slog"
	"time"

	"github.com/goliatone/go-qna/pkg/definition"
)

// Engine selects the validator implementation built for each snapshot.
type Engine string

const (
	// EngineNative walks the compiled schema directly.
	EngineNative Engine = "native"
	// EngineDraft7 delegates to a general Draft-7 validator.
	EngineDraft7 Engine = "draft7"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom definition loader.
func WithLoader(loader definition.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithLogger sets the structured logger used for load and validate events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEngine chooses the validation engine. Unknown engines fail on Load.
func WithEngine(engine Engine) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// WithUISchemaFS supplies an fs.FS holding UI-hint override documents that
// are applied to every compiled snapshot.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
	}
}

// WithClock overrides the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}
