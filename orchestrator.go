// Package qna exposes the questionnaire pipeline from the top-level module:
// definitions are loaded and parsed, compiled into a Draft-7 answer schema
// and UI hints, and answer documents are validated against the result.
package qna

import (
	"github.com/goliatone/go-qna/pkg/compiler"
	"github.com/goliatone/go-qna/pkg/jsonschema"
	"github.com/goliatone/go-qna/pkg/orchestrator"
	"github.com/goliatone/go-qna/pkg/question"
	"github.com/goliatone/go-qna/pkg/uischema"
	"github.com/goliatone/go-qna/pkg/validation"
)

// Snapshot aliases the orchestrator snapshot for callers of the root package.
type Snapshot = orchestrator.Snapshot

// Report aliases the orchestrator validation report.
type Report = orchestrator.Report

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Compile turns a question list into its answer schema and UI-hint document.
func Compile(list *question.QuestionList) (*jsonschema.ObjectNode, uischema.Document) {
	return compiler.Compile(list), uischema.Compile(list)
}

// NewValidator compiles list and returns the native validator for it.
func NewValidator(list *question.QuestionList) validation.Validator {
	return validation.NewValidator(compiler.Compile(list))
}
