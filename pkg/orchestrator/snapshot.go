package orchestrator

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-qna/pkg/definition"
	"github.com/goliatone/go-qna/pkg/jsonschema"
	"github.com/goliatone/go-qna/pkg/question"
	"github.com/goliatone/go-qna/pkg/uischema"
	"github.com/goliatone/go-qna/pkg/validation"
)

// Snapshot is one fully compiled questionnaire. Snapshots are never mutated
// after publication; a reload produces a new one.
type Snapshot struct {
	ID        uuid.UUID
	Source    definition.Source
	List      *question.QuestionList
	Schema    *jsonschema.ObjectNode
	UI        uischema.Document
	Validator validation.Validator
	LoadedAt  time.Time

	raw []byte
}

// Report pairs a validation result with the snapshot that produced it.
type Report struct {
	SnapshotID uuid.UUID         `json:"snapshot_id"`
	Result     validation.Result `json:"result"`
}
