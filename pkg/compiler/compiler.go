// Package compiler turns a question list into the Draft-7 schema describing
// its answer document.
package compiler

import (
	"strconv"

	"github.com/goliatone/go-qna/pkg/jsonschema"
	"github.com/goliatone/go-qna/pkg/question"
)

// Compile builds the root object schema for list. Every top-level question
// becomes a property keyed by its decimal id; required questions are listed
// in definition order and no other keys are admitted.
//
// The result never aliases the list, so callers may mutate either freely.
func Compile(list *question.QuestionList) *jsonschema.ObjectNode {
	root := &jsonschema.ObjectNode{
		Schema:     jsonschema.Draft07,
		Properties: map[string]jsonschema.Node{},
		Required:   []string{},
	}
	if list == nil {
		return root
	}

	root.Title = list.Title
	root.Description = list.Description
	for _, q := range list.Questions {
		if q == nil {
			continue
		}
		key := Key(q)
		root.Properties[key] = CompileQuestion(q)
		if q.IsRequired() {
			root.Required = append(root.Required, key)
		}
	}
	return root
}

// CompileQuestion maps one question onto its schema node.
func CompileQuestion(q question.Question) jsonschema.Node {
	return question.Visit[jsonschema.Node](q, nodeBuilder{})
}

// Key returns the answer-document property name for q.
func Key(q question.Question) string {
	return strconv.Itoa(q.QuestionID())
}

type nodeBuilder struct{}

func (nodeBuilder) VisitInteger(q *question.Integer) jsonschema.Node {
	return &jsonschema.IntegerNode{
		Title:       q.Title,
		Description: q.Description,
		Default:     clone(q.Default),
		MultipleOf:  clone(q.Step),
		Minimum:     clone(q.Min),
		Maximum:     clone(q.Max),
	}
}

func (nodeBuilder) VisitFreeText(q *question.FreeText) jsonschema.Node {
	return &jsonschema.StringNode{
		Title:       q.Title,
		Description: q.Description,
		Default:     clone(q.Default),
		MinLength:   clone(q.MinLength),
		MaxLength:   clone(q.MaxLength),
	}
}

func (nodeBuilder) VisitTrueOrFalse(q *question.TrueOrFalse) jsonschema.Node {
	return &jsonschema.BooleanNode{
		Title:       q.Title,
		Description: q.Description,
		Default:     clone(q.Default),
	}
}

func (nodeBuilder) VisitFixedList(q *question.FixedList) jsonschema.Node {
	return &jsonschema.FixedListNode{
		Title:       q.Title,
		Description: q.Description,
		Default:     append([]string(nil), q.Default...),
		Enum:        append([]string{}, q.Items...),
		EnumNames:   append([]string{}, q.ItemNames...),
	}
}

func (b nodeBuilder) VisitArrayOf(q *question.ArrayOf) jsonschema.Node {
	node := &jsonschema.ArrayNode{
		Title:       q.Title,
		Description: q.Description,
	}
	if q.Question != nil {
		node.Items = question.Visit[jsonschema.Node](q.Question, b)
	}
	return node
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
