package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-qna/pkg/question"
)

const (
	// AnswersSchema names the component holding the compiled answer schema.
	AnswersSchema = "Answers"
	// UISchema names the component describing the UI-hint document.
	UISchema = "UISchema"
	// IssueSchema names the component describing one validation issue.
	IssueSchema = "Issue"
	// ValidationFailureSchema names the 400 response body component.
	ValidationFailureSchema = "ValidationFailure"

	enumNamesExtension = "x-enumNames"
	openAPIVersion     = "3.0.3"
)

// Options configures the exported document.
type Options struct {
	Title     string
	Version   string
	BasePath  string
	ServerURL string
}

func (o Options) withDefaults(list *question.QuestionList) Options {
	if o.Title == "" && list != nil {
		o.Title = list.Title
	}
	if o.Title == "" {
		o.Title = "Questionnaire"
	}
	if o.Version == "" {
		o.Version = "1.0.0"
	}
	o.BasePath = "/" + strings.Trim(o.BasePath, "/")
	if o.BasePath == "/" {
		o.BasePath = ""
	}
	return o
}

// Export describes the questionnaire endpoints a transport layer would serve:
// the compiled schema, the UI-hint document and answer submission. The
// document is validated before it is returned.
func Export(ctx context.Context, list *question.QuestionList, opts Options) (*openapi3.T, error) {
	if list == nil {
		return nil, errors.New("openapi: question list is nil")
	}
	opts = opts.withDefaults(list)

	issue := issueSchema()
	components := openapi3.Schemas{
		AnswersSchema:           answersSchema(list).NewRef(),
		UISchema:                uiSchema().NewRef(),
		IssueSchema:             issue.NewRef(),
		ValidationFailureSchema: failureSchema(componentRef(IssueSchema, issue)).NewRef(),
	}
	ref := func(name string) *openapi3.SchemaRef {
		return componentRef(name, components[name].Value)
	}

	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:       opts.Title,
			Description: list.Description,
			Version:     opts.Version,
		},
		Components: &openapi3.Components{Schemas: components},
	}
	if opts.ServerURL != "" {
		doc.Servers = openapi3.Servers{{URL: opts.ServerURL}}
	}

	doc.Paths = openapi3.NewPaths(
		openapi3.WithPath(opts.BasePath+"/schema", &openapi3.PathItem{Get: &openapi3.Operation{
			OperationID: "getSchema",
			Summary:     "Compiled Draft-7 schema of the answer document",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, jsonResponse("Answer schema", openapi3.NewObjectSchema())),
			),
		}}),
		openapi3.WithPath(opts.BasePath+"/ui-schema", &openapi3.PathItem{Get: &openapi3.Operation{
			OperationID: "getUISchema",
			Summary:     "UI hints keyed by question id",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, jsonResponseRef("UI-hint document", ref(UISchema))),
			),
		}}),
		openapi3.WithPath(opts.BasePath+"/answers", &openapi3.PathItem{Post: &openapi3.Operation{
			OperationID: "submitAnswers",
			Summary:     "Validate an answer document",
			RequestBody: &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithRequired(true).
					WithJSONSchemaRef(ref(AnswersSchema)),
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().WithDescription("Answers accepted"),
				}),
				openapi3.WithStatus(http.StatusBadRequest, jsonResponseRef("Malformed or invalid answers", ref(ValidationFailureSchema))),
			),
		}}),
	)

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate export: %w", err)
	}
	return doc, nil
}

func answersSchema(list *question.QuestionList) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = list.Title
	schema.Description = list.Description
	schema.AdditionalProperties = closed()
	schema.Properties = openapi3.Schemas{}
	for _, q := range list.Questions {
		if q == nil {
			continue
		}
		key := strconv.Itoa(q.QuestionID())
		schema.Properties[key] = openapi3.NewSchemaRef("", question.Visit[*openapi3.Schema](q, schemaBuilder{}))
		if q.IsRequired() {
			schema.Required = append(schema.Required, key)
		}
	}
	return schema
}

type schemaBuilder struct{}

func (schemaBuilder) VisitInteger(q *question.Integer) *openapi3.Schema {
	s := openapi3.NewIntegerSchema()
	heading(s, q.Base)
	if q.Default != nil {
		s.Default = float64(*q.Default)
	}
	if q.Step != nil {
		s.MultipleOf = floatPtr(*q.Step)
	}
	if q.Min != nil {
		s.Min = floatPtr(*q.Min)
	}
	if q.Max != nil {
		s.Max = floatPtr(*q.Max)
	}
	return s
}

func (schemaBuilder) VisitFreeText(q *question.FreeText) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	heading(s, q.Base)
	if q.Default != nil {
		s.Default = *q.Default
	}
	if q.MinLength != nil {
		s.MinLength = uint64(*q.MinLength)
	}
	if q.MaxLength != nil {
		limit := uint64(*q.MaxLength)
		s.MaxLength = &limit
	}
	return s
}

func (schemaBuilder) VisitTrueOrFalse(q *question.TrueOrFalse) *openapi3.Schema {
	s := openapi3.NewBoolSchema()
	heading(s, q.Base)
	if q.Default != nil {
		s.Default = *q.Default
	}
	return s
}

func (schemaBuilder) VisitFixedList(q *question.FixedList) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	heading(s, q.Base)
	for _, item := range q.Items {
		s.Enum = append(s.Enum, item)
	}
	names := make([]any, 0, len(q.ItemNames))
	for _, name := range q.ItemNames {
		names = append(names, name)
	}
	s.Extensions = map[string]any{enumNamesExtension: names}
	return s
}

func (b schemaBuilder) VisitArrayOf(q *question.ArrayOf) *openapi3.Schema {
	s := openapi3.NewArraySchema()
	heading(s, q.Base)
	if q.Question != nil {
		s.Items = openapi3.NewSchemaRef("", question.Visit[*openapi3.Schema](q.Question, b))
	}
	return s
}

func heading(s *openapi3.Schema, base question.Base) {
	s.Title = base.Title
	s.Description = base.Description
}

func uiSchema() *openapi3.Schema {
	hint := openapi3.NewObjectSchema()
	hint.Properties = openapi3.Schemas{
		"placeholder": openapi3.NewStringSchema().NewRef(),
		"ui:widget":   openapi3.NewStringSchema().NewRef(),
		"ui:options":  openapi3.NewObjectSchema().NewRef(),
	}
	hint.AdditionalProperties = closed()

	doc := openapi3.NewObjectSchema()
	doc.AdditionalProperties = openapi3.AdditionalProperties{Schema: hint.NewRef()}
	return doc
}

func issueSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	s.Properties = openapi3.Schemas{
		"path":    openapi3.NewStringSchema().NewRef(),
		"field":   openapi3.NewStringSchema().NewRef(),
		"code":    openapi3.NewStringSchema().NewRef(),
		"message": openapi3.NewStringSchema().NewRef(),
	}
	s.Required = []string{"code", "message"}
	return s
}

func failureSchema(issue *openapi3.SchemaRef) *openapi3.Schema {
	issues := openapi3.NewArraySchema()
	issues.Items = issue

	s := openapi3.NewObjectSchema()
	s.Properties = openapi3.Schemas{
		"message": openapi3.NewStringSchema().NewRef(),
		"errors":  issues.NewRef(),
	}
	s.Required = []string{"message", "errors"}
	return s
}

func jsonResponse(description string, schema *openapi3.Schema) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithJSONSchema(schema),
	}
}

func jsonResponseRef(description string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(schema),
	}
}

// componentRef points at a component while carrying its resolved value, so
// the document validates without a loader pass.
func componentRef(name string, value *openapi3.Schema) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, value)
}

func closed() openapi3.AdditionalProperties {
	no := false
	return openapi3.AdditionalProperties{Has: &no}
}

func floatPtr(v int) *float64 {
	f := float64(v)
	return &f
}
