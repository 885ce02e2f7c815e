package validation

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"

	santhosh "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-qna/pkg/jsonschema"
)

const draft7ResourceURL = "answers.json"

type draft7Validator struct {
	schema *santhosh.Schema
}

// NewDraft7Validator compiles the serialized document with a general Draft-7
// engine. It reports the same issue codes as NewValidator and is used to
// cross-check the built-in validator.
func NewDraft7Validator(root *jsonschema.ObjectNode) (Validator, error) {
	if root == nil {
		return nil, errors.New("validation: schema root is nil")
	}
	raw, err := jsonschema.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("validation: encode schema: %w", err)
	}

	compiler := santhosh.NewCompiler()
	compiler.Draft = santhosh.Draft7
	if err := compiler.AddResource(draft7ResourceURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("validation: add schema resource: %w", err)
	}
	schema, err := compiler.Compile(draft7ResourceURL)
	if err != nil {
		return nil, fmt.Errorf("validation: compile schema: %w", err)
	}
	return &draft7Validator{schema: schema}, nil
}

func (v *draft7Validator) Validate(value any) Result {
	err := v.schema.Validate(value)
	if err == nil {
		return newResult(nil)
	}

	var verr *santhosh.ValidationError
	if !errors.As(err, &verr) {
		return newResult(Issues{newIssue("", CodeInvalidType, "%v", err)})
	}

	var issues Issues
	for _, leaf := range leaves(verr, nil) {
		issues = append(issues, issuesFromLeaf(leaf)...)
	}
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Code < issues[j].Code
	})
	return newResult(issues)
}

func leaves(err *santhosh.ValidationError, out []*santhosh.ValidationError) []*santhosh.ValidationError {
	if len(err.Causes) == 0 {
		return append(out, err)
	}
	for _, cause := range err.Causes {
		out = leaves(cause, out)
	}
	return out
}

var quotedName = regexp.MustCompile(`'([^']*)'`)

var keywordCodes = map[string]string{
	"type":                 CodeInvalidType,
	"enum":                 CodeInvalidEnum,
	"minimum":              CodeTooSmall,
	"maximum":              CodeTooBig,
	"minLength":            CodeTooShort,
	"maxLength":            CodeTooLong,
	"multipleOf":           CodeNotMultipleOf,
	"required":             CodeRequired,
	"additionalProperties": CodeUnknownKey,
	"false":                CodeUnknownKey,
}

// issuesFromLeaf maps one engine error onto issues. Object-level keywords
// name several properties in a single message, so they are split into one
// issue per property to line up with the built-in validator.
func issuesFromLeaf(leaf *santhosh.ValidationError) Issues {
	keyword := path.Base(leaf.KeywordLocation)
	code, ok := keywordCodes[keyword]
	if !ok {
		code = CodeInvalidType
	}

	switch code {
	case CodeRequired, CodeUnknownKey:
		matches := quotedName.FindAllStringSubmatch(leaf.Message, -1)
		if len(matches) == 0 {
			break
		}
		problem := "required property is missing"
		if code == CodeUnknownKey {
			problem = "property is not allowed"
		}
		out := make(Issues, 0, len(matches))
		for _, m := range matches {
			out = append(out, newIssue(appendPointer(leaf.InstanceLocation, m[1]), code, "%s", problem))
		}
		return out
	}
	return Issues{newIssue(leaf.InstanceLocation, code, "%s", leaf.Message)}
}
