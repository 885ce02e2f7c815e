package validation_test

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-qna/pkg/compiler"
	"github.com/goliatone/go-qna/pkg/question"
	"github.com/goliatone/go-qna/pkg/testsupport"
	"github.com/goliatone/go-qna/pkg/validation"
)

func sampleValidator(t *testing.T) validation.Validator {
	t.Helper()
	return validation.NewValidator(compiler.Compile(testsupport.SampleQuestions()))
}

func validateRaw(t *testing.T, v validation.Validator, raw string) validation.Result {
	t.Helper()
	result, err := validation.ValidateJSON(v, []byte(raw))
	require.NoError(t, err)
	return result
}

func TestValidate_ZorkScenario(t *testing.T) {
	v := validation.NewValidator(compiler.Compile(testsupport.ZorkQuestions()))

	ok := validateRaw(t, v, `{"1":"pizza","222":true}`)
	assert.True(t, ok.Valid)
	assert.Empty(t, ok.Issues)
	assert.NoError(t, ok.Err())

	missing := validateRaw(t, v, `{"222":true}`)
	require.False(t, missing.Valid)
	require.Len(t, missing.Issues, 1)
	assert.Equal(t, "/1", missing.Issues[0].Path)
	assert.Equal(t, validation.CodeRequired, missing.Issues[0].Code)
	assert.Contains(t, missing.Issues[0].Message, "1")

	extra := validateRaw(t, v, `{"1":"pizza","222":true,"999":"x"}`)
	require.False(t, extra.Valid)
	require.Len(t, extra.Issues, 1)
	assert.Equal(t, validation.CodeUnknownKey, extra.Issues[0].Code)
	assert.Contains(t, extra.Issues[0].Message, "999")
}

func TestValidate_SampleAnswersConform(t *testing.T) {
	result := sampleValidator(t).Validate(testsupport.SampleAnswers())
	assert.True(t, result.Valid, "issues: %v", result.Messages())
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	raw := `{
		"1": "",
		"8": ["soup", 7],
		"88": 105,
		"222": "yes",
		"24": "gork",
		"3": "",
		"899": true,
		"1000": null
	}`
	result := validateRaw(t, sampleValidator(t), raw)
	require.False(t, result.Valid)

	type pathCode struct{ Path, Code string }
	var got []pathCode
	for _, it := range result.Issues {
		got = append(got, pathCode{it.Path, it.Code})
	}
	assert.Equal(t, []pathCode{
		{"/1000", validation.CodeUnknownKey},
		{"/222", validation.CodeInvalidType},
		{"/24", validation.CodeInvalidEnum},
		{"/8/1", validation.CodeInvalidType},
		{"/88", validation.CodeTooBig},
		{"/88", validation.CodeNotMultipleOf},
	}, got)

	for _, msg := range result.Messages() {
		assert.Regexp(t, `^/[0-9/]+: `, msg)
	}
	assert.Equal(t, "8.1", result.Issues[3].Field)
}

func TestValidate_IntegerBoundsAndSteps(t *testing.T) {
	v := sampleValidator(t)

	cases := []struct {
		name  string
		value any
		codes []string
	}{
		{name: "in range", value: json.Number("40")},
		{name: "integral float", value: json.Number("40.0")},
		{name: "below minimum", value: json.Number("-10"), codes: []string{validation.CodeTooSmall}},
		{name: "off step", value: json.Number("15"), codes: []string{validation.CodeNotMultipleOf}},
		{name: "fraction", value: json.Number("12.5"), codes: []string{validation.CodeInvalidType}},
		{name: "beyond int64", value: json.Number("9223372036854775808"), codes: []string{validation.CodeTooBig, validation.CodeNotMultipleOf}},
		{name: "exponent beyond int64", value: json.Number("1e30"), codes: []string{validation.CodeTooBig}},
		{name: "negative beyond int64", value: json.Number("-9223372036854775810"), codes: []string{validation.CodeTooSmall}},
		{name: "boolean", value: true, codes: []string{validation.CodeInvalidType}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			answers := testsupport.SampleAnswers()
			answers["88"] = tc.value
			result := v.Validate(answers)
			assert.Equal(t, len(tc.codes) == 0, result.Valid)
			if len(tc.codes) == 0 {
				assert.Empty(t, result.Issues)
				return
			}
			assert.Equal(t, tc.codes, result.Issues.Codes())
		})
	}
}

func TestValidate_StringLengthCountsCharacters(t *testing.T) {
	root := compiler.Compile(&question.QuestionList{Questions: []question.Question{
		&question.FreeText{
			Base:      question.Base{ID: 1, Required: true},
			MinLength: testsupport.Ptr(2),
			MaxLength: testsupport.Ptr(3),
		},
	}})
	v := validation.NewValidator(root)

	assert.True(t, validateRaw(t, v, `{"1":"héé"}`).Valid)
	assert.Equal(t, []string{validation.CodeTooShort}, validateRaw(t, v, `{"1":"é"}`).Issues.Codes())
	assert.Equal(t, []string{validation.CodeTooLong}, validateRaw(t, v, `{"1":"abcd"}`).Issues.Codes())
}

func TestValidate_NestedArrays(t *testing.T) {
	leaf := &question.Integer{Base: question.Base{ID: 9}, Max: testsupport.Ptr(3)}
	nested := testsupport.NestedArray(2, leaf)
	root := compiler.Compile(&question.QuestionList{Questions: []question.Question{nested}})
	v := validation.NewValidator(root)

	key := compiler.Key(nested)
	result := validateRaw(t, v, `{"`+key+`":[[1,2],[3,4],"x"]}`)
	require.Len(t, result.Issues, 2)
	assert.Equal(t, "/"+key+"/1/1", result.Issues[0].Path)
	assert.Equal(t, validation.CodeTooBig, result.Issues[0].Code)
	assert.Equal(t, "/"+key+"/2", result.Issues[1].Path)
	assert.Equal(t, validation.CodeInvalidType, result.Issues[1].Code)
}

func TestValidate_NonObjectRoot(t *testing.T) {
	result := validateRaw(t, sampleValidator(t), `[1,2]`)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "", result.Issues[0].Path)
	assert.Equal(t, "/: expected object, got array", result.Issues[0].Message)
}

func TestValidateJSON_MalformedInput(t *testing.T) {
	for _, raw := range []string{"", "   ", `{"1":`, `{"1":"a"} trailing`, `{"1":"a"}{}`} {
		_, err := validation.ValidateJSON(sampleValidator(t), []byte(raw))
		require.Error(t, err, "payload %q", raw)
		assert.True(t, errors.Is(err, validation.ErrMalformedInput), "payload %q: %v", raw, err)

		var malformed *validation.MalformedInputError
		assert.True(t, errors.As(err, &malformed))
	}
}

func TestValidate_WideIntegerMessage(t *testing.T) {
	answers := testsupport.SampleAnswers()
	answers["88"] = json.Number("9223372036854775808")
	result := sampleValidator(t).Validate(answers)
	require.Len(t, result.Issues, 2)
	assert.Equal(t, "/88", result.Issues[0].Path)
	assert.Equal(t, "/88: must be at most 100, got 9223372036854775808", result.Issues[0].Message)
	assert.Equal(t, "/88: must be a multiple of 10, got 9223372036854775808", result.Issues[1].Message)
}

func TestValidateJSON_InvalidUTF8(t *testing.T) {
	_, err := validation.ValidateJSON(sampleValidator(t), []byte("{\"1\":\"\xff\"}"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrMalformedInput))
	assert.Contains(t, err.Error(), "invalid UTF-8 in payload")
}

func TestIssuesError(t *testing.T) {
	result := validateRaw(t, validation.NewValidator(compiler.Compile(testsupport.ZorkQuestions())), `{"7":1,"8":2,"9":3}`)
	require.Len(t, result.Issues, 5)

	err := result.Err()
	require.Error(t, err)
	var issues validation.Issues
	require.True(t, errors.As(err, &issues))
	assert.Contains(t, err.Error(), "/1: required property is missing")
	assert.Contains(t, err.Error(), "(total 5)")
}
