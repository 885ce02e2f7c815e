package validation_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-qna/pkg/compiler"
	"github.com/goliatone/go-qna/pkg/testsupport"
	"github.com/goliatone/go-qna/pkg/validation"
)

func pathCodes(issues validation.Issues) []string {
	out := make([]string, 0, len(issues))
	for _, it := range issues {
		out = append(out, it.Path+" "+it.Code)
	}
	sort.Strings(out)
	return out
}

func TestDraft7Validator_MatchesNativeEngine(t *testing.T) {
	root := compiler.Compile(testsupport.SampleQuestions())
	native := validation.NewValidator(root)
	draft7, err := validation.NewDraft7Validator(root)
	require.NoError(t, err)

	payloads := map[string]string{
		"conforming":       `{"1":"pizza","8":["pasta"],"88":30,"222":true,"24":"bork","899":false}`,
		"missing required": `{"8":[],"88":30,"24":"bork","899":false}`,
		"unknown keys":     `{"1":"pizza","8":[],"88":30,"222":true,"24":"bork","899":false,"999":1,"x/y":2}`,
		"constraint mix":   `{"1":"pizza","8":["a",3],"88":105,"222":"yes","24":"gork","899":false}`,
		"beyond int64":     `{"1":"pizza","8":[],"88":9223372036854775808,"222":true,"24":"bork","899":false}`,
	}

	for name, raw := range payloads {
		t.Run(name, func(t *testing.T) {
			value, err := validation.DecodeCandidate([]byte(raw))
			require.NoError(t, err)

			want := native.Validate(value)
			got := draft7.Validate(value)
			assert.Equal(t, want.Valid, got.Valid)
			assert.Equal(t, pathCodes(want.Issues), pathCodes(got.Issues))
		})
	}
}

func TestDraft7Validator_ZorkScenario(t *testing.T) {
	v, err := validation.NewDraft7Validator(compiler.Compile(testsupport.ZorkQuestions()))
	require.NoError(t, err)

	result, err := validation.ValidateJSON(v, []byte(`{"222":true,"999":"x"}`))
	require.NoError(t, err)
	require.False(t, result.Valid)
	assert.Equal(t, []string{"/1 required", "/999 unknown_key"}, pathCodes(result.Issues))
	for _, msg := range result.Messages() {
		assert.Regexp(t, `^/[0-9]+: `, msg)
	}
}

func TestNewDraft7Validator_RejectsNilRoot(t *testing.T) {
	_, err := validation.NewDraft7Validator(nil)
	assert.Error(t, err)
}
