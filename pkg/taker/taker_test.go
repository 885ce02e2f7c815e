package taker_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-qna/pkg/question"
	"github.com/goliatone/go-qna/pkg/taker"
	"github.com/goliatone/go-qna/pkg/testsupport"
	"github.com/goliatone/go-qna/pkg/uischema"
	"github.com/goliatone/go-qna/pkg/validation"
)

type stubDriver struct {
	inputs    []string
	confirms  []bool
	selectIdx []int

	inputPos   int
	confirmPos int
	selectPos  int

	infoMessages []string
	inputsSeen   []taker.InputConfig
	selectsSeen  []taker.SelectConfig
}

func (s *stubDriver) Input(_ context.Context, cfg taker.InputConfig) (string, error) {
	s.inputsSeen = append(s.inputsSeen, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", fmt.Errorf("unexpected input prompt %q", cfg.Message)
	}
	v := s.inputs[s.inputPos]
	s.inputPos++
	return v, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg taker.ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirms) {
		return false, fmt.Errorf("unexpected confirm prompt %q", cfg.Message)
	}
	v := s.confirms[s.confirmPos]
	s.confirmPos++
	return v, nil
}

func (s *stubDriver) Select(_ context.Context, cfg taker.SelectConfig) (int, error) {
	s.selectsSeen = append(s.selectsSeen, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return 0, fmt.Errorf("unexpected select prompt %q", cfg.Message)
	}
	v := s.selectIdx[s.selectPos]
	s.selectPos++
	return v, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestSession_SampleQuestionnaire(t *testing.T) {
	driver := &stubDriver{
		// 1, 8[0], 8[1], 88 (out of range, off step, ok), 3 (skipped)
		inputs: []string{"pizza", "pasta", "soup", "120", "35", "30", ""},
		// 8: add, add another, stop; 222
		confirms: []bool{true, true, false, true},
		// 24 -> bork, 899 radio -> Yes
		selectIdx: []int{1, 0},
	}

	session, err := taker.New(testsupport.SampleQuestions(), taker.WithPromptDriver(driver))
	require.NoError(t, err)

	answers, err := session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"1":   "pizza",
		"8":   []any{"pasta", "soup"},
		"88":  json.Number("30"),
		"222": true,
		"24":  "bork",
		"899": true,
	}, answers)
	assert.Equal(t, []string{
		"Invalid A number: must be at most 100",
		"Invalid A number: must be a multiple of 10",
	}, driver.infoMessages)

	require.Len(t, driver.selectsSeen, 2)
	assert.Equal(t, []string{"Zork", "Bork"}, driver.selectsSeen[0].Options)
	assert.Equal(t, []string{"Yes", "No"}, driver.selectsSeen[1].Options)
	assert.Equal(t, 1, driver.selectsSeen[1].DefaultIndex)
}

func TestSession_FreeTextLengthReprompts(t *testing.T) {
	list := &question.QuestionList{
		Title:       "Lengths",
		Description: "d",
		Questions: []question.Question{
			&question.FreeText{
				Base:      question.Base{ID: 5, Title: "Code", Description: "d", Required: true},
				MinLength: testsupport.Ptr(2),
				MaxLength: testsupport.Ptr(3),
			},
		},
	}
	driver := &stubDriver{inputs: []string{"a", "abcd", "ñññ"}}

	session, err := taker.New(list, taker.WithPromptDriver(driver))
	require.NoError(t, err)
	answers, err := session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ñññ", answers["5"])
	assert.Equal(t, []string{
		"Invalid Code: length must be at least 2",
		"Invalid Code: length must be at most 3",
	}, driver.infoMessages)
}

func TestSession_OptionalQuestionsCanBeSkipped(t *testing.T) {
	list := &question.QuestionList{
		Title:       "Optional",
		Description: "d",
		Questions: []question.Question{
			&question.Integer{Base: question.Base{ID: 1, Title: "Age", Description: "d"}},
			&question.FixedList{
				Base:      question.Base{ID: 2, Title: "Pick", Description: "d"},
				Default:   []string{},
				Items:     []string{"a", "b"},
				ItemNames: []string{"A", "B"},
			},
			&question.ArrayOf{
				Base:     question.Base{ID: 3, Title: "Tags", Description: "d"},
				Question: &question.FreeText{Base: question.Base{ID: 1, Title: "Tag", Description: "d"}},
			},
		},
	}
	driver := &stubDriver{
		inputs:    []string{"  "},
		selectIdx: []int{2},
		confirms:  []bool{false},
	}

	session, err := taker.New(list, taker.WithPromptDriver(driver))
	require.NoError(t, err)
	answers, err := session.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, answers)
	assert.Equal(t, []string{"A", "B", "(skip)"}, driver.selectsSeen[0].Options)
}

func TestSession_PrefillAndHints(t *testing.T) {
	list := testsupport.ZorkQuestions()
	driver := &stubDriver{inputs: []string{"sushi"}, selectIdx: []int{1}}

	session, err := taker.New(list,
		taker.WithPromptDriver(driver),
		taker.WithPrefill(map[string]any{"1": "ramen", "222": true}),
		taker.WithHints(uischema.Document{
			"1":   {Placeholder: "Pizza, sushi & more"},
			"222": {Widget: "select"},
		}),
	)
	require.NoError(t, err)
	answers, err := session.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, driver.inputsSeen, 1)
	assert.Equal(t, "ramen", driver.inputsSeen[0].Default)
	assert.Equal(t, "Pizza, sushi & more", driver.inputsSeen[0].Help)
	assert.Equal(t, 0, driver.selectsSeen[0].DefaultIndex)
	assert.Equal(t, map[string]any{"1": "sushi", "222": false}, answers)
}

type rejectAll struct{}

func (rejectAll) Validate(any) validation.Result {
	return validation.Result{Issues: validation.Issues{{Path: "/1", Code: validation.CodeRequired, Message: "/1: nope"}}}
}

func TestSession_ValidatesCollectedAnswers(t *testing.T) {
	driver := &stubDriver{inputs: []string{"pizza"}, confirms: []bool{true}}

	session, err := taker.New(testsupport.ZorkQuestions(),
		taker.WithPromptDriver(driver),
		taker.WithValidator(rejectAll{}),
	)
	require.NoError(t, err)

	answers, err := session.Run(context.Background())
	require.ErrorIs(t, err, taker.ErrInvalidAnswers)

	var issues validation.Issues
	require.True(t, errors.As(err, &issues))
	assert.Equal(t, "pizza", answers["1"])
}

func TestSession_PropagatesAbort(t *testing.T) {
	session, err := taker.New(testsupport.ZorkQuestions(), taker.WithPromptDriver(&abortDriver{}))
	require.NoError(t, err)

	_, err = session.Run(context.Background())
	assert.ErrorIs(t, err, taker.ErrAborted)
}

func TestNew_RejectsNilList(t *testing.T) {
	_, err := taker.New(nil)
	assert.Error(t, err)
}

type abortDriver struct{ stubDriver }

func (*abortDriver) Input(context.Context, taker.InputConfig) (string, error) {
	return "", taker.ErrAborted
}
