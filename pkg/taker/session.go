package taker

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-qna/pkg/compiler"
	"github.com/goliatone/go-qna/pkg/question"
	"github.com/goliatone/go-qna/pkg/uischema"
	"github.com/goliatone/go-qna/pkg/validation"
)

// Session asks every question of a list in definition order.
type Session struct {
	list      *question.QuestionList
	driver    PromptDriver
	validator validation.Validator
	hints     uischema.Document
	prefill   map[string]any
}

// New constructs a session for list. Without options it prompts through
// survey and validates with the native engine.
func New(list *question.QuestionList, options ...Option) (*Session, error) {
	if list == nil {
		return nil, errors.New("taker: question list is nil")
	}
	s := &Session{list: list}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	if s.validator == nil {
		s.validator = validation.NewValidator(compiler.Compile(list))
	}
	return s, nil
}

// Run prompts for each question and returns the answer document keyed by
// question id. Skipped optional questions are absent from the result. When
// the document fails validation it is returned together with an error
// matching ErrInvalidAnswers.
func (s *Session) Run(ctx context.Context) (map[string]any, error) {
	state := NewState(nil)
	builder := promptBuilder{driver: s.driver}

	for _, q := range s.list.Questions {
		if q == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := compiler.Key(q)
		value, skipped, err := question.Visit[prompt](q, builder)(ctx, s.frameFor(q, key))
		if err != nil {
			return nil, err
		}
		if skipped {
			continue
		}
		state.Set(key, value)
	}

	answers := state.Values()
	if err := s.validator.Validate(answers).Err(); err != nil {
		return answers, fmt.Errorf("%w: %w", ErrInvalidAnswers, err)
	}
	return answers, nil
}

func (s *Session) frameFor(q question.Question, key string) frame {
	base := q.Header()
	f := frame{
		label:    base.Title,
		help:     base.Description,
		optional: !base.Required,
	}
	if hint, ok := s.hints[key]; ok {
		if hint.Placeholder != "" {
			f.help = hint.Placeholder
		}
		f.widget = hint.Widget
	}
	if v, ok := s.prefill[key]; ok {
		f.prefill, f.hasPrefill = v, true
	}
	return f
}
