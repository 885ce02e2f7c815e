package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-qna/pkg/question"
)

// Ptr returns a pointer to v. Fixtures use it for optional model fields.
func Ptr[T any](v T) *T {
	return &v
}

// ZorkQuestions returns the minimal scenario list: a required FreeText with
// id 1 and a required TrueOrFalse with id 222.
func ZorkQuestions() *question.QuestionList {
	return &question.QuestionList{
		Title:       "Zork",
		Description: "Title zoek description",
		Questions: []question.Question{
			&question.FreeText{
				Base: question.Base{
					ID:          1,
					Title:       "What is your favourite food?",
					Description: "Tell be about your food preferences",
					Required:    true,
				},
				Default:   Ptr("Ice"),
				MinLength: Ptr(0),
				MaxLength: Ptr(64),
			},
			&question.TrueOrFalse{
				Base: question.Base{
					ID:          222,
					Title:       "Some T/F 1",
					Description: "Some T/f",
					Required:    true,
				},
				Default: Ptr(false),
			},
		},
	}
}

// SampleQuestions returns a questionnaire exercising every variant. Callers
// receive a fresh value on every call so tests never share state.
func SampleQuestions() *question.QuestionList {
	food := func(id int) *question.FreeText {
		return &question.FreeText{
			Base: question.Base{
				ID:          id,
				Title:       "What is your favourite food?",
				Description: "Tell be about your food preferences",
				Required:    true,
			},
			Default:   Ptr("Ice"),
			MinLength: Ptr(0),
			MaxLength: Ptr(64),
		}
	}

	return &question.QuestionList{
		Title:       "Zork",
		Description: "Title zoek description",
		Questions: []question.Question{
			food(1),
			&question.ArrayOf{
				Base: question.Base{
					ID:          8,
					Title:       "What are your favourite foods?",
					Description: "Tell be about your food preferences",
					Required:    true,
				},
				Question: food(1),
			},
			&question.Integer{
				Base: question.Base{
					ID:          88,
					Title:       "A number",
					Description: "Some number",
					Required:    true,
				},
				Default: Ptr(10),
				Step:    Ptr(10),
				Min:     Ptr(0),
				Max:     Ptr(100),
			},
			&question.TrueOrFalse{
				Base: question.Base{
					ID:          222,
					Title:       "Some T/F 1",
					Description: "Some T/f",
					Required:    true,
				},
				Default: Ptr(false),
			},
			&question.FixedList{
				Base: question.Base{
					ID:          24,
					Title:       "Zork and or Bork?",
					Description: "Some T/f",
					Required:    true,
				},
				Default:   []string{},
				Items:     []string{"zork", "bork"},
				ItemNames: []string{"Zork", "Bork"},
			},
			&question.FreeText{
				Base: question.Base{
					ID:          3,
					Title:       "Some title 2",
					Description: "Some 2 desc",
					Required:    false,
				},
				MinLength: Ptr(0),
				MaxLength: Ptr(64),
			},
			&question.TrueOrFalse{
				Base: question.Base{
					ID:          899,
					Title:       "I have read the terms and conditions",
					Description: "Some T/f",
					Required:    true,
				},
				Default: Ptr(false),
				UI:      &question.TrueOrFalseUI{Widget: Ptr(question.WidgetRadio)},
			},
		},
	}
}

// SampleAnswers returns an answer document that conforms to SampleQuestions.
func SampleAnswers() map[string]any {
	return map[string]any{
		"1":   "pizza",
		"8":   []any{"pasta", "soup"},
		"88":  json.Number("30"),
		"222": true,
		"24":  "bork",
		"899": true,
	}
}

// NestedArray wraps leaf in depth ArrayOf layers. Layer ids count down from
// depth so each level is distinguishable.
func NestedArray(depth int, leaf question.Question) question.Question {
	q := leaf
	for level := 1; level <= depth; level++ {
		q = &question.ArrayOf{
			Base: question.Base{
				ID:          level,
				Title:       fmt.Sprintf("level %d", level),
				Description: "nested",
				Required:    true,
			},
			Question: q,
		}
	}
	return q
}

// LoadQuestionList decodes a JSON or YAML fixture, failing the test on error.
func LoadQuestionList(t *testing.T, path string) *question.QuestionList {
	t.Helper()

	list, err := LoadQuestionListFromPath(path)
	if err != nil {
		t.Fatalf("load question list: %v", err)
	}
	return list
}

// LoadQuestionListFromPath decodes a fixture without requiring testing.T so
// callers can wire fixtures in setup functions.
func LoadQuestionListFromPath(path string) (*question.QuestionList, error) {
	if path == "" {
		return nil, errors.New("testsupport: question list path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read question list: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return question.DecodeYAML(data)
	default:
		return question.DecodeJSON(data)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
