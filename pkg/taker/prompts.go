package taker

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-qna/pkg/question"
)

const (
	yesOption  = "Yes"
	noOption   = "No"
	skipOption = "(skip)"
)

// frame carries the per-prompt presentation of a question.
type frame struct {
	label      string
	help       string
	widget     string
	optional   bool
	prefill    any
	hasPrefill bool
}

// prompt asks one question. skipped is true when an optional question was
// left unanswered.
type prompt func(ctx context.Context, f frame) (value any, skipped bool, err error)

type promptBuilder struct {
	driver PromptDriver
}

func (b promptBuilder) VisitInteger(q *question.Integer) prompt {
	return func(ctx context.Context, f frame) (any, bool, error) {
		def := ""
		if n, ok := asInt(f.prefill); f.hasPrefill && ok {
			def = strconv.Itoa(n)
		} else if q.Default != nil {
			def = strconv.Itoa(*q.Default)
		}
		for {
			raw, err := b.driver.Input(ctx, InputConfig{Message: f.label, Default: def, Help: f.help})
			if err != nil {
				return nil, false, err
			}
			raw = strings.TrimSpace(raw)
			if raw == "" && f.optional {
				return nil, true, nil
			}
			n, err := parseInteger(q, raw)
			if err != nil {
				if err := b.invalid(ctx, f, err); err != nil {
					return nil, false, err
				}
				continue
			}
			return json.Number(strconv.Itoa(n)), false, nil
		}
	}
}

func (b promptBuilder) VisitFreeText(q *question.FreeText) prompt {
	return func(ctx context.Context, f frame) (any, bool, error) {
		def := ""
		if s, ok := f.prefill.(string); f.hasPrefill && ok {
			def = s
		} else if q.Default != nil {
			def = *q.Default
		}
		for {
			raw, err := b.driver.Input(ctx, InputConfig{Message: f.label, Default: def, Help: f.help})
			if err != nil {
				return nil, false, err
			}
			if strings.TrimSpace(raw) == "" && f.optional {
				return nil, true, nil
			}
			if err := checkLength(q, raw); err != nil {
				if err := b.invalid(ctx, f, err); err != nil {
					return nil, false, err
				}
				continue
			}
			return raw, false, nil
		}
	}
}

func (b promptBuilder) VisitTrueOrFalse(q *question.TrueOrFalse) prompt {
	return func(ctx context.Context, f frame) (any, bool, error) {
		def := false
		if v, ok := f.prefill.(bool); f.hasPrefill && ok {
			def = v
		} else if q.Default != nil {
			def = *q.Default
		}

		widget := f.widget
		if w, ok := q.WidgetOf(); ok {
			widget = w.String()
		}
		if widget == "" {
			v, err := b.driver.Confirm(ctx, ConfirmConfig{Message: f.label, Default: def, Help: f.help})
			if err != nil {
				return nil, false, err
			}
			return v, false, nil
		}

		defaultIndex := 1
		if def {
			defaultIndex = 0
		}
		idx, err := b.driver.Select(ctx, SelectConfig{
			Message:      f.label,
			Options:      []string{yesOption, noOption},
			DefaultIndex: defaultIndex,
			Help:         f.help,
		})
		if err != nil {
			return nil, false, err
		}
		switch idx {
		case 0:
			return true, false, nil
		case 1:
			return false, false, nil
		}
		return nil, false, fmt.Errorf("taker: selection %d out of range for %q", idx, f.label)
	}
}

func (b promptBuilder) VisitFixedList(q *question.FixedList) prompt {
	return func(ctx context.Context, f frame) (any, bool, error) {
		options := append([]string(nil), q.ItemNames...)
		if f.optional {
			options = append(options, skipOption)
		}

		defaultIndex := 0
		if v, ok := f.prefill.(string); f.hasPrefill && ok {
			if i := indexOf(q.Items, v); i >= 0 {
				defaultIndex = i
			}
		} else if len(q.Default) > 0 {
			if i := indexOf(q.Items, q.Default[0]); i >= 0 {
				defaultIndex = i
			}
		}

		idx, err := b.driver.Select(ctx, SelectConfig{
			Message:      f.label,
			Options:      options,
			DefaultIndex: defaultIndex,
			Help:         f.help,
		})
		if err != nil {
			return nil, false, err
		}
		if f.optional && idx == len(q.Items) {
			return nil, true, nil
		}
		if idx < 0 || idx >= len(q.Items) {
			return nil, false, fmt.Errorf("taker: selection %d out of range for %q", idx, f.label)
		}
		return q.Items[idx], false, nil
	}
}

func (b promptBuilder) VisitArrayOf(q *question.ArrayOf) prompt {
	var inner prompt
	if q.Question != nil {
		inner = question.Visit[prompt](q.Question, b)
	}
	return func(ctx context.Context, f frame) (any, bool, error) {
		if inner == nil {
			return nil, false, fmt.Errorf("taker: %q has no element question", f.label)
		}
		element := q.Question.Header()
		items := []any{}
		for {
			message := fmt.Sprintf("Add an answer to %q?", f.label)
			if len(items) > 0 {
				message = "Add another?"
			}
			more, err := b.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: len(items) == 0, Help: f.help})
			if err != nil {
				return nil, false, err
			}
			if !more {
				break
			}
			value, _, err := inner(ctx, frame{
				label: fmt.Sprintf("%s [%d]", element.Title, len(items)+1),
				help:  element.Description,
			})
			if err != nil {
				return nil, false, err
			}
			items = append(items, value)
		}
		if len(items) == 0 && f.optional {
			return nil, true, nil
		}
		return items, false, nil
	}
}

func (b promptBuilder) invalid(ctx context.Context, f frame, err error) error {
	return b.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", f.label, err))
}

func parseInteger(q *question.Integer, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", raw)
	}
	if q.Min != nil && n < *q.Min {
		return 0, fmt.Errorf("must be at least %d", *q.Min)
	}
	if q.Max != nil && n > *q.Max {
		return 0, fmt.Errorf("must be at most %d", *q.Max)
	}
	if q.Step != nil && *q.Step > 0 && n%*q.Step != 0 {
		return 0, fmt.Errorf("must be a multiple of %d", *q.Step)
	}
	return n, nil
}

func checkLength(q *question.FreeText, raw string) error {
	length := utf8.RuneCountInString(raw)
	if q.MinLength != nil && length < *q.MinLength {
		return fmt.Errorf("length must be at least %d", *q.MinLength)
	}
	if q.MaxLength != nil && length > *q.MaxLength {
		return fmt.Errorf("length must be at most %d", *q.MaxLength)
	}
	return nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < math.MaxInt32 {
			return int(n), true
		}
	}
	return 0, false
}
