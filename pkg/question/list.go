package question

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"
)

// QuestionList is an ordered questionnaire definition. Treat it as an
// immutable value once decoded; readers may share it across goroutines.
type QuestionList struct {
	Title       string
	Description string
	Questions   []Question
}

// IDs returns the question identifiers in definition order.
func (l *QuestionList) IDs() []int {
	if l == nil {
		return nil
	}
	out := make([]int, 0, len(l.Questions))
	for _, q := range l.Questions {
		if q == nil {
			continue
		}
		out = append(out, q.QuestionID())
	}
	return out
}

// Lookup returns the top-level question with the supplied id.
func (l *QuestionList) Lookup(id int) (Question, bool) {
	if l == nil {
		return nil, false
	}
	for _, q := range l.Questions {
		if q != nil && q.QuestionID() == id {
			return q, true
		}
	}
	return nil, false
}

// DuplicateIDError reports two top-level questions sharing an identifier.
type DuplicateIDError struct {
	ID     int
	First  int
	Second int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate question id %d at questions[%d] and questions[%d]", e.ID, e.First, e.Second)
}

// Check enforces the structural invariants the compiler relies on: unique
// top-level ids, aligned FixedList items/labels, and coherent numeric and
// length bounds.
func (l *QuestionList) Check() error {
	if l == nil {
		return errors.New("question list is nil")
	}
	seen := make(map[int]int, len(l.Questions))
	for idx, q := range l.Questions {
		if q == nil {
			return fmt.Errorf("questions[%d] is nil", idx)
		}
		id := q.QuestionID()
		if first, ok := seen[id]; ok {
			return &DuplicateIDError{ID: id, First: first, Second: idx}
		}
		seen[id] = idx
		if err := Visit[error](q, checker{}); err != nil {
			return fmt.Errorf("questions[%d] (id %d): %w", idx, id, err)
		}
	}
	return nil
}

type checker struct{}

func (checker) VisitInteger(q *Integer) error {
	if q.Step != nil && *q.Step <= 0 {
		return fmt.Errorf("step must be greater than zero, got %d", *q.Step)
	}
	if q.Min != nil && q.Max != nil && *q.Min > *q.Max {
		return fmt.Errorf("min %d exceeds max %d", *q.Min, *q.Max)
	}
	if q.Default != nil {
		d := *q.Default
		switch {
		case q.Min != nil && d < *q.Min:
			return fmt.Errorf("default %d is below min %d", d, *q.Min)
		case q.Max != nil && d > *q.Max:
			return fmt.Errorf("default %d exceeds max %d", d, *q.Max)
		case q.Step != nil && d%*q.Step != 0:
			return fmt.Errorf("default %d is not a multiple of step %d", d, *q.Step)
		}
	}
	return nil
}

func (checker) VisitFreeText(q *FreeText) error {
	if q.MinLength != nil && *q.MinLength < 0 {
		return fmt.Errorf("min_length must not be negative, got %d", *q.MinLength)
	}
	if q.MaxLength != nil && *q.MaxLength < 0 {
		return fmt.Errorf("max_length must not be negative, got %d", *q.MaxLength)
	}
	if q.MinLength != nil && q.MaxLength != nil && *q.MinLength > *q.MaxLength {
		return fmt.Errorf("min_length %d exceeds max_length %d", *q.MinLength, *q.MaxLength)
	}
	if q.Default != nil {
		n := utf8.RuneCountInString(*q.Default)
		switch {
		case q.MinLength != nil && n < *q.MinLength:
			return fmt.Errorf("default is shorter than min_length %d", *q.MinLength)
		case q.MaxLength != nil && n > *q.MaxLength:
			return fmt.Errorf("default is longer than max_length %d", *q.MaxLength)
		}
	}
	return nil
}

func (checker) VisitTrueOrFalse(q *TrueOrFalse) error {
	if w, ok := q.WidgetOf(); ok {
		if _, err := ParseWidget(string(w)); err != nil {
			return err
		}
	}
	return nil
}

func (checker) VisitFixedList(q *FixedList) error {
	if len(q.Items) == 0 {
		return errors.New("items must not be empty")
	}
	if len(q.Items) != len(q.ItemNames) {
		return fmt.Errorf("items and item_names must align: %d items, %d names", len(q.Items), len(q.ItemNames))
	}
	for _, d := range q.Default {
		if !slices.Contains(q.Items, d) {
			return fmt.Errorf("default %q is not one of the items", d)
		}
	}
	return nil
}

func (c checker) VisitArrayOf(q *ArrayOf) error {
	if q.Question == nil {
		return errors.New("array question is missing its element question")
	}
	if err := Visit[error](q.Question, c); err != nil {
		return fmt.Errorf("element: %w", err)
	}
	return nil
}
