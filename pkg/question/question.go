package question

import (
	"fmt"
	"strings"
)

// Kind identifies a question variant. The values double as the variant tags
// used by the definition wire format.
type Kind string

const (
	KindInteger     Kind = "Integer"
	KindFreeText    Kind = "FreeText"
	KindTrueOrFalse Kind = "TrueOrFalse"
	KindFixedList   Kind = "FixedList"
	KindArrayOf     Kind = "ArrayOf"
)

// Kinds lists every supported variant in declaration order.
func Kinds() []Kind {
	return []Kind{KindInteger, KindFreeText, KindTrueOrFalse, KindFixedList, KindArrayOf}
}

// Question is one typed, identifiable item in a questionnaire. The interface
// is sealed; the concrete variants are the pointer types declared in this
// package.
type Question interface {
	QuestionID() int
	IsRequired() bool
	Kind() Kind
	Header() Base

	isQuestion()
}

// Base carries the fields shared by every variant.
type Base struct {
	ID          int
	Title       string
	Description string
	Required    bool
}

// QuestionID reports the question identifier.
func (b Base) QuestionID() int { return b.ID }

// IsRequired reports whether an answer must be supplied.
func (b Base) IsRequired() bool { return b.Required }

// Header returns the shared fields.
func (b Base) Header() Base { return b }

// Integer asks for a whole number, optionally bounded and stepped.
type Integer struct {
	Base
	Default *int
	Step    *int
	Min     *int
	Max     *int
}

// FreeText asks for an arbitrary string.
type FreeText struct {
	Base
	Default   *string
	MinLength *int
	MaxLength *int
}

// TrueOrFalse asks a yes/no question.
type TrueOrFalse struct {
	Base
	Default *bool
	UI      *TrueOrFalseUI
}

// TrueOrFalseUI holds optional rendering metadata for TrueOrFalse.
type TrueOrFalseUI struct {
	Widget *Widget
}

// FixedList asks the user to pick from a fixed set of values. Items and
// ItemNames are parallel: Items are machine values, ItemNames display labels.
type FixedList struct {
	Base
	Default   []string
	Items     []string
	ItemNames []string
}

// ArrayOf asks for a repeated answer whose element is itself a question.
type ArrayOf struct {
	Base
	Question Question
}

func (*Integer) isQuestion()     {}
func (*FreeText) isQuestion()    {}
func (*TrueOrFalse) isQuestion() {}
func (*FixedList) isQuestion()   {}
func (*ArrayOf) isQuestion()     {}

func (*Integer) Kind() Kind     { return KindInteger }
func (*FreeText) Kind() Kind    { return KindFreeText }
func (*TrueOrFalse) Kind() Kind { return KindTrueOrFalse }
func (*FixedList) Kind() Kind   { return KindFixedList }
func (*ArrayOf) Kind() Kind     { return KindArrayOf }

// Widget selects how a TrueOrFalse question is rendered.
type Widget string

const (
	WidgetRadio  Widget = "radio"
	WidgetSelect Widget = "select"
)

// ParseWidget converts the wire representation into a Widget.
func ParseWidget(raw string) (Widget, error) {
	switch w := Widget(strings.TrimSpace(raw)); w {
	case WidgetRadio, WidgetSelect:
		return w, nil
	default:
		return "", fmt.Errorf("unknown widget %q (expected %q or %q)", raw, WidgetRadio, WidgetSelect)
	}
}

// String implements fmt.Stringer.
func (w Widget) String() string { return string(w) }

// WidgetOf returns the widget configured on a TrueOrFalse question, if any.
func (q *TrueOrFalse) WidgetOf() (Widget, bool) {
	if q == nil || q.UI == nil || q.UI.Widget == nil {
		return "", false
	}
	return *q.UI.Widget, true
}

// Visitor maps each question variant to a value of type T. Implementations
// must handle every variant, which keeps projections total.
type Visitor[T any] interface {
	VisitInteger(q *Integer) T
	VisitFreeText(q *FreeText) T
	VisitTrueOrFalse(q *TrueOrFalse) T
	VisitFixedList(q *FixedList) T
	VisitArrayOf(q *ArrayOf) T
}

// Visit dispatches q to the matching Visitor method.
func Visit[T any](q Question, v Visitor[T]) T {
	switch typed := q.(type) {
	case *Integer:
		return v.VisitInteger(typed)
	case *FreeText:
		return v.VisitFreeText(typed)
	case *TrueOrFalse:
		return v.VisitTrueOrFalse(typed)
	case *FixedList:
		return v.VisitFixedList(typed)
	case *ArrayOf:
		return v.VisitArrayOf(typed)
	}
	// Unreachable for non-nil questions: the interface is sealed.
	panic(fmt.Sprintf("question: unsupported variant %T", q))
}

// Depth reports the ArrayOf nesting depth of q; scalar variants have depth 0.
func Depth(q Question) int {
	depth := 0
	for {
		arr, ok := q.(*ArrayOf)
		if !ok || arr.Question == nil {
			return depth
		}
		depth++
		q = arr.Question
	}
}
