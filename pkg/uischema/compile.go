package uischema

import (
	"strconv"

	"github.com/goliatone/go-qna/pkg/question"
)

// Compile builds the hint document for list. Every top-level question gets an
// entry; only a TrueOrFalse with a configured widget yields a non-empty hint.
func Compile(list *question.QuestionList) Document {
	doc := Document{}
	if list == nil {
		return doc
	}
	for _, q := range list.Questions {
		if q == nil {
			continue
		}
		doc[strconv.Itoa(q.QuestionID())] = question.Visit[Hint](q, hintBuilder{})
	}
	return doc
}

type hintBuilder struct{}

func (hintBuilder) VisitInteger(*question.Integer) Hint     { return Hint{} }
func (hintBuilder) VisitFreeText(*question.FreeText) Hint   { return Hint{} }
func (hintBuilder) VisitFixedList(*question.FixedList) Hint { return Hint{} }
func (hintBuilder) VisitArrayOf(*question.ArrayOf) Hint     { return Hint{} }

func (hintBuilder) VisitTrueOrFalse(q *question.TrueOrFalse) Hint {
	if w, ok := q.WidgetOf(); ok {
		return Hint{Widget: w.String()}
	}
	return Hint{}
}
