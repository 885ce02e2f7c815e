package definition

import (
	"fmt"

	"github.com/goliatone/go-qna/pkg/question"
)

// Parse decodes a document into a checked question list. Decode failures keep
// their *question.DecodeError for errors.As.
func Parse(doc Document) (*question.QuestionList, error) {
	var (
		list *question.QuestionList
		err  error
	)
	switch doc.Format() {
	case FormatJSON:
		list, err = question.DecodeJSON(doc.raw)
	default:
		list, err = question.DecodeYAML(doc.raw)
	}
	if err != nil {
		return nil, fmt.Errorf("definition: parse %s: %w", doc.Location(), err)
	}
	return list, nil
}
