package qna

import (
	"context"
	"fmt"

	internalLoader "github.com/goliatone/go-qna/internal/definition/loader"
	"github.com/goliatone/go-qna/pkg/definition"
	"github.com/goliatone/go-qna/pkg/question"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...definition.LoaderOption) definition.Loader {
	cfg := definition.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// LoadQuestionList fetches src with loader and parses it into a checked
// question list.
func LoadQuestionList(ctx context.Context, loader definition.Loader, src definition.Source) (*question.QuestionList, error) {
	if loader == nil {
		loader = NewLoader()
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("qna: load %s: %w", src.Location(), err)
	}
	return definition.Parse(doc)
}
