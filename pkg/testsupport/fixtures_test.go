package testsupport_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-qna/pkg/testsupport"
)

func TestFixturesMatchSampleQuestions(t *testing.T) {
	for _, name := range []string{"sample.json", "sample.yaml"} {
		list := testsupport.LoadQuestionList(t, filepath.Join("testdata", name))
		if diff := cmp.Diff(testsupport.SampleQuestions(), list); diff != "" {
			t.Fatalf("%s drifted from SampleQuestions (-want +got):\n%s", name, diff)
		}
	}
}

func TestLoadQuestionListFromPath_RequiresPath(t *testing.T) {
	if _, err := testsupport.LoadQuestionListFromPath(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestNestedArray_Depth(t *testing.T) {
	leaf := testsupport.ZorkQuestions().Questions[0]
	if got := testsupport.NestedArray(3, leaf); got.QuestionID() != 3 {
		t.Fatalf("outermost layer id = %d, want 3", got.QuestionID())
	}
}
