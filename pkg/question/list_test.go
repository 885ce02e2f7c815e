package question

import (
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestQuestionListCheck(t *testing.T) {
	cases := []struct {
		name    string
		q       Question
		wantErr string
	}{
		{
			name:    "step must be positive",
			q:       &Integer{Base: Base{ID: 1}, Step: intPtr(0)},
			wantErr: "step must be greater than zero",
		},
		{
			name:    "min above max",
			q:       &Integer{Base: Base{ID: 1}, Min: intPtr(10), Max: intPtr(1)},
			wantErr: "min 10 exceeds max 1",
		},
		{
			name:    "negative length",
			q:       &FreeText{Base: Base{ID: 1}, MinLength: intPtr(-1)},
			wantErr: "min_length must not be negative",
		},
		{
			name:    "misaligned labels",
			q:       &FixedList{Base: Base{ID: 1}, Items: []string{"a", "b"}, ItemNames: []string{"A"}},
			wantErr: "2 items, 1 names",
		},
		{
			name:    "empty items",
			q:       &FixedList{Base: Base{ID: 1}},
			wantErr: "items must not be empty",
		},
		{
			name:    "nested element checked",
			q:       &ArrayOf{Base: Base{ID: 1}, Question: &Integer{Base: Base{ID: 2}, Step: intPtr(-5)}},
			wantErr: "element: step must be greater than zero",
		},
		{
			name:    "integer default above max",
			q:       &Integer{Base: Base{ID: 1}, Default: intPtr(500), Max: intPtr(10)},
			wantErr: "default 500 exceeds max 10",
		},
		{
			name:    "integer default below min",
			q:       &Integer{Base: Base{ID: 1}, Default: intPtr(-1), Min: intPtr(0)},
			wantErr: "default -1 is below min 0",
		},
		{
			name:    "integer default off step",
			q:       &Integer{Base: Base{ID: 1}, Default: intPtr(15), Step: intPtr(10)},
			wantErr: "not a multiple of step 10",
		},
		{
			name:    "text default too long",
			q:       &FreeText{Base: Base{ID: 1}, Default: strPtr("ñandú"), MaxLength: intPtr(4)},
			wantErr: "longer than max_length 4",
		},
		{
			name:    "text default too short",
			q:       &FreeText{Base: Base{ID: 1}, Default: strPtr(""), MinLength: intPtr(1)},
			wantErr: "shorter than min_length 1",
		},
		{
			name:    "fixed list default outside items",
			q:       &FixedList{Base: Base{ID: 1}, Default: []string{"nope"}, Items: []string{"a"}, ItemNames: []string{"A"}},
			wantErr: `default "nope" is not one of the items`,
		},
		{
			name:    "array without element",
			q:       &ArrayOf{Base: Base{ID: 1}},
			wantErr: "missing its element question",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			list := &QuestionList{Questions: []Question{tc.q}}
			err := list.Check()
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestQuestionListAccessors(t *testing.T) {
	widget := WidgetSelect
	list := &QuestionList{Questions: []Question{
		&FreeText{Base: Base{ID: 5, Required: true}},
		&TrueOrFalse{Base: Base{ID: 9}, UI: &TrueOrFalseUI{Widget: &widget}},
	}}

	if err := list.Check(); err != nil {
		t.Fatalf("check: %v", err)
	}
	ids := list.IDs()
	if len(ids) != 2 || ids[0] != 5 || ids[1] != 9 {
		t.Fatalf("unexpected ids %v", ids)
	}
	q, ok := list.Lookup(9)
	if !ok || q.Kind() != KindTrueOrFalse || q.IsRequired() {
		t.Fatalf("unexpected lookup result %+v (ok=%v)", q, ok)
	}
	if w, ok := q.(*TrueOrFalse).WidgetOf(); !ok || w != WidgetSelect {
		t.Fatalf("expected select widget, got %q", w)
	}
	if _, ok := list.Lookup(404); ok {
		t.Fatalf("expected lookup miss")
	}
}

type kindNamer struct{}

func (kindNamer) VisitInteger(*Integer) string         { return "integer" }
func (kindNamer) VisitFreeText(*FreeText) string       { return "text" }
func (kindNamer) VisitTrueOrFalse(*TrueOrFalse) string { return "bool" }
func (kindNamer) VisitFixedList(*FixedList) string     { return "list" }
func (kindNamer) VisitArrayOf(*ArrayOf) string         { return "array" }

func TestVisitDispatchesEveryVariant(t *testing.T) {
	questions := map[string]Question{
		"integer": &Integer{},
		"text":    &FreeText{},
		"bool":    &TrueOrFalse{},
		"list":    &FixedList{},
		"array":   &ArrayOf{},
	}
	for want, q := range questions {
		if got := Visit[string](q, kindNamer{}); got != want {
			t.Fatalf("Visit(%T) = %q, want %q", q, got, want)
		}
	}
	if len(Kinds()) != len(questions) {
		t.Fatalf("Kinds() out of sync with variants: %v", Kinds())
	}
}
