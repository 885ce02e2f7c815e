package uischema_test

import (
	"strings"
	"testing"
	"testing/fstest"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-qna/pkg/testsupport"
	"github.com/goliatone/go-qna/pkg/uischema"
)

func TestCompile_OneEntryPerQuestion(t *testing.T) {
	doc := uischema.Compile(testsupport.SampleQuestions())

	if diff := cmp.Diff([]string{"1", "222", "24", "3", "8", "88", "899"}, doc.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	for _, key := range doc.Keys() {
		hint := doc[key]
		if key == "899" {
			if hint.Widget != "radio" {
				t.Fatalf("expected radio widget for 899, got %+v", hint)
			}
			continue
		}
		if !hint.Empty() {
			t.Fatalf("expected empty hint for %s, got %+v", key, hint)
		}
	}
}

func TestCompile_EncodesEmptyHintsAsObjects(t *testing.T) {
	raw, err := json.Marshal(uischema.Compile(testsupport.SampleQuestions()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got["1"]) != 0 {
		t.Fatalf("expected empty object for 1, got %v", got["1"])
	}
	if got["899"]["ui:widget"] != "radio" {
		t.Fatalf("expected ui:widget key, got %s", raw)
	}
}

func TestLoadFS_AndDecorate(t *testing.T) {
	fsys := fstest.MapFS{
		"overrides/food.json": {Data: []byte(`{
			"questions": {
				"1": {"placeholder": "<b>Pizza</b>, sushi & more<script>alert(1)</script>"},
				"899": {"options": {"inline": true}}
			}
		}`)},
		"overrides/numbers.yaml": {Data: []byte(`
questions:
  "88":
    widget: updown
    options:
      step: 10
`)},
		"README.md": {Data: []byte("ignored")},
	}

	store, err := uischema.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"1", "88", "899"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	doc := uischema.Compile(testsupport.SampleQuestions())
	if err := uischema.NewDecorator(store).Decorate(doc); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	if got := doc["1"].Placeholder; got != "Pizza, sushi & more" {
		t.Fatalf("unexpected sanitized placeholder %q", got)
	}
	if got := doc["88"]; got.Widget != "updown" || got.Options["step"] != 10 {
		t.Fatalf("unexpected yaml override %+v", got)
	}
	want := uischema.Hint{Widget: "radio", Options: map[string]any{"inline": true}}
	if diff := cmp.Diff(want, doc["899"]); diff != "" {
		t.Fatalf("merged hint mismatch (-want +got):\n%s", diff)
	}
}

func TestDecorate_RejectsUnknownQuestion(t *testing.T) {
	store, err := uischema.LoadFS(fstest.MapFS{
		"extra.json": {Data: []byte(`{"questions":{"404":{"widget":"select"}}}`)},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	doc := uischema.Compile(testsupport.ZorkQuestions())
	err = uischema.NewDecorator(store).Decorate(doc)
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected unknown question error, got %v", err)
	}
	if !doc["1"].Empty() || !doc["222"].Empty() {
		t.Fatalf("document must be untouched on error: %+v", doc)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"duplicate id": {
			"a.json": {Data: []byte(`{"questions":{"1":{"widget":"a"}}}`)},
			"b.yaml": {Data: []byte("questions:\n  \"1\":\n    widget: b\n")},
		},
		"unknown field": {
			"a.json": {Data: []byte(`{"questions":{"1":{"colour":"red"}}}`)},
		},
		"non numeric id": {
			"a.yml": {Data: []byte("questions:\n  first:\n    widget: a\n")},
		},
		"empty file": {
			"a.json": {Data: []byte("  ")},
		},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := uischema.LoadFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	store, err := uischema.LoadFS(nil)
	if err != nil || !store.Empty() {
		t.Fatalf("expected empty store, got %+v (%v)", store, err)
	}
	doc := uischema.Compile(testsupport.ZorkQuestions())
	if err := uischema.NewDecorator(store).Decorate(doc); err != nil {
		t.Fatalf("empty store must be a no-op: %v", err)
	}
}
