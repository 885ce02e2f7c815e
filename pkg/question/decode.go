package question

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeError reports a definition that does not match the question model.
// Path locates the offending element, e.g. questions[2].FreeText.min_length.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("question: decode: %v", e.Err)
	}
	return fmt.Sprintf("question: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeJSON strictly decodes a JSON definition and checks its invariants.
func DecodeJSON(data []byte) (*QuestionList, error) {
	if err := checkDuplicateKeys(data); err != nil {
		return nil, err
	}
	var wire listWire[json.RawMessage]
	if err := strictJSON(data, &wire); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return buildList[json.RawMessage](jsonEnvelope{}, wire)
}

// DecodeYAML strictly decodes a YAML definition and checks its invariants.
func DecodeYAML(data []byte) (*QuestionList, error) {
	var wire listWire[yaml.Node]
	if err := strictYAML(data, &wire); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return buildList[yaml.Node](yamlEnvelope{}, wire)
}

type listWire[E any] struct {
	Title       *string `json:"title" yaml:"title"`
	Description *string `json:"description" yaml:"description"`
	Questions   *[]E    `json:"questions" yaml:"questions"`
}

type headerWire struct {
	ID          *int    `json:"id" yaml:"id"`
	Title       *string `json:"title" yaml:"title"`
	Description *string `json:"description" yaml:"description"`
	Required    *bool   `json:"required" yaml:"required"`
}

type integerWire struct {
	headerWire `yaml:",inline"`
	Default    *int `json:"default" yaml:"default"`
	Step       *int `json:"step" yaml:"step"`
	Min        *int `json:"min" yaml:"min"`
	Max        *int `json:"max" yaml:"max"`
}

type freeTextWire struct {
	headerWire `yaml:",inline"`
	Default    *string `json:"default" yaml:"default"`
	MinLength  *int    `json:"min_length" yaml:"min_length"`
	MaxLength  *int    `json:"max_length" yaml:"max_length"`
}

type trueOrFalseWire struct {
	headerWire `yaml:",inline"`
	Default    *bool   `json:"default" yaml:"default"`
	UI         *uiWire `json:"ui" yaml:"ui"`
}

type uiWire struct {
	Widget *string `json:"widget" yaml:"widget"`
}

type fixedListWire struct {
	headerWire `yaml:",inline"`
	Default    *[]string `json:"default" yaml:"default"`
	Items      *[]string `json:"items" yaml:"items"`
	ItemNames  *[]string `json:"item_names" yaml:"item_names"`
}

type arrayOfWire[E any] struct {
	headerWire `yaml:",inline"`
	Question   *E `json:"question" yaml:"question"`
}

// envelope abstracts the externally tagged question encoding of one format:
// open returns the single variant tag and a strict decoder for its body.
type envelope[E any] interface {
	open(e *E) (string, func(any) error, error)
}

func buildList[E any](env envelope[E], wire listWire[E]) (*QuestionList, error) {
	switch {
	case wire.Title == nil:
		return nil, &DecodeError{Err: missingField("title")}
	case wire.Description == nil:
		return nil, &DecodeError{Err: missingField("description")}
	case wire.Questions == nil:
		return nil, &DecodeError{Err: missingField("questions")}
	}

	list := &QuestionList{
		Title:       *wire.Title,
		Description: *wire.Description,
		Questions:   make([]Question, 0, len(*wire.Questions)),
	}
	for idx := range *wire.Questions {
		q, err := decodeQuestion(env, &(*wire.Questions)[idx], "questions["+strconv.Itoa(idx)+"]")
		if err != nil {
			return nil, err
		}
		list.Questions = append(list.Questions, q)
	}

	if err := list.Check(); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return list, nil
}

func decodeQuestion[E any](env envelope[E], raw *E, path string) (Question, error) {
	tag, body, err := env.open(raw)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	path = path + "." + tag
	fail := func(err error) (Question, error) {
		return nil, &DecodeError{Path: path, Err: err}
	}

	switch Kind(tag) {
	case KindInteger:
		var w integerWire
		if err := body(&w); err != nil {
			return fail(err)
		}
		base, err := w.base()
		if err != nil {
			return fail(err)
		}
		return &Integer{Base: base, Default: w.Default, Step: w.Step, Min: w.Min, Max: w.Max}, nil

	case KindFreeText:
		var w freeTextWire
		if err := body(&w); err != nil {
			return fail(err)
		}
		base, err := w.base()
		if err != nil {
			return fail(err)
		}
		return &FreeText{Base: base, Default: w.Default, MinLength: w.MinLength, MaxLength: w.MaxLength}, nil

	case KindTrueOrFalse:
		var w trueOrFalseWire
		if err := body(&w); err != nil {
			return fail(err)
		}
		base, err := w.base()
		if err != nil {
			return fail(err)
		}
		q := &TrueOrFalse{Base: base, Default: w.Default}
		if w.UI != nil {
			q.UI = &TrueOrFalseUI{}
			if w.UI.Widget != nil {
				widget, err := ParseWidget(*w.UI.Widget)
				if err != nil {
					return nil, &DecodeError{Path: path + ".ui.widget", Err: err}
				}
				q.UI.Widget = &widget
			}
		}
		return q, nil

	case KindFixedList:
		var w fixedListWire
		if err := body(&w); err != nil {
			return fail(err)
		}
		base, err := w.base()
		if err != nil {
			return fail(err)
		}
		switch {
		case w.Default == nil:
			return fail(missingField("default"))
		case w.Items == nil:
			return fail(missingField("items"))
		case w.ItemNames == nil:
			return fail(missingField("item_names"))
		}
		return &FixedList{
			Base:      base,
			Default:   append([]string{}, (*w.Default)...),
			Items:     append([]string{}, (*w.Items)...),
			ItemNames: append([]string{}, (*w.ItemNames)...),
		}, nil

	case KindArrayOf:
		var w arrayOfWire[E]
		if err := body(&w); err != nil {
			return fail(err)
		}
		base, err := w.base()
		if err != nil {
			return fail(err)
		}
		if w.Question == nil {
			return fail(missingField("question"))
		}
		inner, err := decodeQuestion(env, w.Question, path+".question")
		if err != nil {
			return nil, err
		}
		return &ArrayOf{Base: base, Question: inner}, nil
	}

	return nil, &DecodeError{Path: path, Err: fmt.Errorf("unknown question variant %q", tag)}
}

func (h headerWire) base() (Base, error) {
	switch {
	case h.ID == nil:
		return Base{}, missingField("id")
	case h.Title == nil:
		return Base{}, missingField("title")
	case h.Description == nil:
		return Base{}, missingField("description")
	case h.Required == nil:
		return Base{}, missingField("required")
	}
	return Base{ID: *h.ID, Title: *h.Title, Description: *h.Description, Required: *h.Required}, nil
}

func missingField(name string) error {
	return fmt.Errorf("missing field %q", name)
}

type jsonEnvelope struct{}

func (jsonEnvelope) open(raw *json.RawMessage) (string, func(any) error, error) {
	var variants map[string]json.RawMessage
	if err := strictJSON(*raw, &variants); err != nil {
		return "", nil, err
	}
	if len(variants) != 1 {
		return "", nil, fmt.Errorf("expected exactly one question variant, got %d", len(variants))
	}
	for tag, body := range variants {
		return tag, func(v any) error { return strictJSON(body, v) }, nil
	}
	return "", nil, errors.New("empty question")
}

type yamlEnvelope struct{}

func (yamlEnvelope) open(node *yaml.Node) (string, func(any) error, error) {
	if node.Kind != yaml.MappingNode {
		return "", nil, fmt.Errorf("line %d: expected a mapping holding one question variant", node.Line)
	}
	if len(node.Content) != 2 {
		return "", nil, fmt.Errorf("line %d: expected exactly one question variant, got %d", node.Line, len(node.Content)/2)
	}
	tag := node.Content[0].Value
	body := node.Content[1]
	return tag, func(v any) error { return strictYAMLNode(body, v) }, nil
}

func strictJSON(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("empty document")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected trailing data after document")
	}
	return nil
}

func strictYAML(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("empty document")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return errors.New("unexpected additional YAML document")
	}
	return nil
}

// strictYAMLNode re-decodes a captured node; yaml.Node.Decode does not carry
// the KnownFields setting, so the subtree is round-tripped through a strict
// decoder instead.
func strictYAMLNode(node *yaml.Node, v any) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return errors.New("question body is null")
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	return strictYAML(data, v)
}
