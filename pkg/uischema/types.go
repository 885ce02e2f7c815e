package uischema

import "sort"

// Hint carries the rendering metadata for one question. Empty fields are
// omitted from the encoded document.
type Hint struct {
	Placeholder string         `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Widget      string         `json:"ui:widget,omitempty" yaml:"ui:widget,omitempty"`
	Options     map[string]any `json:"ui:options,omitempty" yaml:"ui:options,omitempty"`
}

// Empty reports whether the hint has nothing to say.
func (h Hint) Empty() bool {
	return h.Placeholder == "" && h.Widget == "" && len(h.Options) == 0
}

// Document maps question ids (decimal strings) to their hints.
type Document map[string]Hint

// Keys returns the document ids in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Store keeps the overrides parsed from operator files. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	overrides map[string]Override
}

// Override customises the hint of one question.
type Override struct {
	Placeholder string         `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Widget      string         `json:"widget,omitempty" yaml:"widget,omitempty"`
	Options     map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
	Source      string         `json:"-" yaml:"-"`
}

// Override returns the override registered for the question id.
func (s *Store) Override(id string) (Override, bool) {
	if s == nil {
		return Override{}, false
	}
	o, ok := s.overrides[id]
	return o, ok
}

// IDs returns the overridden question ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.overrides))
	for id := range s.overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any overrides.
func (s *Store) Empty() bool {
	return s == nil || len(s.overrides) == 0
}
