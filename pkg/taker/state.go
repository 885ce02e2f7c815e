package taker

import "maps"

// State holds answers keyed by question id as they are collected.
type State struct {
	values map[string]any
}

// NewState returns a state seeded with a shallow copy of initial.
func NewState(initial map[string]any) *State {
	values := make(map[string]any, len(initial))
	maps.Copy(values, initial)
	return &State{values: values}
}

// Get returns the stored answer for key.
func (s *State) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set records an answer.
func (s *State) Set(key string, value any) {
	s.values[key] = value
}

// Values returns a copy of the collected answers.
func (s *State) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	maps.Copy(out, s.values)
	return out
}
