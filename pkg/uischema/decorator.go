package uischema

import "fmt"

// Decorator applies operator overrides to a compiled hint document.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate merges the overrides into doc in place. Placeholder and widget
// replace the compiled values when set; options are merged key by key. An
// override naming a question that doc does not contain is an error and
// leaves doc untouched.
func (d *Decorator) Decorate(doc Document) error {
	if d == nil || d.store.Empty() || doc == nil {
		return nil
	}

	ids := d.store.IDs()
	for _, id := range ids {
		if _, ok := doc[id]; !ok {
			override, _ := d.store.Override(id)
			return fmt.Errorf("uischema: override for question %s (file %s) does not match any question", id, override.Source)
		}
	}

	for _, id := range ids {
		override, _ := d.store.Override(id)
		doc[id] = applyOverride(doc[id], override)
	}
	return nil
}

func applyOverride(hint Hint, override Override) Hint {
	if override.Placeholder != "" {
		hint.Placeholder = override.Placeholder
	}
	if override.Widget != "" {
		hint.Widget = override.Widget
	}
	if len(override.Options) > 0 {
		merged := make(map[string]any, len(hint.Options)+len(override.Options))
		for k, v := range hint.Options {
			merged[k] = v
		}
		for k, v := range override.Options {
			merged[k] = v
		}
		hint.Options = merged
	}
	return hint
}
