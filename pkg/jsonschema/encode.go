package jsonschema

import (
	json "github.com/goccy/go-json"
)

// Each node serializes with its "type" tag first and omits absent optional
// keywords rather than emitting null.

func (n *IntegerNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        Type   `json:"type"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Default     *int   `json:"default,omitempty"`
		MultipleOf  *int   `json:"multipleOf,omitempty"`
		Minimum     *int   `json:"minimum,omitempty"`
		Maximum     *int   `json:"maximum,omitempty"`
	}{
		Type:        TypeInteger,
		Title:       n.Title,
		Description: n.Description,
		Default:     n.Default,
		MultipleOf:  n.MultipleOf,
		Minimum:     n.Minimum,
		Maximum:     n.Maximum,
	})
}

func (n *StringNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        Type    `json:"type"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Default     *string `json:"default,omitempty"`
		MinLength   *int    `json:"minLength,omitempty"`
		MaxLength   *int    `json:"maxLength,omitempty"`
	}{
		Type:        TypeString,
		Title:       n.Title,
		Description: n.Description,
		Default:     n.Default,
		MinLength:   n.MinLength,
		MaxLength:   n.MaxLength,
	})
}

func (n *BooleanNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        Type   `json:"type"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Default     *bool  `json:"default,omitempty"`
	}{
		Type:        TypeBoolean,
		Title:       n.Title,
		Description: n.Description,
		Default:     n.Default,
	})
}

func (n *FixedListNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        Type     `json:"type"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Default     []string `json:"default,omitempty"`
		Enum        []string `json:"enum"`
		EnumNames   []string `json:"enumNames"`
	}{
		Type:        TypeString,
		Title:       n.Title,
		Description: n.Description,
		Default:     n.Default,
		Enum:        nonNil(n.Enum),
		EnumNames:   nonNil(n.EnumNames),
	})
}

func (n *ArrayNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        Type   `json:"type"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Items       Node   `json:"items,omitempty"`
	}{
		Type:        TypeArray,
		Title:       n.Title,
		Description: n.Description,
		Items:       n.Items,
	})
}

func (n *ObjectNode) MarshalJSON() ([]byte, error) {
	properties := n.Properties
	if properties == nil {
		properties = map[string]Node{}
	}
	return json.Marshal(struct {
		Schema               string          `json:"$schema,omitempty"`
		Type                 Type            `json:"type"`
		Title                string          `json:"title"`
		Description          string          `json:"description"`
		Properties           map[string]Node `json:"properties"`
		AdditionalProperties bool            `json:"additionalProperties"`
		Required             []string        `json:"required"`
	}{
		Schema:               n.Schema,
		Type:                 TypeObject,
		Title:                n.Title,
		Description:          n.Description,
		Properties:           properties,
		AdditionalProperties: n.AdditionalProperties,
		Required:             nonNil(n.Required),
	})
}

// Marshal encodes a document in its compact wire form.
func Marshal(node Node) ([]byte, error) {
	return json.Marshal(node)
}

// MarshalIndent encodes a document with two-space indentation.
func MarshalIndent(node Node) ([]byte, error) {
	return json.MarshalIndent(node, "", "  ")
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
