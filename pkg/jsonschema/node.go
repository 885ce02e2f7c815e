package jsonschema

import (
	"sort"

	json "github.com/goccy/go-json"
)

// Draft07 is the meta-schema URI stamped on compiled root documents.
const Draft07 = "http://json-schema.org/draft-07/schema#"

// Type is the JSON-Schema primitive a node describes.
type Type string

const (
	TypeInteger Type = "integer"
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

// Node is one element of a compiled schema document. The set of node types is
// closed; consumers switch on the concrete pointer type.
type Node interface {
	Type() Type
	Heading() (title, description string)
	json.Marshaler

	isNode()
}

// IntegerNode describes an integer answer.
type IntegerNode struct {
	Title       string
	Description string
	Default     *int
	MultipleOf  *int
	Minimum     *int
	Maximum     *int
}

// StringNode describes a free-text answer.
type StringNode struct {
	Title       string
	Description string
	Default     *string
	MinLength   *int
	MaxLength   *int
}

// BooleanNode describes a yes/no answer.
type BooleanNode struct {
	Title       string
	Description string
	Default     *bool
}

// FixedListNode describes a choice from Enum. It serializes as a string
// schema; EnumNames carries the display labels in the same order.
type FixedListNode struct {
	Title       string
	Description string
	Default     []string
	Enum        []string
	EnumNames   []string
}

// ArrayNode describes a repeated answer whose elements match Items.
type ArrayNode struct {
	Title       string
	Description string
	Items       Node
}

// ObjectNode is the document root. Schema is only set on the root.
type ObjectNode struct {
	Schema               string
	Title                string
	Description          string
	Properties           map[string]Node
	AdditionalProperties bool
	Required             []string
}

func (*IntegerNode) Type() Type   { return TypeInteger }
func (*StringNode) Type() Type    { return TypeString }
func (*BooleanNode) Type() Type   { return TypeBoolean }
func (*FixedListNode) Type() Type { return TypeString }
func (*ArrayNode) Type() Type     { return TypeArray }
func (*ObjectNode) Type() Type    { return TypeObject }

func (n *IntegerNode) Heading() (string, string)   { return n.Title, n.Description }
func (n *StringNode) Heading() (string, string)    { return n.Title, n.Description }
func (n *BooleanNode) Heading() (string, string)   { return n.Title, n.Description }
func (n *FixedListNode) Heading() (string, string) { return n.Title, n.Description }
func (n *ArrayNode) Heading() (string, string)     { return n.Title, n.Description }
func (n *ObjectNode) Heading() (string, string)    { return n.Title, n.Description }

func (*IntegerNode) isNode()   {}
func (*StringNode) isNode()    {}
func (*BooleanNode) isNode()   {}
func (*FixedListNode) isNode() {}
func (*ArrayNode) isNode()     {}
func (*ObjectNode) isNode()    {}

// Property returns the node registered for key.
func (n *ObjectNode) Property(key string) (Node, bool) {
	if n == nil || n.Properties == nil {
		return nil, false
	}
	node, ok := n.Properties[key]
	return node, ok
}

// PropertyKeys returns the property names in sorted order.
func (n *ObjectNode) PropertyKeys() []string {
	if n == nil {
		return nil
	}
	keys := make([]string, 0, len(n.Properties))
	for key := range n.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// IsRequired reports whether key appears in the required set.
func (n *ObjectNode) IsRequired(key string) bool {
	if n == nil {
		return false
	}
	for _, name := range n.Required {
		if name == key {
			return true
		}
	}
	return false
}
