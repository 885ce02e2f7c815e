package validation

import (
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-qna/pkg/jsonschema"
)

// Validator checks a decoded answer document against a compiled schema.
// Implementations are safe for concurrent use once constructed.
type Validator interface {
	Validate(value any) Result
}

type nativeValidator struct {
	root *jsonschema.ObjectNode
}

// NewValidator returns the built-in validator for compiled documents. It
// understands exactly the keywords the compiler emits and reports every
// violation in a single pass: required properties in definition order, then
// present keys in sorted order, array elements in index order.
func NewValidator(root *jsonschema.ObjectNode) Validator {
	if root == nil {
		root = &jsonschema.ObjectNode{}
	}
	return &nativeValidator{root: root}
}

func (v *nativeValidator) Validate(value any) Result {
	var issues Issues
	validateNode(v.root, value, "", &issues)
	return newResult(issues)
}

func validateNode(node jsonschema.Node, value any, pointer string, issues *Issues) {
	switch n := node.(type) {
	case *jsonschema.ObjectNode:
		validateObject(n, value, pointer, issues)
	case *jsonschema.ArrayNode:
		items, ok := value.([]any)
		if !ok {
			*issues = append(*issues, typeIssue(pointer, "array", value))
			return
		}
		if n.Items == nil {
			return
		}
		for idx, item := range items {
			validateNode(n.Items, item, appendPointer(pointer, strconv.Itoa(idx)), issues)
		}
	case *jsonschema.IntegerNode:
		validateInteger(n, value, pointer, issues)
	case *jsonschema.StringNode:
		s, ok := value.(string)
		if !ok {
			*issues = append(*issues, typeIssue(pointer, "string", value))
			return
		}
		length := utf8.RuneCountInString(s)
		if n.MinLength != nil && length < *n.MinLength {
			*issues = append(*issues, newIssue(pointer, CodeTooShort, "length must be at least %d, got %d", *n.MinLength, length))
		}
		if n.MaxLength != nil && length > *n.MaxLength {
			*issues = append(*issues, newIssue(pointer, CodeTooLong, "length must be at most %d, got %d", *n.MaxLength, length))
		}
	case *jsonschema.BooleanNode:
		if _, ok := value.(bool); !ok {
			*issues = append(*issues, typeIssue(pointer, "boolean", value))
		}
	case *jsonschema.FixedListNode:
		s, ok := value.(string)
		if !ok {
			*issues = append(*issues, typeIssue(pointer, "string", value))
			return
		}
		for _, allowed := range n.Enum {
			if s == allowed {
				return
			}
		}
		*issues = append(*issues, newIssue(pointer, CodeInvalidEnum, "value %q must be one of %s", s, quoteAll(n.Enum)))
	}
}

func validateObject(n *jsonschema.ObjectNode, value any, pointer string, issues *Issues) {
	obj, ok := value.(map[string]any)
	if !ok {
		*issues = append(*issues, typeIssue(pointer, "object", value))
		return
	}

	for _, name := range n.Required {
		if _, present := obj[name]; !present {
			*issues = append(*issues, newIssue(appendPointer(pointer, name), CodeRequired, "required property is missing"))
		}
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		child := appendPointer(pointer, key)
		prop, known := n.Properties[key]
		if !known {
			if !n.AdditionalProperties {
				*issues = append(*issues, newIssue(child, CodeUnknownKey, "property is not allowed"))
			}
			continue
		}
		validateNode(prop, obj[key], child, issues)
	}
}

func validateInteger(n *jsonschema.IntegerNode, value any, pointer string, issues *Issues) {
	got, ok := integerOf(value)
	if !ok {
		if wide, ok := wideIntegerOf(value); ok {
			validateWideInteger(n, wide, pointer, issues)
			return
		}
		*issues = append(*issues, typeIssue(pointer, "integer", value))
		return
	}
	if n.Minimum != nil && got < int64(*n.Minimum) {
		*issues = append(*issues, newIssue(pointer, CodeTooSmall, "must be at least %d, got %d", *n.Minimum, got))
	}
	if n.Maximum != nil && got > int64(*n.Maximum) {
		*issues = append(*issues, newIssue(pointer, CodeTooBig, "must be at most %d, got %d", *n.Maximum, got))
	}
	if n.MultipleOf != nil && *n.MultipleOf > 0 && got%int64(*n.MultipleOf) != 0 {
		*issues = append(*issues, newIssue(pointer, CodeNotMultipleOf, "must be a multiple of %d, got %d", *n.MultipleOf, got))
	}
}

// integerOf accepts any JSON number with no fractional part, so 30 and 30.0
// are both integers.
func integerOf(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return integralFloat(f)
	case float64:
		return integralFloat(v)
	case float32:
		return integralFloat(float64(v))
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

// wideIntegerOf accepts integral numbers that do not fit in int64, such as
// 9223372036854775808 or 1e30.
func wideIntegerOf(value any) (*big.Int, bool) {
	var r *big.Rat
	switch v := value.(type) {
	case json.Number:
		parsed, ok := new(big.Rat).SetString(string(v))
		if !ok {
			return nil, false
		}
		r = parsed
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		r = new(big.Rat).SetFloat64(v)
	default:
		return nil, false
	}
	if !r.IsInt() {
		return nil, false
	}
	return new(big.Int).Set(r.Num()), true
}

func validateWideInteger(n *jsonschema.IntegerNode, got *big.Int, pointer string, issues *Issues) {
	if n.Minimum != nil && got.Cmp(big.NewInt(int64(*n.Minimum))) < 0 {
		*issues = append(*issues, newIssue(pointer, CodeTooSmall, "must be at least %d, got %s", *n.Minimum, got))
	}
	if n.Maximum != nil && got.Cmp(big.NewInt(int64(*n.Maximum))) > 0 {
		*issues = append(*issues, newIssue(pointer, CodeTooBig, "must be at most %d, got %s", *n.Maximum, got))
	}
	if n.MultipleOf != nil && *n.MultipleOf > 0 && new(big.Int).Rem(got, big.NewInt(int64(*n.MultipleOf))).Sign() != 0 {
		*issues = append(*issues, newIssue(pointer, CodeNotMultipleOf, "must be a multiple of %d, got %s", *n.MultipleOf, got))
	}
}

func integralFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func typeIssue(pointer, want string, value any) Issue {
	return newIssue(pointer, CodeInvalidType, "expected %s, got %s", want, jsonTypeOf(value))
}

func jsonTypeOf(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case json.Number:
		if _, ok := integerOf(v); ok {
			return "integer"
		}
		if _, ok := wideIntegerOf(v); ok {
			return "integer"
		}
		return "number"
	case float32, float64:
		if _, ok := integerOf(v); ok {
			return "integer"
		}
		return "number"
	case int, int32, int64:
		return "integer"
	}
	return "unsupported"
}

func quoteAll(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, strconv.Quote(v))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
