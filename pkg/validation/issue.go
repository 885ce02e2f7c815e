package validation

import (
	"fmt"
	"strings"
)

// Issue codes reported by the validators.
const (
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidType   = "invalid_type"
	CodeInvalidEnum   = "invalid_enum"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeNotMultipleOf = "not_multiple_of"
)

// Issue is one schema violation found in an answer document. Path is a JSON
// pointer to the offending value; Field is the same location in dotted form.
// Message is standalone and already names the location.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newIssue(pointer, code, format string, args ...any) Issue {
	return Issue{
		Path:    pointer,
		Field:   fieldPathFromPointer(pointer),
		Code:    code,
		Message: displayPointer(pointer) + ": " + fmt.Sprintf(format, args...),
	}
}

// Issues is an ordered collection of violations that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	lim := len(iss)
	if lim > maxShown {
		lim = maxShown
	}
	b := &strings.Builder{}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].Message)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Codes returns the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Code)
	}
	return out
}

// Result captures one validation outcome. Valid is true exactly when Issues
// is empty.
type Result struct {
	Valid  bool   `json:"valid"`
	Issues Issues `json:"issues,omitempty"`
}

func newResult(issues Issues) Result {
	if len(issues) == 0 {
		return Result{Valid: true}
	}
	return Result{Valid: false, Issues: issues}
}

// Messages returns the human-readable messages in report order.
func (r Result) Messages() []string {
	out := make([]string, 0, len(r.Issues))
	for _, it := range r.Issues {
		out = append(out, it.Message)
	}
	return out
}

// Err returns the issues as an error, or nil when the document is valid.
func (r Result) Err() error {
	if len(r.Issues) == 0 {
		return nil
	}
	return r.Issues
}
