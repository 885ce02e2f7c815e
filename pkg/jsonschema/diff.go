package jsonschema

import (
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a line-oriented diff between two documents. Removed lines are
// prefixed with "-", added lines with "+". Identical documents yield "".
func Diff(before, after Node) (string, error) {
	left, err := MarshalIndent(before)
	if err != nil {
		return "", fmt.Errorf("jsonschema: encode before: %w", err)
	}
	right, err := MarshalIndent(after)
	if err != nil {
		return "", fmt.Errorf("jsonschema: encode after: %w", err)
	}
	if string(left) == string(right) {
		return "", nil
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(left)+"\n", string(right)+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	return out.String(), nil
}

// MergePatch returns the RFC 7386 merge patch turning before into after.
func MergePatch(before, after Node) ([]byte, error) {
	left, err := Marshal(before)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: encode before: %w", err)
	}
	right, err := Marshal(after)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: encode after: %w", err)
	}
	patch, err := jsonpatch.CreateMergePatch(left, right)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: merge patch: %w", err)
	}
	return patch, nil
}

// ApplyMergePatch applies an RFC 7386 patch to an encoded document.
func ApplyMergePatch(doc, patch []byte) ([]byte, error) {
	out, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: apply merge patch: %w", err)
	}
	return out, nil
}
