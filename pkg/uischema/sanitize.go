package uischema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	placeholderPolicyOnce sync.Once
	placeholderPolicy     *bluemonday.Policy
)

// sanitizePlaceholder strips all markup from operator supplied placeholder
// text. The policy escapes entities, so the result is unescaped again to keep
// the hint plain text.
func sanitizePlaceholder(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	placeholderPolicyOnce.Do(func() {
		placeholderPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(placeholderPolicy.Sanitize(trimmed)))
}
